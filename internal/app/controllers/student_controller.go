package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/services"
	"github.com/yigit/alumnilink/internal/middleware"
)

// StudentController handles browsing, applications and the student profile
type StudentController struct {
	studentService services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ListOpportunities browses every opportunity
// @Summary Browse opportunities
// @Description Filters are conjunctive. min_cgpa keeps opportunities whose minimum is at most the value or unset.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param type query string false "Opportunity type" Enums(internship, scholarship, mentorship, success_story)
// @Param category query string false "Category"
// @Param min_cgpa query number false "CGPA ceiling"
// @Success 200 {object} dto.OpportunityListResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid min_cgpa value"
// @Failure 403 {object} dto.ErrorResponse "Student access required"
// @Router /student/opportunities [get]
func (c *StudentController) ListOpportunities(ctx *gin.Context) {
	var query dto.OpportunityFilterQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid query parameters"))
		return
	}

	opps, err := c.studentService.ListOpportunities(ctx.Request.Context(), &query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewOpportunityListResponse(opps))
}

// Apply submits an application, optionally with a resume
// @Summary Apply to an opportunity
// @Description Accepts an optional resume (PDF, DOC or DOCX) in the multipart field "resume"
// @Tags student
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param resume formData file false "Resume"
// @Success 201 {object} dto.ApplicationMessageResponse "Application submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "CGPA below minimum or invalid resume"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /student/opportunities/{id}/apply [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	oppID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resume, err := ctx.FormFile("resume")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			c.logger.Warn().Err(err).Msg("Invalid multipart body")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid resume upload"))
			return
		}
		resume = nil
	}

	app, err := c.studentService.Apply(ctx.Request.Context(), studentID, oppID, resume)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ApplicationMessageResponse{
		Message:     "Application submitted successfully",
		Application: dto.NewApplicationResponse(app),
	})
}

// ListApplications lists the caller's applications
// @Summary List my applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse
// @Router /student/applications [get]
func (c *StudentController) ListApplications(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	apps, err := c.studentService.ListMyApplications(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewApplicationListResponse(apps))
}

// Withdraw deletes one of the caller's pending applications
// @Summary Withdraw application
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.SuccessResponse "Application withdrawn successfully"
// @Failure 400 {object} dto.ErrorResponse "Application already processed"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /student/applications/{id} [delete]
func (c *StudentController) Withdraw(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	appID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Withdraw(ctx.Request.Context(), studentID, appID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Application withdrawn successfully"})
}

// GetProfile returns the caller's student profile, creating it empty if absent
// @Summary Get my student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse{profile=dto.StudentProfileResponse}
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Profile: roleProfileResponse(profile, true)})
}

// UpdateProfile merges the supplied keys into the caller's student profile
// @Summary Update my student profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileMessageResponse{profile=dto.StudentProfileResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid field"
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	studentID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateStudentProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.studentService.UpdateProfile(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileMessageResponse{
		Message: "Profile updated successfully",
		Profile: roleProfileResponse(profile, false),
	})
}
