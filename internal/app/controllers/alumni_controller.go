package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/services"
	"github.com/yigit/alumnilink/internal/middleware"
)

// AlumniController handles the alumni's own opportunities, the applications
// they received and the alumni profile
type AlumniController struct {
	alumniService services.AlumniService
	logger        zerolog.Logger
}

// NewAlumniController creates a new AlumniController
func NewAlumniController(alumniService services.AlumniService, logger zerolog.Logger) *AlumniController {
	return &AlumniController{
		alumniService: alumniService,
		logger:        logger,
	}
}

// ListOpportunities lists the caller's opportunities
// @Summary List my opportunities
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OpportunityListResponse
// @Failure 403 {object} dto.ErrorResponse "Alumni access required"
// @Router /alumni/opportunities [get]
func (c *AlumniController) ListOpportunities(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}

	opps, err := c.alumniService.ListMyOpportunities(ctx.Request.Context(), alumniID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewOpportunityListResponse(opps))
}

// CreateOpportunity publishes a new opportunity
// @Summary Create opportunity
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOpportunityRequest true "Opportunity"
// @Success 201 {object} dto.OpportunityMessageResponse "Opportunity created successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing field, invalid type or invalid deadline"
// @Failure 403 {object} dto.ErrorResponse "Alumni access required"
// @Router /alumni/opportunities [post]
func (c *AlumniController) CreateOpportunity(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CreateOpportunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	opp, err := c.alumniService.CreateOpportunity(ctx.Request.Context(), alumniID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("opportunityID", opp.ID).Int64("alumniID", alumniID).Msg("Opportunity created")
	ctx.JSON(http.StatusCreated, dto.OpportunityMessageResponse{
		Message:     "Opportunity created successfully",
		Opportunity: dto.NewOpportunityResponse(opp),
	})
}

// UpdateOpportunity applies a partial update to one of the caller's opportunities
// @Summary Update opportunity
// @Description Only the keys present in the body change; a null or empty deadline clears it
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Param request body dto.UpdateOpportunityRequest true "Fields to change"
// @Success 200 {object} dto.OpportunityMessageResponse "Opportunity updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid field"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /alumni/opportunities/{id} [put]
func (c *AlumniController) UpdateOpportunity(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}
	oppID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateOpportunityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	opp, err := c.alumniService.UpdateOpportunity(ctx.Request.Context(), alumniID, oppID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.OpportunityMessageResponse{
		Message:     "Opportunity updated successfully",
		Opportunity: dto.NewOpportunityResponse(opp),
	})
}

// DeleteOpportunity deletes one of the caller's opportunities and its applications
// @Summary Delete opportunity
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Param id path int true "Opportunity ID"
// @Success 200 {object} dto.SuccessResponse "Opportunity deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Opportunity not found"
// @Router /alumni/opportunities/{id} [delete]
func (c *AlumniController) DeleteOpportunity(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}
	oppID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.alumniService.DeleteOpportunity(ctx.Request.Context(), alumniID, oppID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Opportunity deleted successfully"})
}

// ListApplications lists applications to the caller's opportunities
// @Summary List received applications
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse
// @Router /alumni/applications [get]
func (c *AlumniController) ListApplications(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}

	apps, err := c.alumniService.ListApplications(ctx.Request.Context(), alumniID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewApplicationListResponse(apps))
}

// UpdateApplicationStatus triages an application to one of the caller's opportunities
// @Summary Set application status
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.ApplicationMessageResponse "Application status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /alumni/applications/{id}/status [put]
func (c *AlumniController) UpdateApplicationStatus(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}
	appID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	app, err := c.alumniService.UpdateApplicationStatus(ctx.Request.Context(), alumniID, appID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("applicationID", app.ID).Str("status", string(app.Status)).Msg("Application triaged")
	ctx.JSON(http.StatusOK, dto.ApplicationMessageResponse{
		Message:     "Application status updated successfully",
		Application: dto.NewApplicationResponse(app),
	})
}

// GetProfile returns the caller's alumni profile, creating it empty if absent
// @Summary Get my alumni profile
// @Tags alumni
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse{profile=dto.AlumniProfileResponse}
// @Router /alumni/profile [get]
func (c *AlumniController) GetProfile(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}

	profile, err := c.alumniService.GetProfile(ctx.Request.Context(), alumniID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileResponse{Profile: roleProfileResponse(profile, true)})
}

// UpdateProfile merges the supplied keys into the caller's alumni profile
// @Summary Update my alumni profile
// @Tags alumni
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateAlumniProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileMessageResponse{profile=dto.AlumniProfileResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid field"
// @Router /alumni/profile [put]
func (c *AlumniController) UpdateProfile(ctx *gin.Context) {
	alumniID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateAlumniProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.alumniService.UpdateProfile(ctx.Request.Context(), alumniID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProfileMessageResponse{
		Message: "Profile updated successfully",
		Profile: roleProfileResponse(profile, false),
	})
}
