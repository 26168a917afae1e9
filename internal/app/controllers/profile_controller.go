package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/app/services"
	"github.com/yigit/alumnilink/internal/middleware"
)

// ProfileController serves the generic profile endpoint addressed by type and id
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

func bindProfileQuery(ctx *gin.Context) (*dto.ProfileQuery, bool) {
	var query dto.ProfileQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid parameters"))
		return nil, false
	}
	return &query, true
}

// GetProfile returns the profile of any user
// @Summary Get profile by type and id
// @Description Creates an empty profile on first access. Who may read other users' profiles depends on the security.profile_access setting.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param type query string true "Profile type" Enums(alumni, student)
// @Param id query int true "User ID"
// @Success 200 {object} dto.PublicProfileEnvelope{profile=dto.PublicStudentProfile}
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 403 {object} dto.ErrorResponse "You can only access your own profile"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	query, ok := bindProfileQuery(ctx)
	if !ok {
		return
	}

	profile, err := c.profileService.Get(ctx.Request.Context(), userID, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PublicProfileEnvelope{Profile: dto.NewPublicProfileResponse(profile)})
}

// UpdateProfile edits the profile of any user, including its name and email
// @Summary Update profile by type and id
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type query string true "Profile type" Enums(alumni, student)
// @Param id query int true "User ID"
// @Param request body dto.UpdatePublicProfileRequest true "Fields to change"
// @Success 200 {object} dto.PublicProfileEnvelope{profile=dto.PublicAlumniProfile}
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	query, ok := bindProfileQuery(ctx)
	if !ok {
		return
	}
	var req dto.UpdatePublicProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.profileService.Update(ctx.Request.Context(), userID, query, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PublicProfileEnvelope{Profile: dto.NewPublicProfileResponse(profile)})
}
