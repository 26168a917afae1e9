package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnilink/internal/app/models"
	"github.com/yigit/alumnilink/internal/app/models/dto"
	"github.com/yigit/alumnilink/internal/middleware"
)

// parseIDParam reads a positive integer path parameter, writing a 400 when it is malformed
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid "+paramName))
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into req, writing a 400 on malformed JSON
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid request body"))
		return false
	}
	return true
}

// callerID returns the authenticated user id or writes a 401
func callerID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "Authentication required"))
		return 0, false
	}
	return id, true
}

// roleProfileResponse maps the profile carried by u. The GET endpoints
// embed the owning user, updates do not.
func roleProfileResponse(u *models.UserWithProfile, withUser bool) interface{} {
	var user *dto.UserResponse
	if withUser {
		r := dto.NewUserResponse(u.User)
		user = &r
	}

	switch {
	case u.AlumniProfile != nil:
		p := dto.NewAlumniProfileResponse(u.AlumniProfile)
		p.User = user
		return p
	case u.StudentProfile != nil:
		p := dto.NewStudentProfileResponse(u.StudentProfile)
		p.User = user
		return p
	}
	return nil
}
