package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/services"
	"github.com/seda/hobbyhive/internal/middleware"
)

// AuthController handles session token issuance
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// CreateSession handles issuing a session token
// @Summary Create a session
// @Description Issues a session token for an existing user. Accounts with a password require it; guest accounts do not.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SessionRequest true "User ID and optional password"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /sessions [post]
func (c *AuthController) CreateSession(ctx *gin.Context) {
	var req dto.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
		if details := middleware.ValidationDetails(err); details != nil {
			errorDetail = errorDetail.WithDetails(details)
		} else {
			errorDetail = errorDetail.WithDetails(err.Error())
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.CreateSession(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(session, "Session created successfully"))
}
