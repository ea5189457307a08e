package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/services"
	"github.com/seda/hobbyhive/internal/middleware"
)

// UserController handles user account and score operations
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// Register handles creating a new user account
// @Summary Register a user
// @Description Creates a new player account. The password is optional for guest play.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "Account details"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User registered successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 409 {object} dto.APIResponse "Nickname already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /users [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
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

	user, err := c.userService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "User registered successfully"))
}

// GetProfile handles retrieving a user profile with the derived score
// @Summary Get user profile
// @Description Retrieves the user's profile. The score is the sum of the user's ledger entries.
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid user ID"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /users/{userId} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.userService.GetProfile(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, "Profile retrieved successfully"))
}

// GetLedger handles retrieving a user's score history
// @Summary Get score ledger
// @Description Retrieves the user's score ledger entries, newest first.
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.LedgerResponse} "Ledger retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid user ID"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /users/{userId}/ledger [get]
func (c *UserController) GetLedger(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	ledger, err := c.userService.GetLedger(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ledger, "Ledger retrieved successfully"))
}

// GetLeaderboard handles retrieving the score leaderboard
// @Summary Get leaderboard
// @Description Retrieves the top players ranked by ledger score.
// @Tags users
// @Produce json
// @Param limit query int false "Number of entries (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.LeaderboardResponse} "Leaderboard retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if v := ctx.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	leaderboard, err := c.userService.GetLeaderboard(ctx, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leaderboard, "Leaderboard retrieved successfully"))
}
