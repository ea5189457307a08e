package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/services"
	"github.com/seda/hobbyhive/internal/middleware"
	"github.com/seda/hobbyhive/internal/pkg/helpers"
)

// CommunityController handles community related operations
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
	}
}

// GetAllCommunities handles retrieving all communities
// @Summary Get all communities
// @Description Retrieves communities with their current member counts, paginated.
// @Tags communities
// @Produce json
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CommunityListResponse} "Communities retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /communities [get]
func (c *CommunityController) GetAllCommunities(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	response, err := c.communityService.GetAllCommunities(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Communities retrieved successfully"))
}

// GetCommunityByID handles retrieving a specific community by ID
// @Summary Get community by ID
// @Description Retrieves a specific community by its ID
// @Tags communities
// @Produce json
// @Param id path int true "Community ID"
// @Success 200 {object} dto.APIResponse{data=dto.CommunityResponse} "Community retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid community ID"
// @Failure 404 {object} dto.APIResponse "Community not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /communities/{id} [get]
func (c *CommunityController) GetCommunityByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid community ID")
		errorDetail = errorDetail.WithDetails("Community ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	community, err := c.communityService.GetCommunityByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(community, "Community retrieved successfully"))
}

// GetUserCommunities handles retrieving the communities a user belongs to
// @Summary Get user communities
// @Description Retrieves the communities the user is currently a member of. Membership is derived from active event participations.
// @Tags communities
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserCommunitiesResponse} "Communities retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid user ID"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /users/{userId}/communities [get]
func (c *CommunityController) GetUserCommunities(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.communityService.GetUserCommunities(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Communities retrieved successfully"))
}
