package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/services"
	"github.com/seda/hobbyhive/internal/middleware"
)

// ParticipationController handles event join and leave operations
type ParticipationController struct {
	participationService services.ParticipationService
}

// NewParticipationController creates a new ParticipationController
func NewParticipationController(participationService services.ParticipationService) *ParticipationController {
	return &ParticipationController{
		participationService: participationService,
	}
}

// Join handles a user joining an event
// @Summary Join an event
// @Description Marks the user as a participant of the event, grants community membership and credits the event's points. Joining twice is rejected.
// @Tags participations
// @Accept json
// @Produce json
// @Param request body dto.ParticipationRequest true "User and event identifiers"
// @Success 200 {object} dto.JoinResponse "Joined successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 404 {object} dto.APIResponse "User or event not found"
// @Failure 409 {object} dto.APIResponse "User has already joined this event"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /participations/join [post]
func (c *ParticipationController) Join(ctx *gin.Context) {
	var req dto.ParticipationRequest
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

	points, err := c.participationService.Join(ctx, req.UserID, req.EventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.JoinResponse{
		Success:      true,
		Message:      "Joined event successfully",
		PointsEarned: points,
	})
}

// Leave handles a user leaving an event
// @Summary Leave an event
// @Description Cancels the user's participation, deducts the event's points and drops community membership when no other joined event remains in that community.
// @Tags participations
// @Accept json
// @Produce json
// @Param request body dto.ParticipationRequest true "User and event identifiers"
// @Success 200 {object} dto.LeaveResponse "Left successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Failure 409 {object} dto.APIResponse "User has not joined this event"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /participations/leave [post]
func (c *ParticipationController) Leave(ctx *gin.Context) {
	var req dto.ParticipationRequest
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

	points, err := c.participationService.Leave(ctx, req.UserID, req.EventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LeaveResponse{
		Success:        true,
		Message:        "Left event successfully",
		PointsDeducted: points,
	})
}

// GetJoinedEvents handles listing the events a user currently participates in
// @Summary List joined events
// @Description Retrieves the events the user has an active participation in, most recent join first.
// @Tags participations
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.JoinedEventListResponse} "Joined events retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid user ID"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /users/{userId}/participations [get]
func (c *ParticipationController) GetJoinedEvents(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("userId"), 10, 64)
	if err != nil || userID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		errorDetail = errorDetail.WithDetails("User ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.participationService.GetJoinedEvents(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Joined events retrieved successfully"))
}
