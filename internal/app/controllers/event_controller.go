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

// EventController handles event catalog operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// GetAllEvents handles retrieving the event catalog
// @Summary Get all events
// @Description Retrieves events with optional community filtering and pagination.
// @Tags events
// @Produce json
// @Param communityId query int false "Filter by community ID"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var communityID int64
	if v := ctx.Query("communityId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid community ID")
			errorDetail = errorDetail.WithDetails("Community ID must be a positive number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		communityID = id
	}

	response, err := c.eventService.GetAllEvents(ctx, communityID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response, "Events retrieved successfully"))
}

// GetEventByID handles retrieving a single event
// @Summary Get event by ID
// @Description Retrieves a specific event by its ID
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid event ID"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")
		errorDetail = errorDetail.WithDetails("Event ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.GetEventByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event retrieved successfully"))
}

// CreateEvent handles creating a new event
// @Summary Create an event
// @Description Creates a new event in a community. Requires a valid session token.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request body"
// @Failure 401 {object} dto.APIResponse "Session token missing or invalid"
// @Failure 404 {object} dto.APIResponse "Community not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
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

	event, err := c.eventService.CreateEvent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created successfully"))
}
