package booking

import (
	"errors"
	"net/http"
	"strconv"

	"meetingroom/internal/domain"
	"meetingroom/internal/pkg/response"
	"meetingroom/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
}

// CreateBooking handles POST /api/v1/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Describe(err))
		return
	}

	in, err := req.toInput()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	views, err := h.service.DescribeBookings(c.Request.Context(), []domain.Booking{*b})
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": views[0]})
}

// ListBookings handles GET /api/v1/bookings
//
// With no query parameters every booking is returned. room_id and date must be
// given together and select one room's bookings on one day.
func (h *Handler) ListBookings(c *gin.Context) {
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()

	var (
		bookings []domain.Booking
		err      error
	)
	switch {
	case q.RoomID == "" && q.Date == "":
		bookings, err = h.service.ListBookings(ctx)
	case q.RoomID == "":
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_id parameter is required")
		return
	case q.Date == "":
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date parameter is required (format: YYYY-MM-DD)")
		return
	default:
		roomID, perr := strconv.ParseInt(q.RoomID, 10, 64)
		if perr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_id must be an integer")
			return
		}
		day, perr := ParseDate(q.Date)
		if perr != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date format. Use YYYY-MM-DD")
			return
		}
		bookings, err = h.service.ListBookingsForRoomOnDate(ctx, roomID, day)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	views, err := h.service.DescribeBookings(ctx, bookings)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": views})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrParticipantNotFound):
		response.Error(c, http.StatusNotFound, "PARTICIPANT_NOT_FOUND", "Participant not found")
	case errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found")
	case errors.Is(err, ErrInvalidInterval):
		response.Error(c, http.StatusBadRequest, "INVALID_INTERVAL", "Start time must be before end time")
	case errors.Is(err, ErrPastBooking):
		response.Error(c, http.StatusBadRequest, "PAST_BOOKING", "Cannot book room in the past")
	case errors.Is(err, ErrRoomConflict):
		response.Error(c, http.StatusConflict, "ROOM_CONFLICT", "Room is already booked for this time period")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
