package participant

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.POST("/participants", h.CreateParticipant)
	rg.GET("/participants/:id", h.GetParticipant)
}

func (h *Handler) CreateParticipant(c *gin.Context) {
	var req CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validator.Describe(err))
		return
	}

	p, err := h.service.CreateParticipant(c.Request.Context(), req.Name)
	switch {
	case err == nil:
		response.Success(c, http.StatusCreated, gin.H{"participant": p})
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Name must not be empty")
	case errors.Is(err, ErrDuplicateName):
		response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "Name already exists")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create participant")
	}
}

func (h *Handler) GetParticipant(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid participant id")
		return
	}

	p, err := h.service.GetParticipant(c.Request.Context(), id)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, gin.H{"participant": p})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Participant not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load participant")
	}
}
