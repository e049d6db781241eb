package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ameliakool/SCMS/internal/service"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
	"github.com/ameliakool/SCMS/pkg/response"
)

// ClassroomHandler manages classroom endpoints.
type ClassroomHandler struct {
	service *service.ClassroomService
}

// NewClassroomHandler constructs handler.
func NewClassroomHandler(svc *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// Create godoc
// @Summary Register classroom
// @Tags Classrooms
// @Accept json
// @Produce json
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Router /classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req service.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	rooms := h.service.List(c.Request.Context())
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Get godoc
// @Summary Get classroom
// @Tags Classrooms
// @Produce json
// @Param room path string true "Room number"
// @Success 200 {object} response.Envelope
// @Router /classrooms/{room} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	room, err := h.service.Get(c.Request.Context(), c.Param("room"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}
