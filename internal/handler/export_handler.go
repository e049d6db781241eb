package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ameliakool/SCMS/internal/service"
	"github.com/ameliakool/SCMS/pkg/response"
)

// ExportHandler serves schedule exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// RoomSchedule godoc
// @Summary Export one classroom's schedule
// @Tags Exports
// @Produce octet-stream
// @Param room path string true "Room number"
// @Param format query string false "csv, pdf, xlsx or ics" default(csv)
// @Success 200 {file} binary
// @Router /classrooms/{room}/schedule [get]
func (h *ExportHandler) RoomSchedule(c *gin.Context) {
	room := c.Param("room")
	data, format, err := h.service.RoomSchedule(c.Request.Context(), room, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, data, format, fmt.Sprintf("schedule-%s.%s", room, format))
}

// AllSchedules godoc
// @Summary Export the cross-room schedule
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, pdf, xlsx or ics" default(csv)
// @Success 200 {file} binary
// @Router /schedule [get]
func (h *ExportHandler) AllSchedules(c *gin.Context) {
	data, format, err := h.service.AllSchedules(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, data, format, fmt.Sprintf("schedule.%s", format))
}

func serveExport(c *gin.Context, data []byte, format, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, service.ContentType(format), data)
}
