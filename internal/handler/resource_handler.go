package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ameliakool/SCMS/internal/service"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
	"github.com/ameliakool/SCMS/pkg/response"
)

// CheckoutRequest names the borrowing student.
type CheckoutRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// ResourceHandler manages resource endpoints.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler constructs handler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// Create godoc
// @Summary Register resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body service.CreateResourceRequest true "Resource payload"
// @Success 201 {object} response.Envelope
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req service.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resource, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

// List godoc
// @Summary List resources
// @Tags Resources
// @Produce json
// @Param search query string false "Match by id or name substring"
// @Success 200 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	resources := h.service.List(c.Request.Context(), c.Query("search"))
	response.JSON(c, http.StatusOK, resources, nil)
}

// Update godoc
// @Summary Edit resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param payload body service.UpdateResourceRequest true "Resource payload"
// @Success 200 {object} response.Envelope
// @Router /resources/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	var req service.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resource, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Delete godoc
// @Summary Delete resource
// @Tags Resources
// @Param id path string true "Resource ID"
// @Success 204 {object} nil
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Checkout godoc
// @Summary Check out resource to a student
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param payload body CheckoutRequest true "Borrower"
// @Success 200 {object} response.Envelope
// @Router /resources/{id}/checkout [post]
func (h *ResourceHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resource, err := h.service.Checkout(c.Request.Context(), c.Param("id"), req.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}

// Return godoc
// @Summary Return resource
// @Tags Resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} response.Envelope
// @Router /resources/{id}/return [post]
func (h *ResourceHandler) Return(c *gin.Context) {
	resource, err := h.service.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resource, nil)
}
