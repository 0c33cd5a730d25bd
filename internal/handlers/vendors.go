package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (h *Handler) ListVendors(c *gin.Context) {
	var f query.VendorFilter
	if !bindQuery(c, &f) {
		return
	}
	vendors, err := h.svc.ListVendors(c.Request.Context(), f)
	if err != nil {
		fail(c, "Vendor", err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *Handler) GetVendor(c *gin.Context) {
	v, err := h.svc.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Vendor", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) CreateVendor(c *gin.Context) {
	var in models.VendorInput
	if !bind(c, &in) {
		return
	}
	v, err := h.svc.CreateVendor(c.Request.Context(), in)
	if err != nil {
		fail(c, "Vendor", err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *Handler) UpdateVendor(c *gin.Context) {
	var patch models.VendorPatch
	if !bind(c, &patch) {
		return
	}
	v, err := h.svc.UpdateVendor(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Vendor", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *Handler) DeleteVendor(c *gin.Context) {
	if err := h.svc.DeleteVendor(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Vendor", err)
		return
	}
	deleted(c, "Vendor")
}
