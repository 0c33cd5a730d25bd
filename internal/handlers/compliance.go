package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (h *Handler) ListCompliance(c *gin.Context) {
	var f query.ComplianceFilter
	if !bindQuery(c, &f) {
		return
	}
	reqs, err := h.svc.ListCompliance(c.Request.Context(), f)
	if err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) GetCompliance(c *gin.Context) {
	r, err := h.svc.GetCompliance(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) ComplianceFrameworks(c *gin.Context) {
	frameworks, err := h.svc.ComplianceFrameworks(c.Request.Context())
	if err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	c.JSON(http.StatusOK, frameworks)
}

func (h *Handler) CreateCompliance(c *gin.Context) {
	var in models.ComplianceInput
	if !bind(c, &in) {
		return
	}
	r, err := h.svc.CreateCompliance(c.Request.Context(), in)
	if err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) UpdateCompliance(c *gin.Context) {
	var patch models.CompliancePatch
	if !bind(c, &patch) {
		return
	}
	r, err := h.svc.UpdateCompliance(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteCompliance(c *gin.Context) {
	if err := h.svc.DeleteCompliance(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Compliance requirement", err)
		return
	}
	deleted(c, "Compliance requirement")
}
