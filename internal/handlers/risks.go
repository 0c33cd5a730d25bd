package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (h *Handler) ListRisks(c *gin.Context) {
	var f query.RiskFilter
	if !bindQuery(c, &f) {
		return
	}
	risks, err := h.svc.ListRisks(c.Request.Context(), f)
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, risks)
}

func (h *Handler) GetRisk(c *gin.Context) {
	r, err := h.svc.GetRisk(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// RecentRisks — последние созданные риски, по умолчанию пять.
func (h *Handler) RecentRisks(c *gin.Context) {
	limit, ok := queryInt(c, "limit", query.RecentRisksOnDashboard)
	if !ok {
		return
	}
	risks, err := h.svc.RecentRisks(c.Request.Context(), limit)
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, risks)
}

func (h *Handler) RiskCategories(c *gin.Context) {
	cats, err := h.svc.RiskCategories(c.Request.Context())
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) CreateRisk(c *gin.Context) {
	var in models.RiskInput
	if !bind(c, &in) {
		return
	}
	r, err := h.svc.CreateRisk(c.Request.Context(), in)
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) UpdateRisk(c *gin.Context) {
	var patch models.RiskPatch
	if !bind(c, &patch) {
		return
	}
	r, err := h.svc.UpdateRisk(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) DeleteRisk(c *gin.Context) {
	if err := h.svc.DeleteRisk(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Risk", err)
		return
	}
	deleted(c, "Risk")
}
