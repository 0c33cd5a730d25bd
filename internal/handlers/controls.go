package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (h *Handler) ListControls(c *gin.Context) {
	var f query.ControlFilter
	if !bindQuery(c, &f) {
		return
	}
	controls, err := h.svc.ListControls(c.Request.Context(), f)
	if err != nil {
		fail(c, "Control", err)
		return
	}
	c.JSON(http.StatusOK, controls)
}

func (h *Handler) GetControl(c *gin.Context) {
	ctl, err := h.svc.GetControl(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Control", err)
		return
	}
	c.JSON(http.StatusOK, ctl)
}

func (h *Handler) CreateControl(c *gin.Context) {
	var in models.ControlInput
	if !bind(c, &in) {
		return
	}
	ctl, err := h.svc.CreateControl(c.Request.Context(), in)
	if err != nil {
		fail(c, "Control", err)
		return
	}
	c.JSON(http.StatusCreated, ctl)
}

func (h *Handler) UpdateControl(c *gin.Context) {
	var patch models.ControlPatch
	if !bind(c, &patch) {
		return
	}
	ctl, err := h.svc.UpdateControl(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Control", err)
		return
	}
	c.JSON(http.StatusOK, ctl)
}

func (h *Handler) DeleteControl(c *gin.Context) {
	if err := h.svc.DeleteControl(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Control", err)
		return
	}
	deleted(c, "Control")
}
