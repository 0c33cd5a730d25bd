package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/middleware"
	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

// ---- планы мероприятий

func (h *Handler) ListActionPlans(c *gin.Context) {
	var f query.ActionPlanFilter
	if !bindQuery(c, &f) {
		return
	}
	plans, err := h.svc.ListActionPlans(c.Request.Context(), f)
	if err != nil {
		fail(c, "Action plan", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) GetActionPlan(c *gin.Context) {
	p, err := h.svc.GetActionPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Action plan", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateActionPlan(c *gin.Context) {
	var in models.ActionPlanInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.CreateActionPlan(c.Request.Context(), in)
	if err != nil {
		fail(c, "Action plan", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateActionPlan(c *gin.Context) {
	var patch models.ActionPlanPatch
	if !bind(c, &patch) {
		return
	}
	p, err := h.svc.UpdateActionPlan(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Action plan", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteActionPlan(c *gin.Context) {
	if err := h.svc.DeleteActionPlan(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Action plan", err)
		return
	}
	deleted(c, "Action plan")
}

// AddComment appends a comment; without an explicit author the session
// user's name is used.
func (h *Handler) AddComment(c *gin.Context) {
	var in models.CommentInput
	if !bind(c, &in) {
		return
	}
	if in.Author == "" {
		if u, ok := middleware.CurrentUser(c); ok {
			in.Author = u.Username
		}
	}
	p, err := h.svc.AddComment(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, "Action plan", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	var patch models.TaskPatch
	if !bind(c, &patch) {
		return
	}
	p, err := h.svc.UpdateTask(c.Request.Context(), c.Param("id"), c.Param("taskId"), patch)
	if err != nil {
		fail(c, "Action plan task", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ---- планы аудита

func (h *Handler) ListAuditPlans(c *gin.Context) {
	var f query.AuditPlanFilter
	if !bindQuery(c, &f) {
		return
	}
	plans, err := h.svc.ListAuditPlans(c.Request.Context(), f)
	if err != nil {
		fail(c, "Audit plan", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) GetAuditPlan(c *gin.Context) {
	p, err := h.svc.GetAuditPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Audit plan", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateAuditPlan(c *gin.Context) {
	var in models.AuditPlanInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.CreateAuditPlan(c.Request.Context(), in)
	if err != nil {
		fail(c, "Audit plan", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateAuditPlan(c *gin.Context) {
	var patch models.AuditPlanPatch
	if !bind(c, &patch) {
		return
	}
	p, err := h.svc.UpdateAuditPlan(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Audit plan", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteAuditPlan(c *gin.Context) {
	if err := h.svc.DeleteAuditPlan(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Audit plan", err)
		return
	}
	deleted(c, "Audit plan")
}

func (h *Handler) AddFinding(c *gin.Context) {
	var in models.FindingInput
	if !bind(c, &in) {
		return
	}
	p, err := h.svc.AddFinding(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, "Audit plan", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}
