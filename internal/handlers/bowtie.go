package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

// ===== причины

func (h *Handler) ListRiskFactors(c *gin.Context) {
	var f query.NodeFilter
	if !bindQuery(c, &f) {
		return
	}
	factors, err := h.svc.ListRiskFactors(c.Request.Context(), f)
	if err != nil {
		fail(c, "Risk factor", err)
		return
	}
	c.JSON(http.StatusOK, factors)
}

func (h *Handler) GetRiskFactor(c *gin.Context) {
	f, err := h.svc.GetRiskFactor(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Risk factor", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) CreateRiskFactor(c *gin.Context) {
	var in models.RiskFactorInput
	if !bind(c, &in) {
		return
	}
	f, err := h.svc.CreateRiskFactor(c.Request.Context(), in)
	if err != nil {
		fail(c, "Risk factor", err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *Handler) UpdateRiskFactor(c *gin.Context) {
	var patch models.NodePatch
	if !bind(c, &patch) {
		return
	}
	f, err := h.svc.UpdateRiskFactor(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Risk factor", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) DeleteRiskFactor(c *gin.Context) {
	if err := h.svc.DeleteRiskFactor(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Risk factor", err)
		return
	}
	deleted(c, "Risk factor")
}

// ===== последствия

func (h *Handler) ListConsequences(c *gin.Context) {
	var f query.NodeFilter
	if !bindQuery(c, &f) {
		return
	}
	consequences, err := h.svc.ListConsequences(c.Request.Context(), f)
	if err != nil {
		fail(c, "Consequence", err)
		return
	}
	c.JSON(http.StatusOK, consequences)
}

func (h *Handler) GetConsequence(c *gin.Context) {
	q, err := h.svc.GetConsequence(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Consequence", err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) CreateConsequence(c *gin.Context) {
	var in models.ConsequenceInput
	if !bind(c, &in) {
		return
	}
	q, err := h.svc.CreateConsequence(c.Request.Context(), in)
	if err != nil {
		fail(c, "Consequence", err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) UpdateConsequence(c *gin.Context) {
	var patch models.NodePatch
	if !bind(c, &patch) {
		return
	}
	q, err := h.svc.UpdateConsequence(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Consequence", err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) DeleteConsequence(c *gin.Context) {
	if err := h.svc.DeleteConsequence(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Consequence", err)
		return
	}
	deleted(c, "Consequence")
}

// ===== связи bow-tie

func (h *Handler) ListBowTies(c *gin.Context) {
	bowties, err := h.svc.ListBowTies(c.Request.Context())
	if err != nil {
		fail(c, "Bow-tie relationship", err)
		return
	}
	c.JSON(http.StatusOK, bowties)
}

func (h *Handler) GetBowTie(c *gin.Context) {
	b, err := h.svc.GetBowTie(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "Bow-tie relationship", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) CreateBowTie(c *gin.Context) {
	var in models.BowTieInput
	if !bind(c, &in) {
		return
	}
	b, err := h.svc.CreateBowTie(c.Request.Context(), in)
	if err != nil {
		fail(c, "Bow-tie relationship", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) UpdateBowTie(c *gin.Context) {
	var patch models.BowTiePatch
	if !bind(c, &patch) {
		return
	}
	b, err := h.svc.UpdateBowTie(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, "Bow-tie relationship", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBowTie(c *gin.Context) {
	if err := h.svc.DeleteBowTie(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "Bow-tie relationship", err)
		return
	}
	deleted(c, "Bow-tie relationship")
}

// BowTieDiagram returns the assembled diagram of one risk.
func (h *Handler) BowTieDiagram(c *gin.Context) {
	d, err := h.svc.BowTieForRisk(c.Request.Context(), c.Param("riskId"))
	if err != nil {
		fail(c, "Risk", err)
		return
	}
	c.JSON(http.StatusOK, d)
}
