package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, "Dashboard", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Heatmap returns the 5×5 likelihood/impact grid.
func (h *Handler) Heatmap(c *gin.Context) {
	cells, err := h.svc.Heatmap(c.Request.Context())
	if err != nil {
		fail(c, "Heatmap", err)
		return
	}
	c.JSON(http.StatusOK, cells)
}
