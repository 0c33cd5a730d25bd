package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"grcwalk/internal/transfer"
)

// Export serves the whole collection of kind as a JSON file download.
func (h *Handler) Export(kind transfer.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h.svc.Export(c.Request.Context(), kind)
		if err != nil {
			fail(c, string(kind), err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", transfer.FileName(kind, h.now())))
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	}
}

// Import reads a JSON array from the request body and creates every element.
func (h *Handler) Import(kind transfer.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
		n, err := h.svc.Import(c.Request.Context(), kind, data)
		if err != nil {
			fail(c, string(kind), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Imported %d %s", n, kind),
			"count":   n,
		})
	}
}
