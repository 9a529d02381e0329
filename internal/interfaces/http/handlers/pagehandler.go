package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the upload form pages
type PageHandler struct {
	defaultSender string
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(defaultSender string) *PageHandler {
	return &PageHandler{defaultSender: defaultSender}
}

// Index handles GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"DefaultSender": h.defaultSender,
	})
}

// OrdenesPago handles GET /ordenes-pago
func (h *PageHandler) OrdenesPago(c *gin.Context) {
	c.HTML(http.StatusOK, "ordenes_pago.html", nil)
}
