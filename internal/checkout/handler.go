package checkout

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Forwarder passes a raw item list to the provider.
type Forwarder interface {
	Forward(ctx context.Context, items json.RawMessage) ([]byte, error)
}

type Handler struct {
	service   *Service
	forwarder Forwarder
}

func NewHandler(service *Service, forwarder Forwarder) *Handler {
	return &Handler{service: service, forwarder: forwarder}
}

// POST /api/create-preference
func (h *Handler) CreatePreference(c *gin.Context) {
	var req struct {
		Items json.RawMessage `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	raw, err := h.forwarder.Forward(c.Request.Context(), req.Items)
	if err != nil {
		log.Println("Error creating preference:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating preference"})
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

// GET /admin/orders?limit=
func (h *Handler) ListOrders(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	orders, err := h.service.Orders(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	c.JSON(http.StatusOK, orders)
}
