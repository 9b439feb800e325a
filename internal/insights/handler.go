package insights

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /admin/insights
func (h *Handler) Get(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		log.Println("insights: report:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no data available"})
		return
	}

	if report.Products == nil {
		report.Products = []Snapshot{}
	}
	c.JSON(http.StatusOK, report)
}
