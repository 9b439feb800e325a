package catalog

import (
	"errors"
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

// GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		log.Println("catalog: categories:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, nonNil(categories))
}

// GET /products?category=
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context(), c.Query("category"))
	if err != nil {
		log.Println("catalog: products:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, nonNil(products))
}

// GET /products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.service.Configurable(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		log.Println("catalog: product:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /catering?type=dulce|salado
func (h *Handler) ListCatering(c *gin.Context) {
	t := CateringType(c.Query("type"))
	if t != "" && t != CateringSweet && t != CateringSavory {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be dulce or salado"})
		return
	}

	items, err := h.service.Catering(c.Request.Context(), t)
	if err != nil {
		log.Println("catalog: catering:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch catering"})
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":          item.ID,
			"name":        item.Name,
			"description": item.Description,
			"image":       item.Image,
			"type":        item.Type,
			"options":     item.Options,
			"from_price":  item.StartingPrice(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

// POST /admin/products
func (h *Handler) SaveProduct(c *gin.Context) {
	var p Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SaveProduct(c.Request.Context(), &p); err != nil {
		switch {
		case IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrReadOnly):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// POST /admin/products/:id/image
func (h *Handler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	url, err := h.service.UploadImage(
		c.Request.Context(),
		c.Param("id"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		switch {
		case IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, ErrReadOnly):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": url})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
