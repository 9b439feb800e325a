package router

import (
	"net/http"
	"time"

	"sanfeliz/internal/auth"
	"sanfeliz/internal/catalog"
	"sanfeliz/internal/checkout"
	"sanfeliz/internal/insights"
	"sanfeliz/internal/middleware"
	"sanfeliz/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the handlers the HTTP surface is built from.
type Deps struct {
	Catalog     *catalog.Handler
	Sessions    *session.Handler
	Checkout    *checkout.Handler
	Auth        *auth.Handler
	Insights    *insights.Handler
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── CATALOG ─────────────────────────
	r.GET("/categories", d.Catalog.ListCategories)
	r.GET("/products", d.Catalog.ListProducts)
	r.GET("/products/:id", d.Catalog.GetProduct)
	r.GET("/catering", d.Catalog.ListCatering)

	// ───────────────────────── ORDER SESSIONS ─────────────────────────
	sessions := r.Group("/sessions")
	{
		sessions.POST("", d.Sessions.Open)
		sessions.GET("/:id", d.Sessions.Get)
		sessions.POST("/:id/select", d.Sessions.Select)
		sessions.POST("/:id/adjust", d.Sessions.Adjust)
		sessions.POST("/:id/modifier", d.Sessions.Modifier)
		sessions.PUT("/:id/customization", d.Sessions.Customization)
		sessions.PUT("/:id/notes", d.Sessions.Notes)
		sessions.POST("/:id/whatsapp", d.Sessions.WhatsApp)
		sessions.POST("/:id/checkout", d.Sessions.Checkout)
		sessions.DELETE("/:id", d.Sessions.Close)
	}

	// storefront pass-through
	r.POST("/api/create-preference", d.Checkout.CreatePreference)

	// ───────────────────────── AUTH ─────────────────────────
	r.POST("/auth/login", d.Auth.Login)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/products", d.Catalog.SaveProduct)
		admin.POST("/products/:id/image", d.Catalog.UploadImage)
		admin.GET("/orders", d.Checkout.ListOrders)
		admin.GET("/insights", d.Insights.Get)
	}

	return r
}
