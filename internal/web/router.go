package web

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the gin engine: middleware, parsed templates and
// the full route table.
func NewRouter(h *Handler, tmpl *template.Template) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestMetrics(), h.SessionMiddleware())
	r.SetHTMLTemplate(tmpl)

	// Storefront (public)
	r.GET("/", h.Home)
	r.GET("/buscar", h.Search)
	r.GET("/producto/:id", h.ProductDetail)

	// Authentication
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/registro", h.RegisterForm)
	r.POST("/registro", h.Register)
	r.POST("/logout", h.Logout)

	// Administration (requires a stored token)
	admin := r.Group("/admin", h.AuthRequired())
	{
		admin.GET("", h.AdminProducts)
		admin.GET("/productos/nuevo", h.NewProductForm)
		admin.POST("/productos/nuevo", h.CreateProduct)
		admin.GET("/productos/:id", h.EditProductForm)
		admin.POST("/productos/:id", h.UpdateProduct)
		admin.POST("/productos/:id/eliminar", h.DeleteProduct)
		admin.POST("/productos/:id/imagenes", h.AddProductImages)
		admin.POST("/productos/:id/imagenes/:imgid/eliminar", h.DeleteProductImage)
		admin.GET("/personalizar", h.CustomizeForm)
		admin.POST("/personalizar", h.SaveCustomize)
	}

	// Operational endpoints
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
