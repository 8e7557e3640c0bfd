// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams collects the handlers wired into the HTTP server.
type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CategoryHandler *handler.CategoryHandler
	ProductHandler  *handler.ProductHandler
	SettingsHandler *handler.SettingsHandler
	ExportHandler   *handler.ExportHandler
	UploadHandler   *handler.UploadHandler
	CarouselHandler *handler.CarouselHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
// Catalog reads are public; mutations require authentication; account
// administration and the carousel toggle require the admin role.
func (r *router) RegisterRoutes(e *echo.Echo) {
	authenticate := r.params.AuthMiddleware.Authenticate
	adminOnly := r.params.AuthMiddleware.RequireRole(entity.RoleAdmin)

	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/refresh", r.params.AuthHandler.Refresh)
		authGroup.POST("/logout", r.params.AuthHandler.Logout)
		authGroup.POST("/change-password", r.params.AuthHandler.ChangePassword, authenticate)
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", r.params.CategoryHandler.List)
		categoryGroup.GET("/:id", r.params.CategoryHandler.Get)
		categoryGroup.POST("", r.params.CategoryHandler.Create, authenticate)
		categoryGroup.PUT("/:id", r.params.CategoryHandler.Update, authenticate)
		categoryGroup.DELETE("/:id", r.params.CategoryHandler.Delete, authenticate)
		categoryGroup.POST("/:id/restore", r.params.CategoryHandler.Restore, authenticate)
	}

	productGroup := api.Group("/products")
	{
		productGroup.GET("", r.params.ProductHandler.List)
		productGroup.GET("/sizes", r.params.ProductHandler.ListUniqueSizes)
		productGroup.GET("/:id", r.params.ProductHandler.Get)
		productGroup.GET("/:id/sizes", r.params.ProductHandler.ListSizes)
		productGroup.POST("", r.params.ProductHandler.Create, authenticate)
		productGroup.PUT("/:id", r.params.ProductHandler.Update, authenticate)
		productGroup.DELETE("/:id", r.params.ProductHandler.Delete, authenticate)
		productGroup.POST("/:id/sizes", r.params.ProductHandler.AddSize, authenticate)
		productGroup.PUT("/:id/sizes/:sizeId", r.params.ProductHandler.UpdateSize, authenticate)
		productGroup.DELETE("/:id/sizes/:sizeId", r.params.ProductHandler.DeleteSize, authenticate)
	}

	settingsGroup := api.Group("/settings")
	{
		settingsGroup.GET("", r.params.SettingsHandler.List)
		settingsGroup.GET("/:key", r.params.SettingsHandler.Get)
		settingsGroup.PUT("/:key", r.params.SettingsHandler.Upsert, authenticate)
	}

	// Carousel images are plain files; the visibility flag only exists in
	// the exported document.
	carouselGroup := api.Group("/carousel")
	{
		carouselGroup.GET("", r.params.CarouselHandler.List)
		carouselGroup.POST("/upload", r.params.CarouselHandler.Upload, authenticate, adminOnly)
		carouselGroup.DELETE("/:filename", r.params.CarouselHandler.Delete, authenticate, adminOnly)
		carouselGroup.PUT("/settings", r.params.SettingsHandler.UpdateCarousel, authenticate, adminOnly)
	}

	// The document read is public so the storefront can fetch fresh data
	// without waiting for a file write; the explicit export needs a login
	// but no particular role.
	api.GET("/export/data", r.params.ExportHandler.GetData)
	api.POST("/export", r.params.ExportHandler.Export, authenticate)

	api.POST("/upload", r.params.UploadHandler.Upload, authenticate)

	adminGroup := api.Group("/admin", authenticate, adminOnly)
	{
		adminGroup.GET("/users", r.params.AuthHandler.ListUsers)
		adminGroup.GET("/sessions", r.params.AuthHandler.ListSessions)
		adminGroup.DELETE("/sessions/:id", r.params.AuthHandler.RevokeSession)
	}
}
