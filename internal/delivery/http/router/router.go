// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler *handler.CatalogHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	ChatHandler    *handler.ChatHandler
	AccountHandler *handler.AccountHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
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
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.params.AuthMiddleware.Authenticate

	// Catalog browsing is public; management requires authentication and the
	// application layer checks the role.
	products := e.Group("/products")
	{
		products.GET("", r.params.CatalogHandler.Query)
		products.GET("/:id", r.params.CatalogHandler.Get)
		products.POST("", r.params.CatalogHandler.Add, auth)
		products.PATCH("/:id", r.params.CatalogHandler.Update, auth)
		products.DELETE("/:id", r.params.CatalogHandler.Delete, auth)
		products.POST("/:id/image", r.params.CatalogHandler.UploadImage, auth)
	}

	cart := e.Group("/cart", auth)
	{
		cart.GET("", r.params.CartHandler.Get)
		cart.PUT("/items", r.params.CartHandler.SetItem)
	}

	orders := e.Group("/orders", auth)
	{
		orders.POST("/checkout", r.params.OrderHandler.Checkout)
		orders.GET("/me", r.params.OrderHandler.ListMine)
		orders.GET("", r.params.OrderHandler.List)
		orders.GET("/:id", r.params.OrderHandler.Get)
		orders.POST("/:id/advance", r.params.OrderHandler.Advance)
		orders.POST("/:id/cancel", r.params.OrderHandler.Cancel)
		orders.GET("/:id/receipt-qr", r.params.OrderHandler.ReceiptQR)
	}

	chats := e.Group("/chats", auth)
	{
		chats.POST("/sessions", r.params.ChatHandler.StartSession)
		chats.GET("/index", r.params.ChatHandler.ListIndex)
		chats.GET("/:roomId/messages", r.params.ChatHandler.ListMessages)
		chats.POST("/:roomId/messages", r.params.ChatHandler.SendMessage)
		chats.GET("/:roomId/stream", r.params.ChatHandler.Stream)
	}

	users := e.Group("/users", auth)
	{
		users.GET("", r.params.AccountHandler.ListUsers)
		users.POST("/supervisors", r.params.AccountHandler.AddSupervisor)
		users.PUT("/:id/role", r.params.AccountHandler.ChangeRole)
		users.PUT("/:id/blocked", r.params.AccountHandler.SetBlocked)
		users.DELETE("/:id", r.params.AccountHandler.DeleteUser)
	}

	reports := e.Group("/reports", auth)
	{
		reports.POST("", r.params.AccountHandler.FileReport)
		reports.GET("", r.params.AccountHandler.ListReports)
	}

	profile := e.Group("/profile", auth)
	{
		profile.GET("", r.params.ProfileHandler.Get)
		profile.PATCH("", r.params.ProfileHandler.Update)
		profile.PUT("/email", r.params.ProfileHandler.ChangeEmail)
		profile.POST("/photo", r.params.ProfileHandler.UploadPhoto)
	}
}
