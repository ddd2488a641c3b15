// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"frishta/internal/delivery/http/middleware"
	"frishta/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	SongHandler    *handler.SongHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	songHandler    *handler.SongHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		songHandler:    params.SongHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/register/start", r.authHandler.RegisterStart)
		authGroup.POST("/register/verify", r.authHandler.RegisterVerify)
		authGroup.POST("/register/resend", r.authHandler.RegisterResend)
		authGroup.POST("/login", r.authHandler.Login)

		// Session-bound auth routes
		authGroup.GET("/me", r.authHandler.Profile, r.authMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
	}

	songGroup := e.Group("/api/songs")
	songGroup.Use(r.authMiddleware.Authenticate)
	{
		songGroup.GET("", r.songHandler.ListSongs)
		songGroup.GET("/categories", r.songHandler.ListCategories)
	}
}
