// Package http provides the HTTP handler layer for the offer search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all offer search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *OfferHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	// Flight offer search
	flights := api.Group("/flights")
	flights.GET("/search", h.SearchOffers)

	// Email-only authentication
	auth := api.Group("/auth")
	auth.POST("/login", h.Login)
	auth.GET("/me", h.Me)

	// Subscription billing
	bill := api.Group("/billing")
	bill.GET("/price", h.SubscriptionPrice)
	bill.GET("/quota", h.Quota)
	bill.POST("/session", h.CreateCheckoutSession)

	// Stripe webhook callbacks
	api.POST("/stripe/webhook", h.StripeWebhook)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware on the
// versioned API group. The health endpoint stays middleware-free.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *OfferHandler, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.GET("/search", h.SearchOffers)

	auth := api.Group("/auth")
	auth.POST("/login", h.Login)
	auth.GET("/me", h.Me)

	bill := api.Group("/billing")
	bill.GET("/price", h.SubscriptionPrice)
	bill.GET("/quota", h.Quota)
	bill.POST("/session", h.CreateCheckoutSession)

	api.POST("/stripe/webhook", h.StripeWebhook)
}
