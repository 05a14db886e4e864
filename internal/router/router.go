package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/Gladwin-7/bike-rental-system/internal/handler"
	"github.com/Gladwin-7/bike-rental-system/internal/metrics"
	"github.com/Gladwin-7/bike-rental-system/internal/middleware"
)

// RegisterRoutes wires every endpoint of the rental API onto the
// provided Echo instance. The paths and payloads match what the
// customer and admin dashboards call; there is no versioned prefix.
// The bike listings additionally pass through the Redis response
// cache, which the mutation handlers invalidate after each commit.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, b *handler.BikeHandler, r *handler.RentalHandler, cache *middleware.Cache) {
	// Operational endpoints for load balancers and scrapers.
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", metrics.Handler())

	// Account endpoints.
	e.POST("/login", a.Login)
	e.POST("/register", a.Register)

	// Bike listings. /get-bikes serves the customer dashboard
	// (Available only); /get-all-bikes serves the admin dashboard.
	e.GET("/get-bikes", b.GetBikes, cache.Middleware())
	e.GET("/get-all-bikes", b.GetAllBikes, cache.Middleware())

	// Rental lifecycle.
	e.POST("/rent-bike", r.RentBike)
	e.POST("/return-bike", r.ReturnBike)
	e.GET("/customer-rentals/:customerId", r.CustomerRentals)
	e.GET("/rented-bikes", r.RentedBikes)

	// Admin inventory management.
	e.POST("/add-bike", b.AddBike)
	e.DELETE("/delete-bike/:bikeId", b.DeleteBike)
}
