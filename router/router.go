// Package router wires middleware and handlers into the gin engine.
package router

import (
	"github.com/corkphoto/itinerary-backend/config"
	"github.com/corkphoto/itinerary-backend/handlers"
	"github.com/corkphoto/itinerary-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies holds everything SetupRouter needs.
type Dependencies struct {
	Config           *config.Config
	JWTValidator     middleware.Validator
	ItineraryHandler *handlers.ItineraryHandler
	LocationHandler  *handlers.LocationHandler
	HealthHandler    *handlers.HealthHandler
	// RateLimiter guards mutating routes. Nil disables it.
	RateLimiter gin.HandlerFunc
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))

	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := deps.RateLimiter
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTValidator))
	{
		trips := v1.Group("/trips")
		{
			trips.GET("", deps.ItineraryHandler.ListTripsHandler)
			trips.POST("", limit, deps.ItineraryHandler.CreateTripHandler)
			trips.POST("/random", limit, deps.ItineraryHandler.CreateRandomTripHandler)
			trips.GET("/:id", deps.ItineraryHandler.GetTripHandler)
			trips.DELETE("/:id", limit, deps.ItineraryHandler.DeleteTripHandler)

			stops := trips.Group("/:id/stops", limit)
			{
				stops.POST("", deps.ItineraryHandler.AddStopHandler)
				stops.DELETE("/:stopId", deps.ItineraryHandler.RemoveStopHandler)
				stops.POST("/:stopId/move", deps.ItineraryHandler.MoveStopHandler)
			}
		}

		locations := v1.Group("/locations")
		{
			locations.GET("", deps.LocationHandler.ListLocationsHandler)
			locations.GET("/:id", deps.LocationHandler.GetLocationHandler)
			locations.POST("", limit, deps.LocationHandler.CreateLocationHandler)
		}
	}

	return r
}
