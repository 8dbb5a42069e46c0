package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomasvik/geovisits/internal/handler"
	"github.com/tomasvik/geovisits/internal/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Ping     *handler.PingHandler
	Visit    *handler.VisitHandler
	Place    *handler.PlaceHandler
	Settings *handler.SettingsHandler
}

// SetupRouter wires middleware and routes
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimit(50, 100))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Visit detection engine is running",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/pings", h.Ping.ProcessPing)

		visits := api.Group("/visits")
		{
			visits.GET("", h.Visit.ListVisits)
			visits.GET("/:id", h.Visit.GetVisit)
			visits.POST("/:id/end", h.Visit.EndVisit)
			visits.DELETE("/:id", h.Visit.DeleteVisit)
		}

		api.POST("/trips", h.Place.CreateTrip)
		api.POST("/regions", h.Place.CreateRegion)

		places := api.Group("/places")
		{
			places.POST("", h.Place.CreatePlace)
			places.GET("/:id", h.Place.GetPlace)
			places.DELETE("/:id", h.Place.DeletePlace)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/detection", h.Settings.GetPolicy)
			settings.PUT("/detection", h.Settings.UpdatePolicy)
		}

		api.POST("/admin/cleanup", h.Settings.RunCleanup)
	}

	return r
}
