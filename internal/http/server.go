// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"freightdesk/internal/http/handlers"
	"freightdesk/internal/http/middleware"
	"freightdesk/internal/modules/booking"
	"freightdesk/internal/modules/fleet"
	"freightdesk/internal/modules/pricing"
)

type ServerDeps struct {
	Fleet   *fleet.Service
	Pricing *pricing.Service
	Booking *booking.Service
	Logger  *zap.Logger
}

type Server struct {
	fleet   *fleet.Service
	pricing *pricing.Service
	booking *booking.Service
	log     *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		fleet:   deps.Fleet,
		pricing: deps.Pricing,
		booking: deps.Booking,
		log:     deps.Logger,
	}
}

// Engine returns the gin engine without the CORS wrapper.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/v1")
	{
		vehicles := handlers.NewVehicleHandler(s.fleet)
		api.GET("/trucks", vehicles.List)
		api.POST("/trucks", vehicles.Create)
		api.DELETE("/trucks/:id", vehicles.Delete)

		drivers := handlers.NewDriverHandler(s.fleet)
		api.GET("/drivers", drivers.List)
		api.POST("/drivers", drivers.Create)
		api.DELETE("/drivers/:id", drivers.Delete)

		trips := handlers.NewTripHandler(s.fleet, s.booking)
		api.GET("/trips", trips.List)
		api.POST("/trips/book", trips.Book)

		quotes := handlers.NewQuoteHandler(s.pricing)
		api.POST("/quote", quotes.Create)
	}
	return r
}

// Routes wraps the engine with a permissive CORS policy for the browser client.
func (s *Server) Routes() http.Handler {
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return cors(s.Engine())
}
