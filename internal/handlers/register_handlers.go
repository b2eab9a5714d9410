package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetops/fleet_ledger_app/internal/core/domain"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
	"github.com/fleetops/fleet_ledger_app/internal/middleware"
	"github.com/fleetops/fleet_ledger_app/internal/platform/config"
)

// UserIDHeader names the optional header identifying the acting user for
// audit fields. Authentication itself is handled upstream of this service.
const UserIDHeader = "X-User-ID"

func callerUserID(c *gin.Context) string {
	if userID := c.GetHeader(UserIDHeader); userID != "" {
		return userID
	}
	return "anonymous"
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// methodstatus accepts the two MethodStatus values.
		_ = v.RegisterValidation("methodstatus", func(fl validator.FieldLevel) bool {
			s := domain.MethodStatus(fl.Field().String())
			return s == domain.MethodActive || s == domain.MethodInactive
		})
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, middleware.CompanyIDHeader, UserIDHeader)
		r.Use(cors.New(corsCfg))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes; every record is scoped by the opaque company ID header
	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.CompanyContextMiddleware())

	v1.GET("/", getHome)

	registerMethodRoutes(v1, services.Method)
	registerLedgerRoutes(v1, services.Ledger)
}
