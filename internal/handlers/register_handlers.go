package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kopkas/coopledger/cmd/docs"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/middleware"
	"github.com/kopkas/coopledger/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// enqueuer may be nil, in which case asynchronous event intake is disabled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	enqueuer EventEnqueuer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, enqueuer)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	enqueuer EventEnqueuer,
) {
	rate, _ := limiter.NewRateFromFormatted(fmt.Sprintf("%d-M", cfg.RateLimitRPM))
	ipLimiter := limiter.New(memory.NewStore(), rate)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.RateLimit(ipLimiter))

	// Every resource lives under its owning tenant.
	tenant := v1.Group("/tenants/:tenantID")

	registerAccountRoutes(tenant, services.Account)
	registerJournalRoutes(tenant, services.Journal)
	registerReportingRoutes(tenant, services.Reporting)
	registerSettingsRoutes(tenant, services.Settings)
	registerEventRoutes(tenant, services.Posting, enqueuer)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
