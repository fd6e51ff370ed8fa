package http

import (
	"net/http"

	"checkout-svc/internal/controller/http/handlers"
	"checkout-svc/pkg/health"
	"checkout-svc/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	checkout    handlers.CheckoutHandler
	healthReg   *health.Registry
	allowOrigin string
}

func NewRouter(checkout handlers.CheckoutHandler, healthReg *health.Registry, allowOrigin string) *Router {
	return &Router{
		checkout:    checkout,
		healthReg:   healthReg,
		allowOrigin: allowOrigin,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.Use(CORSMiddleware(r.allowOrigin))

	// Only the creation verb is accepted on the checkout endpoints.
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	engine.POST("/checkout/sessions", r.checkout.Create)
	engine.POST("/checkout/sessions/retrieve", r.checkout.Retrieve)

	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthReg, health.DefaultTimeout))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}
