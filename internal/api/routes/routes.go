package routes

import (
	"bank-core/internal/api/handlers"
	"bank-core/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes with the container dependencies.
func RegisterRoutes(router *gin.Engine, container handlers.HandlerDependencies) {
	router.Use(middleware.RequestContextMiddleware()) // request-scoped context first
	router.Use(middleware.Metrics())
	router.Use(middleware.PrometheusMiddleware())

	router.POST("/users", handlers.MakeCreateUserHandler(container))
	router.GET("/users/:username/balance", handlers.MakeGetBalanceHandler(container))
	router.POST("/users/:username/deposit", handlers.MakeDepositHandler(container))
	router.POST("/users/:username/withdraw", handlers.MakeWithdrawHandler(container))
	router.POST("/transfers", handlers.MakeTransferHandler(container))

	router.GET("/metrics", handlers.GetMetrics)
	router.GET("/prometheus", handlers.PrometheusMetrics)
	router.GET("/events", handlers.Events)
}
