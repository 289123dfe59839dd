// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/life-planner/backend/internal/integration/entrypoint/controller"
	"github.com/life-planner/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	habitController       *controller.HabitController
	goalController        *controller.GoalController
	analyticsController   *controller.AnalyticsController
	syncController        *controller.SyncController
	rateLimiter           *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	habitController *controller.HabitController,
	goalController *controller.GoalController,
	analyticsController *controller.AnalyticsController,
	syncController *controller.SyncController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		transactionController: transactionController,
		habitController:       habitController,
		goalController:        goalController,
		analyticsController:   analyticsController,
		syncController:        syncController,
		rateLimiter:           rateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// protected returns the middleware chain of authenticated routes. The rate
// limiter runs after authentication so it can key on the user.
func (r *Router) protected() []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{r.authMiddleware.Authenticate()}
	if r.rateLimiter != nil {
		handlers = append(handlers, r.rateLimiter.Middleware())
	}
	return handlers
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	if r.authMiddleware == nil {
		return
	}

	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.protected()...)
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.POST("/:id/settle", r.transactionController.Settle)
				transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
			}
		}

		if r.habitController != nil {
			habits := v1.Group("/habits")
			habits.Use(r.protected()...)
			{
				habits.GET("", r.habitController.List)
				habits.POST("", r.habitController.Create)
				habits.DELETE("/:id", r.habitController.Delete)
				habits.POST("/:id/completions", r.habitController.RecordCompletion)
			}
		}

		if r.goalController != nil {
			goals := v1.Group("/goals")
			goals.Use(r.protected()...)
			{
				goals.GET("", r.goalController.List)
				goals.PUT("", r.goalController.Set)
				goals.GET("/:id", r.goalController.Get)
				goals.DELETE("/:id", r.goalController.Delete)
			}
		}

		if r.analyticsController != nil {
			analytics := v1.Group("/analytics")
			analytics.Use(r.protected()...)
			{
				analytics.GET("/summary", r.analyticsController.Summary)
				analytics.GET("/trends", r.analyticsController.Trends)
				analytics.GET("/entities", r.analyticsController.Entities)
				analytics.GET("/habits/breakdown", r.analyticsController.HabitBreakdown)
				analytics.GET("/budget/breakdown", r.analyticsController.BudgetBreakdown)
				analytics.GET("/data-range", r.analyticsController.DataRange)
			}
		}

		if r.syncController != nil {
			sync := v1.Group("/sync")
			sync.Use(r.protected()...)
			{
				sync.POST("/deltas", r.syncController.Push)
				sync.GET("/snapshot", r.syncController.Snapshot)
				sync.POST("/reconcile", r.syncController.Reconcile)
				sync.GET("/status", r.syncController.Status)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
