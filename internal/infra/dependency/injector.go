// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/life-planner/backend/config"
	"github.com/life-planner/backend/internal/application/adapter"
	"github.com/life-planner/backend/internal/application/usecase/analytics"
	"github.com/life-planner/backend/internal/application/usecase/goal"
	"github.com/life-planner/backend/internal/application/usecase/habit"
	"github.com/life-planner/backend/internal/application/usecase/replication"
	"github.com/life-planner/backend/internal/application/usecase/transaction"
	"github.com/life-planner/backend/internal/infra/server/router"
	"github.com/life-planner/backend/internal/integration/adapters"
	"github.com/life-planner/backend/internal/integration/entrypoint/controller"
	"github.com/life-planner/backend/internal/integration/entrypoint/middleware"
	"github.com/life-planner/backend/internal/integration/persistence"
	"github.com/life-planner/backend/internal/integration/queue"
	"github.com/life-planner/backend/internal/integration/syncworker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Queue       adapter.DeltaQueue
	Tracker     *replication.InMemoryStatusTracker
	Worker      *syncworker.Worker
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewQueue connects the delta queue selected by cfg.Queue.Backend.
func NewQueue(cfg *config.Config) (adapter.DeltaQueue, error) {
	switch cfg.Queue.Backend {
	case config.QueueBackendRedis:
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		if cfg.Redis.DB != 0 {
			opts.DB = cfg.Redis.DB
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return queue.NewRedisQueue(client, cfg.Queue.RedisKey, cfg.Queue.MaxAttempts), nil
	case config.QueueBackendAMQP:
		return queue.NewAMQPQueue(cfg.Queue.AMQPURL, cfg.Queue.AMQPExchange, cfg.Queue.AMQPQueue, cfg.Queue.MaxAttempts)
	}
	return nil, fmt.Errorf("unsupported queue backend %q", cfg.Queue.Backend)
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, deltaQueue adapter.DeltaQueue) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	habitRepo := persistence.NewHabitRepository(db)
	completionRepo := persistence.NewHabitCompletionRepository(db)
	goalRepo := persistence.NewGoalRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	tracker := replication.NewInMemoryStatusTracker()

	// Create replication use cases
	applyDeltaUseCase := replication.NewApplyDeltaUseCase(transactionRepo, habitRepo, completionRepo, goalRepo)
	pushDeltasUseCase := replication.NewPushDeltasUseCase(deltaQueue, cfg.Queue.MaxBatchSize)
	getSnapshotUseCase := replication.NewGetSnapshotUseCase(transactionRepo, habitRepo, completionRepo, goalRepo)
	reconcileUseCase := replication.NewReconcileUseCase(getSnapshotUseCase, deltaQueue, cfg.Queue.MaxBatchSize)
	getStatusUseCase := replication.NewGetStatusUseCase(deltaQueue, tracker)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(applyDeltaUseCase)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, applyDeltaUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, applyDeltaUseCase)
	settleTransactionUseCase := transaction.NewSettleTransactionUseCase(transactionRepo, applyDeltaUseCase)
	bulkDeleteTransactionsUseCase := transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, applyDeltaUseCase)

	// Create habit use cases
	listHabitsUseCase := habit.NewListHabitsUseCase(habitRepo, completionRepo)
	createHabitUseCase := habit.NewCreateHabitUseCase(applyDeltaUseCase)
	deleteHabitUseCase := habit.NewDeleteHabitUseCase(habitRepo, applyDeltaUseCase)
	recordCompletionUseCase := habit.NewRecordCompletionUseCase(habitRepo, completionRepo, applyDeltaUseCase)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, transactionRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, transactionRepo)
	setGoalUseCase := goal.NewSetGoalUseCase(goalRepo, applyDeltaUseCase)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo, applyDeltaUseCase)

	// Create analytics use cases
	summaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo)
	trendsUseCase := analytics.NewGetTrendsUseCase(transactionRepo)
	entitiesUseCase := analytics.NewGetEntitiesUseCase(transactionRepo)
	habitBreakdownUseCase := analytics.NewGetHabitBreakdownUseCase(completionRepo)
	budgetBreakdownUseCase := analytics.NewGetBudgetBreakdownUseCase(transactionRepo, goalRepo)
	dataRangeUseCase := analytics.NewGetDataRangeUseCase(transactionRepo)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := deltaQueue.Len(ctx)
			return err == nil
		},
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		settleTransactionUseCase,
		bulkDeleteTransactionsUseCase,
	)

	habitController := controller.NewHabitController(
		listHabitsUseCase,
		createHabitUseCase,
		deleteHabitUseCase,
		recordCompletionUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		getGoalUseCase,
		setGoalUseCase,
		deleteGoalUseCase,
	)

	analyticsController := controller.NewAnalyticsController(
		summaryUseCase,
		trendsUseCase,
		entitiesUseCase,
		habitBreakdownUseCase,
		budgetBreakdownUseCase,
		dataRangeUseCase,
	)

	syncController := controller.NewSyncController(
		pushDeltasUseCase,
		getSnapshotUseCase,
		reconcileUseCase,
		getStatusUseCase,
	)

	// Create middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create the background delta writer
	worker := syncworker.NewWorker(deltaQueue, applyDeltaUseCase, tracker, syncworker.Config{
		PollInterval: cfg.Worker.PollInterval,
		BatchSize:    cfg.Worker.BatchSize,
	})

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		habitController,
		goalController,
		analyticsController,
		syncController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Queue:       deltaQueue,
		Tracker:     tracker,
		Worker:      worker,
		RateLimiter: rateLimiter,
		Router:      r,
	}
}
