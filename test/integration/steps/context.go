// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/life-planner/backend/config"
	"github.com/life-planner/backend/internal/infra/dependency"
	"github.com/life-planner/backend/internal/integration/persistence/model"
	"github.com/life-planner/backend/internal/integration/queue"
	"github.com/life-planner/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testIssuer    = "life-planner-idp"
	testQueueKey  = "life-planner:test:deltas"
)

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db
	timeMock *mock.Time

	accessToken   string
	currentUserID uuid.UUID
	users         map[string]uuid.UUID

	lastTransactionID uuid.UUID
	transactionIDs    []uuid.UUID
	lastHabitID       uuid.UUID
	lastGoalID        uuid.UUID
	recordIDs         map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit   sync.Once
	testServer   *httptest.Server
	testInjector *dependency.Injector
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		db: mock.NewDb(map[string]any{
			"transactions":      &model.TransactionModel{},
			"habits":            &model.HabitModel{},
			"habit_completions": &model.HabitCompletionModel{},
			"goals":             &model.GoalModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)

	// Identity steps
	ctx.Step(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Step(`^my token has expired$`, test.myTokenHasExpired)
	ctx.Step(`^my token is signed with another key$`, test.myTokenIsSignedWithAnotherKey)
	ctx.Step(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Seed steps
	ctx.Step(`^the following transactions exist:$`, test.theFollowingTransactionsExist)
	ctx.Step(`^a habit "([^"]*)" exists in category "([^"]*)"$`, test.aHabitExistsInCategory)

	// Header steps
	ctx.Step(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Sync worker steps
	ctx.Step(`^the sync worker processes the queue$`, test.theSyncWorkerProcessesTheQueue)
	ctx.Step(`^the queue should hold (\d+) pending deltas?$`, test.theQueueShouldHoldPendingDeltas)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) live objects in the "([^"]*)" table$`, test.theDbShouldContainLiveObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.users = make(map[string]uuid.UUID)
	t.lastTransactionID = uuid.Nil
	t.transactionIDs = nil
	t.lastHabitID = uuid.Nil
	t.lastGoalID = uuid.Nil
	t.recordIDs = make(map[string]uuid.UUID)
	t.timeMock.Reset()

	if err := t.db.ClearDB(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Database.Driver = config.DatabaseDriverSQLite
	cfg.Database.URL = "file::memory:"
	cfg.Queue.Backend = config.QueueBackendRedis
	cfg.Queue.RedisKey = testQueueKey
	cfg.Queue.MaxAttempts = 3
	cfg.Queue.MaxBatchSize = 10
	cfg.Worker.BatchSize = 5
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.Issuer = testIssuer
	cfg.RateLimit.Requests = 0
	return cfg
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := testConfig()
		deltaQueue := queue.NewRedisQueue(mock.NewRedis(), cfg.Queue.RedisKey, cfg.Queue.MaxAttempts)
		testInjector = dependency.NewInjector(cfg, t.db.DbConn, deltaQueue)
		testServer = httptest.NewServer(testInjector.Router.Setup(cfg.Server.Environment))
	})
	t.uri = testServer.URL
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()

	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}
