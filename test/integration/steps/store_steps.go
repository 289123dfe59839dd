package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/cucumber/godog"
	"gorm.io/gorm"
)

const drainTimeout = 5 * time.Second

func (t *testContext) countRows(table string, query *gorm.DB) (int, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return 0, fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))
	entitySlicePtr.Elem().Set(reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0))

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}
	return entitySlicePtr.Elem().Len(), nil
}

// theDbShouldContainObjectsInTheTable counts rows including tombstones.
func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, t.db.DbConn.Unscoped())
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainLiveObjectsInTheTable(quantity int, table string) error {
	count, err := t.countRows(table, t.db.DbConn)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d live objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replaceTokenPlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	count, err := t.countRows(table, query)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theSyncWorkerProcessesTheQueue() error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	testInjector.Worker.Drain(ctx)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("queue was not drained: %w", err)
	}
	return nil
}

func (t *testContext) theQueueShouldHoldPendingDeltas(quantity int) error {
	pending, err := testInjector.Queue.Len(context.Background())
	if err != nil {
		return err
	}
	if pending != int64(quantity) {
		return fmt.Errorf("expected %d pending deltas, got %d", quantity, pending)
	}
	return nil
}
