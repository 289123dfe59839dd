package mock

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/life-planner/backend/config"
	"github.com/life-planner/backend/internal/infra/db"
)

var once sync.Once
var testDb *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens the shared in-memory database once and migrates the models.
func NewDb(models map[string]any) *Db {
	once.Do(
		func() {
			testDb = open(models)
		},
	)

	return testDb
}

func open(models map[string]any) *Db {
	database, err := db.NewConnection(&config.DatabaseConfig{
		Driver: config.DatabaseDriverSQLite,
		URL:    "file::memory:",
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := database.Migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	newDbMock := &Db{
		DbConn: database.DB(),
		models: models,
	}

	if err := newDbMock.checkTables(); err != nil {
		panic(err)
	}

	return newDbMock
}

// ClearDB removes every row, tombstones included.
func (d *Db) ClearDB() error {
	for _, model := range d.models {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}

		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(model); err != nil {
			return err
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", stmt.Schema.Table).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}

	return nil
}

func (d *Db) checkTables() error {
	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
