package testhelper

import (
	"fmt"
	"testing"

	"gharpey-console/internal/config"
	"gharpey-console/internal/database"

	"github.com/google/uuid"
)

// SetupTestStore opens a private in-memory sqlite database, migrates it and
// returns a Store over it. The database disappears when the test ends.
func SetupTestStore(t *testing.T) *database.Store {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("testhelper: open test DB: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testhelper: get sql.DB: %v", err)
	}
	// One connection keeps every query on the same in-memory database and
	// serialises writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("testhelper: migrate test DB: %v", err)
	}
	return database.NewStore(db)
}
