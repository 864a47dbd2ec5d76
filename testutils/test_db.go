package testutils

import (
	"context"
	"log"

	"github.com/itbasis/go-clock"

	"github.com/amolgulati/LeagueLegacy/containers"
	"github.com/amolgulati/LeagueLegacy/db"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

// NewTestDB starts a postgres container with the schema applied and
// connects to it with a mock clock so tests control time.
func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	c := clock.NewMock()

	database, err := db.New(context.Background(), container.ConnectionString(), c)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        database,
		Clock:     c,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
