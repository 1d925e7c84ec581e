// store/factory.go
package store

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewFromEnv picks the backend from DATABASE_URL: set → Postgres (with
// migrations), empty → seeded in-memory demo store.
func NewFromEnv() (Store, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("DATABASE_URL not set — using in-memory demo store")
		return NewMemoryWithDemoData(), nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	pg := NewPostgres(db)
	if err := pg.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return pg, nil
}
