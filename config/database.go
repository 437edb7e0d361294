package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects to Postgres with gorm's query logging silenced.
func OpenDatabase(p Postgres) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(p.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres %s:%d/%s: %w", p.Host, p.Port, p.Database, err)
	}
	return db, nil
}
