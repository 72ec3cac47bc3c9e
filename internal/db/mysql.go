package db

import (
	"fmt"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	once   sync.Once
	shared *gorm.DB
	initEr error
)

// Connect returns the process-wide GORM handle, opening it on first use.
// Concurrent first calls are serialized by sync.Once so cold-start requests
// cannot race into duplicate connections.
func Connect(dsn string) (*gorm.DB, error) {
	once.Do(func() {
		shared, initEr = open(dsn)
	})
	return shared, initEr
}

func open(dsn string) (*gorm.DB, error) {
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the services match on.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}
