package main

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warbler/domain"
)

// DB provides the database connection.
type DB struct {
	// Object-relational mapping.
	Gorm *gorm.DB
	// Connection info string containing database name, user, port etc.
	ConnectionInfo string
}

// NewDB returns a new instance of DB.
func NewDB(connectionInfo string) *DB {
	db := &DB{
		ConnectionInfo: connectionInfo,
	}
	return db
}

// Open opens a new database connection. It also configures logging based on
// whether we're in development or in production. TranslateError is on so the
// crud layer can match unique-key and foreign-key violations as the portable
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated values.
func Open(db *DB, isProd bool) (err error) {
	if db.ConnectionInfo == "" {
		return fmt.Errorf("connectionInfo required")
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
	if !isProd {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db.Gorm, err = gorm.Open(postgres.Open(db.ConnectionInfo), cfg)
	if err != nil {
		return fmt.Errorf("err opening gorm postgres connection: %w", err)
	}
	return nil
}

// AutoMigrate runs database migrations for all tables. The edge tables get
// their ON DELETE CASCADE foreign keys from the constraint tags on the models.
func AutoMigrate(db *DB) error {
	return db.Gorm.AutoMigrate(
		domain.User{},
		domain.Message{},
		domain.Follow{},
		domain.Like{},
	)
}

// DestructiveReset drops all tables and rebuilds them.
func DestructiveReset(db *DB) error {
	err := db.Gorm.Migrator().DropTable(
		domain.Like{},
		domain.Follow{},
		domain.Message{},
		domain.User{},
	)
	if err != nil {
		return err
	}
	return AutoMigrate(db)
}

// Close closes the database connection.
func Close(db *DB) error {
	sqlDb, err := db.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDb.Close()
}
