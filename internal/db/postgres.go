package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/careerfair/jobfair-api/internal/config"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(conf.DSN())
}

// OpenPostgresWithURL accepts a postgres:// connection URL, as handed out by most
// hosting providers.
func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	return open(url)
}

// gormConfig leaves driver errors untranslated so the DAO layer can read the
// *pgconn.PgError code and constraint name.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: false,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

func open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}
