// Package database owns the GORM/PostgreSQL connection for the slides
// service, including first-run creation of the target database.
package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config controls connectivity and pool sizing. Zero-valued pool fields
// leave the driver defaults in place.
type Config struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        gormlogger.LogLevel
}

// Connect opens the slides database, creating it first when the DSN names
// one that does not exist yet.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}
	if err := createIfMissing(cfg.DSN); err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}

	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		PrepareStmt:    true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		pool.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}

// createIfMissing connects to the postgres maintenance database and issues
// CREATE DATABASE when the target is absent. DSNs this cannot reason about
// are left to the driver.
func createIfMissing(dsn string) error {
	name, adminDSN, ok := splitDSN(dsn)
	if !ok {
		return nil
	}

	conn, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return err
	}
	defer conn.Close()

	var exists bool
	if err := conn.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = conn.Exec("CREATE DATABASE " + pq.QuoteIdentifier(name))
	return err
}

// splitDSN extracts the target database name and the matching maintenance
// DSN from a URL-shaped DSN. ok is false for keyword-value DSNs and for
// DSNs already pointing at the maintenance database.
func splitDSN(dsn string) (name, adminDSN string, ok bool) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", false
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", "", false
	}

	name = strings.TrimPrefix(u.Path, "/")
	if name == "" || name == "postgres" {
		return "", "", false
	}

	admin := *u
	admin.Path = "/postgres"
	return name, admin.String(), true
}
