package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds the driver-specific connection string. For sqlite the database
// name is used as the file path (or an in-memory URI).
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	case DriverSQLite:
		return c.DBName
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	}
}

func dialector(c *Config) gorm.Dialector {
	switch c.DBDriver {
	case DriverPostgres:
		return postgres.Open(c.DSN())
	case DriverSQLite:
		return sqlite.Open(c.DSN())
	default:
		return mysql.Open(c.DSN())
	}
}

// InitDB opens the connection pool and verifies it with a ping.
func InitDB(c *Config, log *logrus.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	db, err := gorm.Open(dialector(c), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", c.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.DBMaxConns)
	sqlDB.SetMaxIdleConns(min(5, c.DBMaxConns))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", c.DBDriver, err)
	}

	log.WithFields(logrus.Fields{
		"driver":    c.DBDriver,
		"max_conns": c.DBMaxConns,
	}).Info("Database connected")
	return db, nil
}

// CloseDB releases the pool.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
