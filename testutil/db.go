// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"testing"

	"news-portal/bootstrap"
	"news-portal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// QuietLogger discards output.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T, withImages bool) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		DBName:     fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)),
		DBMaxConns: 1,
	}

	db, err := config.InitDB(cfg, QuietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = config.CloseDB(db) })

	require.NoError(t, bootstrap.Migrate(context.Background(), db, withImages))
	return db
}
