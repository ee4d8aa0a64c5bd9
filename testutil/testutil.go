// Package testutil provides database fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory SQLite database with foreign keys
// enforced, migrates the schema and installs it as util.GetDb(). The pool
// holds a single connection, so concurrent callers queue on it.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	require.NoError(t, util.OpenDb(sqlite.Open(dsn), util.NewGormConfig()))
	db := util.GetDb()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, util.Migrate(db))
	return db
}

func NewAccount(t testing.TB, db *gorm.DB, username string) models.Account {
	t.Helper()

	account := models.Account{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-digest",
	}
	require.NoError(t, db.Create(&account).Error)
	return account
}

func NewPrediction(t testing.TB, db *gorm.DB, userID uint, status string, timeframe time.Time) models.Prediction {
	t.Helper()

	prediction := models.Prediction{
		UserID:               userID,
		UserPredictionStatus: "Pending",
		ClaimTitle:           "It will rain",
		ClaimMajor:           "It will rain tomorrow in Bologna",
		PostTime:             time.Now().UTC().Truncate(time.Second),
		Timeframe:            timeframe,
		Status:               status,
	}
	require.NoError(t, db.Omit("Account", "Tally").Create(&prediction).Error)
	return prediction
}
