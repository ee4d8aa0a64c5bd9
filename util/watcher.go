package util

import (
	"context"
	"log/slog"
	"time"

	"github.com/cartabinaria/forecast/metrics"
	"github.com/cartabinaria/forecast/models"
	"gorm.io/gorm"
)

// StatusPending is the user_prediction_status of predictions that have not
// been resolved by their author yet.
const StatusPending = "Pending"

// AwaitingResolution selects Pending predictions whose timeframe is not
// after now.
func AwaitingResolution(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_prediction_status = ? AND timeframe <= ?", StatusPending, now)
	}
}

// Predictions are resolved by their authors, who often forget to. The
// resolution watcher periodically counts the overdue ones and exposes the
// number as a gauge so that stale predictions are visible from the outside.

func ResolutionWatcher(ctx context.Context, interval time.Duration) {
	slog.Info("starting resolution watcher", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := CheckResolutions(GetDb(), time.Now().UTC()); err != nil {
			slog.With("err", err).Error("error while counting overdue predictions")
		}

		select {
		case <-ctx.Done():
			slog.Info("stopping resolution watcher")
			return
		case <-ticker.C:
		}
	}
}

// CheckResolutions counts the predictions awaiting resolution at now and
// publishes the result.
func CheckResolutions(db *gorm.DB, now time.Time) (int64, error) {
	var overdue int64
	err := db.Model(&models.Prediction{}).Scopes(AwaitingResolution(now)).Count(&overdue).Error
	if err != nil {
		return 0, err
	}

	metrics.AwaitingResolution.Set(float64(overdue))
	if overdue > 0 {
		slog.With("count", overdue).Info("predictions awaiting resolution")
	}
	return overdue, nil
}
