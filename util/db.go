package util

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cartabinaria/forecast/models"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var db *gorm.DB = nil

// NewGormConfig returns the settings shared by every database connection:
// driver errors are translated to gorm sentinels and queries are logged
// through the default slog handler.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: slogGorm.New(
			slogGorm.WithHandler(slog.Default().Handler()),
			slogGorm.WithSlowThreshold(time.Second),
		),
	}
}

func ConnectDb(connStr string) error {
	config := NewGormConfig()
	config.PrepareStmt = true // optimize raw queries
	return OpenDb(postgres.Open(connStr), config)
}

// OpenDb opens a connection with the given dialector and makes it the
// database returned by GetDb.
func OpenDb(dialector gorm.Dialector, config *gorm.Config) error {
	conn, err := gorm.Open(dialector, config)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	db = conn
	return nil
}

func GetDb() *gorm.DB {
	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// IncrementColumns adds each delta to its column on the rows matching the
// conditions. All columns change in one UPDATE statement so concurrent
// callers never lose an update. It returns the number of matched rows.
func IncrementColumns(tx *gorm.DB, model any, deltas map[string]int, query any, args ...any) (int64, error) {
	updates := make(map[string]any, len(deltas))
	for column, delta := range deltas {
		if delta == 0 {
			continue
		}
		updates[column] = gorm.Expr("? + ?", clause.Column{Name: column}, delta)
	}
	if len(updates) == 0 {
		var count int64
		err := tx.Model(model).Where(query, args...).Count(&count).Error
		return count, err
	}

	res := tx.Model(model).Where(query, args...).UpdateColumns(updates)
	return res.RowsAffected, res.Error
}

// Increment is IncrementColumns for a single column.
func Increment(tx *gorm.DB, model any, column string, amount int, query any, args ...any) (int64, error) {
	return IncrementColumns(tx, model, map[string]int{column: amount}, query, args...)
}
