package tally

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
)

// Category names one of the four counters of a prediction tally. The value
// is also the column name.
type Category string

const (
	Plausible   Category = "plausible"
	Implausible Category = "implausible"
	Correct     Category = "correct"
	Incorrect   Category = "incorrect"
)

var (
	ErrUnknownCategory = errors.New("unknown tally category")
	ErrNoTally         = errors.New("prediction has no tally")
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Plausible, Implausible, Correct, Incorrect:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Create inserts a zeroed tally for the prediction.
func Create(db *gorm.DB, predictionID uint) (*models.PredictionVoteTally, error) {
	tally := models.PredictionVoteTally{PredictionID: predictionID}
	if err := db.Create(&tally).Error; err != nil {
		return nil, fmt.Errorf("could not create tally for prediction %d: %w", predictionID, err)
	}
	return &tally, nil
}

func Get(db *gorm.DB, predictionID uint) (*models.PredictionVoteTally, error) {
	var tally models.PredictionVoteTally
	err := db.Where("prediction_id = ?", predictionID).Take(&tally).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoTally
	} else if err != nil {
		return nil, err
	}
	return &tally, nil
}

// Bump adds one to a single counter of the prediction's tally. The tally is
// never created on the fly.
func Bump(db *gorm.DB, predictionID uint, category Category) (*models.PredictionVoteTally, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}

	var tally *models.PredictionVoteTally
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := apply(tx, predictionID, map[string]int{string(category): 1}); err != nil {
			return err
		}
		var err error
		tally, err = Get(tx, predictionID)
		return err
	})
	if errors.Is(err, ErrNoTally) {
		slog.Warn("tally bump without tally", "prediction", predictionID, "category", category)
	}
	if err != nil {
		return nil, err
	}
	return tally, nil
}

func apply(tx *gorm.DB, predictionID uint, deltas map[string]int) error {
	rows, err := util.IncrementColumns(tx, &models.PredictionVoteTally{}, deltas, "prediction_id = ?", predictionID)
	if err != nil {
		return fmt.Errorf("could not update tally for prediction %d: %w", predictionID, err)
	}
	if rows == 0 {
		return ErrNoTally
	}
	return nil
}
