package tally

import (
	"errors"

	"github.com/cartabinaria/forecast/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmptyBallot = errors.New("ballot has neither plausible nor correct set")
	ErrNoBallot    = errors.New("ballot not found")
)

// Each ballot dimension is a small state machine: unvoted, or voted for one
// of two categories. Entering a category adds one to its counter and leaving
// it removes one.
func choice(vote *bool, yes, no Category) Category {
	if vote == nil {
		return ""
	}
	if *vote {
		return yes
	}
	return no
}

var lockForUpdate = clause.Locking{Strength: "UPDATE"}

func transition[T ~string](deltas map[string]int, from, to T) {
	if from == to {
		return
	}
	if from != "" {
		deltas[string(from)]--
	}
	if to != "" {
		deltas[string(to)]++
	}
}

// voteDeltas returns the counter changes for moving a ballot from before to
// after. A nil ballot is unvoted on both dimensions.
func voteDeltas(before, after *models.Vote) map[string]int {
	var prevPlausible, prevCorrect, nextPlausible, nextCorrect *bool
	if before != nil {
		prevPlausible, prevCorrect = before.Plausible, before.Correct
	}
	if after != nil {
		nextPlausible, nextCorrect = after.Plausible, after.Correct
	}

	deltas := map[string]int{}
	transition(deltas, choice(prevPlausible, Plausible, Implausible), choice(nextPlausible, Plausible, Implausible))
	transition(deltas, choice(prevCorrect, Correct, Incorrect), choice(nextCorrect, Correct, Incorrect))
	return deltas
}

func lockVote(tx *gorm.DB, predictionID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := tx.Clauses(lockForUpdate).
		Where("prediction_id = ? AND user_id = ?", predictionID, userID).
		Take(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CastVote records a user's ballot on a prediction and moves the tally
// counters accordingly, all in one transaction. Fields left nil in ballot
// keep their previous value. The first ballot of a user is inserted, so two
// concurrent first ballots collide on the unique index instead of being
// counted twice.
func CastVote(db *gorm.DB, ballot models.Vote) (*models.Vote, *models.PredictionVoteTally, error) {
	if ballot.Plausible == nil && ballot.Correct == nil {
		return nil, nil, ErrEmptyBallot
	}
	return castVote(db, ballot, false)
}

// UpdateCorrect changes the correctness vote of an existing ballot.
func UpdateCorrect(db *gorm.DB, predictionID, userID uint, correct bool) (*models.Vote, *models.PredictionVoteTally, error) {
	return castVote(db, models.Vote{
		PredictionID: predictionID,
		UserID:       userID,
		Correct:      &correct,
	}, true)
}

func castVote(db *gorm.DB, ballot models.Vote, mustExist bool) (*models.Vote, *models.PredictionVoteTally, error) {
	var (
		vote  models.Vote
		tally *models.PredictionVoteTally
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		previous, err := lockVote(tx, ballot.PredictionID, ballot.UserID)
		if err != nil {
			return err
		}

		if previous == nil {
			if mustExist {
				return ErrNoBallot
			}
			vote = models.Vote{
				PredictionID: ballot.PredictionID,
				UserID:       ballot.UserID,
				Plausible:    ballot.Plausible,
				Correct:      ballot.Correct,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		} else {
			vote = *previous
			if ballot.Plausible != nil {
				vote.Plausible = ballot.Plausible
			}
			if ballot.Correct != nil {
				vote.Correct = ballot.Correct
			}
			if err := tx.Save(&vote).Error; err != nil {
				return err
			}
		}

		if err := apply(tx, ballot.PredictionID, voteDeltas(previous, &vote)); err != nil {
			return err
		}
		tally, err = Get(tx, ballot.PredictionID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &vote, tally, nil
}

// WithdrawVote deletes a ballot and takes its votes back out of the tally.
func WithdrawVote(db *gorm.DB, predictionID, userID uint) (*models.PredictionVoteTally, error) {
	var tally *models.PredictionVoteTally
	err := db.Transaction(func(tx *gorm.DB) error {
		previous, err := lockVote(tx, predictionID, userID)
		if err != nil {
			return err
		}
		if previous == nil {
			return ErrNoBallot
		}

		if err := tx.Delete(previous).Error; err != nil {
			return err
		}
		if err := apply(tx, predictionID, voteDeltas(previous, nil)); err != nil {
			return err
		}
		tally, err = Get(tx, predictionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tally, nil
}
