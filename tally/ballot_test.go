package tally

import (
	"testing"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func counters(t *models.PredictionVoteTally) [4]uint {
	return [4]uint{t.Plausible, t.Implausible, t.Correct, t.Incorrect}
}

func TestVoteDeltas(t *testing.T) {
	cases := []struct {
		name          string
		before, after *models.Vote
		want          map[string]int
	}{
		{"first plausible", nil, &models.Vote{Plausible: boolPtr(true)}, map[string]int{"plausible": 1}},
		{"switch to implausible", &models.Vote{Plausible: boolPtr(true)}, &models.Vote{Plausible: boolPtr(false)},
			map[string]int{"plausible": -1, "implausible": 1}},
		{"unchanged", &models.Vote{Plausible: boolPtr(true)}, &models.Vote{Plausible: boolPtr(true)}, map[string]int{}},
		{"add correctness", &models.Vote{Plausible: boolPtr(true)}, &models.Vote{Plausible: boolPtr(true), Correct: boolPtr(false)},
			map[string]int{"incorrect": 1}},
		{"withdraw", &models.Vote{Plausible: boolPtr(false), Correct: boolPtr(true)}, nil,
			map[string]int{"implausible": -1, "correct": -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, voteDeltas(tc.before, tc.after))
		})
	}
}

func TestCastVoteTransitions(t *testing.T) {
	db, account, prediction := setup(t)
	_, err := Create(db, prediction.PredictionID)
	require.NoError(t, err)

	vote, tally, err := CastVote(db, models.Vote{
		PredictionID: prediction.PredictionID,
		UserID:       account.UserID,
		Plausible:    boolPtr(true),
	})
	require.NoError(t, err)
	assert.NotZero(t, vote.VoteID)
	assert.Equal(t, [4]uint{1, 0, 0, 0}, counters(tally))

	// changing opinion moves the vote instead of adding one
	_, tally, err = CastVote(db, models.Vote{
		PredictionID: prediction.PredictionID,
		UserID:       account.UserID,
		Plausible:    boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, [4]uint{0, 1, 0, 0}, counters(tally))

	vote, tally, err = UpdateCorrect(db, prediction.PredictionID, account.UserID, true)
	require.NoError(t, err)
	require.NotNil(t, vote.Plausible)
	assert.False(t, *vote.Plausible, "plausibility is kept when only correctness changes")
	assert.Equal(t, [4]uint{0, 1, 1, 0}, counters(tally))

	var ballots int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&ballots).Error)
	assert.Equal(t, int64(1), ballots)

	tally, err = WithdrawVote(db, prediction.PredictionID, account.UserID)
	require.NoError(t, err)
	assert.Equal(t, [4]uint{0, 0, 0, 0}, counters(tally))

	_, err = WithdrawVote(db, prediction.PredictionID, account.UserID)
	require.ErrorIs(t, err, ErrNoBallot)
}

func TestCastVoteEmpty(t *testing.T) {
	db, account, prediction := setup(t)

	_, _, err := CastVote(db, models.Vote{PredictionID: prediction.PredictionID, UserID: account.UserID})
	require.ErrorIs(t, err, ErrEmptyBallot)
}

func TestCastVoteWithoutTallyRollsBack(t *testing.T) {
	db, account, prediction := setup(t)

	_, _, err := CastVote(db, models.Vote{
		PredictionID: prediction.PredictionID,
		UserID:       account.UserID,
		Plausible:    boolPtr(true),
	})
	require.ErrorIs(t, err, ErrNoTally)

	var ballots int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&ballots).Error)
	assert.Zero(t, ballots)
}

func TestCastVoteUnknownPrediction(t *testing.T) {
	db, account, prediction := setup(t)

	_, _, err := CastVote(db, models.Vote{
		PredictionID: prediction.PredictionID + 100,
		UserID:       account.UserID,
		Plausible:    boolPtr(true),
	})
	require.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestUpdateCorrectWithoutBallot(t *testing.T) {
	db, account, prediction := setup(t)
	_, err := Create(db, prediction.PredictionID)
	require.NoError(t, err)

	_, _, err = UpdateCorrect(db, prediction.PredictionID, account.UserID, false)
	require.ErrorIs(t, err, ErrNoBallot)
}

func TestBallotsFromManyUsers(t *testing.T) {
	db, _, prediction := setup(t)
	_, err := Create(db, prediction.PredictionID)
	require.NoError(t, err)

	bob := testutil.NewAccount(t, db, "bob")
	carol := testutil.NewAccount(t, db, "carol")
	for _, user := range []uint{bob.UserID, carol.UserID} {
		_, _, err := CastVote(db, models.Vote{PredictionID: prediction.PredictionID, UserID: user, Plausible: boolPtr(true)})
		require.NoError(t, err)
	}
	_, tally, err := CastVote(db, models.Vote{PredictionID: prediction.PredictionID, UserID: carol.UserID, Correct: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, [4]uint{2, 0, 0, 1}, counters(tally))
}
