package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cartabinaria/forecast/metrics"
	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/tally"
	"github.com/cartabinaria/forecast/util"
)

// writeBallotError is writeDbError plus the ballot validation failures.
func writeBallotError(res http.ResponseWriter, what string, err error) {
	switch {
	case errors.Is(err, tally.ErrEmptyBallot),
		errors.Is(err, tally.ErrConflictingReaction),
		errors.Is(err, tally.ErrUnknownCategory),
		errors.Is(err, tally.ErrUnknownReaction):
		writeFailure(res, http.StatusUnauthorized, KindValidation, err.Error())
	default:
		writeDbError(res, what, err)
	}
}

// @Summary		List ballots
// @Tags			vote
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/votes [get]
func GetVotesHandler(res http.ResponseWriter, req *http.Request) {
	var votes []models.Vote
	if err := util.GetDb().Order("vote_id").Find(&votes).Error; err != nil {
		writeServerError(res, "could not list votes", err)
		return
	}
	writeList(res, "Successfully gathered all votes.", "votes", votes, len(votes))
}

// @Summary		Ballots of a prediction
// @Tags			vote
// @Param			id	path	int	true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/votes/{id} [get]
func GetPredictionVotesHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	var votes []models.Vote
	if err := util.GetDb().Where("prediction_id = ?", predictionID).Order("vote_id").Find(&votes).Error; err != nil {
		writeServerError(res, "could not list votes", err)
		return
	}
	writeList(res,
		fmt.Sprintf("Successfully gathered all votes for prediction with id = %d.", predictionID),
		"votes", votes, len(votes))
}

// @Summary		Cast a ballot
// @Description	Set the plausibility and/or correctness vote of a user on a prediction. Fields left null keep their previous value. The tally is updated here; do not also bump it through /api/v1/votes/tallies.
// @Tags			vote
// @Param			vote	body	VoteRequest	true	"Ballot"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Failure		409	{object}	Envelope
// @Router			/api/v1/votes [post]
func PostVoteHandler(res http.ResponseWriter, req *http.Request) {
	var body VoteRequest
	if !decodeBody(res, req, &body) {
		return
	}
	if body.PredictionID == 0 || body.UserID == 0 {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "prediction_id and user_id are required")
		return
	}

	vote, counts, err := tally.CastVote(util.GetDb(), models.Vote{
		PredictionID: body.PredictionID,
		UserID:       body.UserID,
		Plausible:    body.Plausible,
		Correct:      body.Correct,
	})
	if err != nil {
		writeBallotError(res, "vote", err)
		return
	}
	metrics.BallotsCast.WithLabelValues(metrics.BallotPrediction).Inc()
	writeData(res, http.StatusOK, "Successfully voted.", map[string]any{"vote": vote, "tally": counts})
}

// @Summary		Update a correctness vote
// @Tags			vote
// @Param			id		path	int					true	"Prediction id"
// @Param			user_id	path	int					true	"Account id"
// @Param			vote	body	UpdateVoteRequest	true	"New correctness vote"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/votes/update/{id}/{user_id} [put]
func PutVoteHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodPut) {
		return
	}
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}
	userID, ok := getID(res, "user_id")
	if !ok {
		return
	}
	var body UpdateVoteRequest
	if !decodeBody(res, req, &body) {
		return
	}
	if body.Correct == nil {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "correct is required")
		return
	}

	vote, counts, err := tally.UpdateCorrect(util.GetDb(), predictionID, userID, *body.Correct)
	if err != nil {
		writeBallotError(res, "vote", err)
		return
	}
	metrics.BallotsCast.WithLabelValues(metrics.BallotPrediction).Inc()
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully updated correct vote for prediction with id = %d.", predictionID),
		map[string]any{"vote": vote, "tally": counts})
}

// @Summary		Withdraw a ballot
// @Tags			vote
// @Param			id		path	int	true	"Prediction id"
// @Param			user_id	path	int	true	"Account id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/votes/{id}/{user_id} [delete]
func DeleteVoteHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodDelete) {
		return
	}
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}
	userID, ok := getID(res, "user_id")
	if !ok {
		return
	}

	counts, err := tally.WithdrawVote(util.GetDb(), predictionID, userID)
	if err != nil {
		writeBallotError(res, "vote", err)
		return
	}
	metrics.BallotsCast.WithLabelValues(metrics.BallotWithdrawn).Inc()
	writeData(res, http.StatusOK, "Successfully withdrew vote.", map[string]any{"tally": counts})
}
