package api

import (
	"fmt"
	"net/http"

	"github.com/cartabinaria/forecast/metrics"
	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/tally"
	"github.com/cartabinaria/forecast/util"
	"github.com/kataras/muxie"
)

// @Summary		List tallies
// @Tags			tally
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/votes/tallies [get]
func GetTalliesHandler(res http.ResponseWriter, req *http.Request) {
	var tallies []models.PredictionVoteTally
	if err := util.GetDb().Order("tally_id").Find(&tallies).Error; err != nil {
		writeServerError(res, "could not list tallies", err)
		return
	}
	writeList(res, "Successfully gathered all vote tallies.", "tallies", tallies, len(tallies))
}

// @Summary		Tally of a prediction
// @Tags			tally
// @Param			id	path	int	true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/votes/tallies/{id} [get]
func GetTallyHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	counts, err := tally.Get(util.GetDb(), predictionID)
	if err != nil {
		writeDbError(res, "tally", err)
		return
	}
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully gathered all vote tallies for prediction with id = %d.", predictionID),
		map[string]any{"tally": counts})
}

// @Summary		Create a tally
// @Description	Create the zeroed tally of a prediction. Ballots cannot be counted before it exists.
// @Tags			tally
// @Param			tally	body	TallyRequest	true	"Prediction to count for"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		409	{object}	Envelope
// @Router			/api/v1/votes/tallies [post]
func PostTallyHandler(res http.ResponseWriter, req *http.Request) {
	var body TallyRequest
	if !decodeBody(res, req, &body) {
		return
	}
	if body.PredictionID == 0 {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "prediction_id is required")
		return
	}

	counts, err := tally.Create(util.GetDb(), body.PredictionID)
	if err != nil {
		writeDbError(res, "tally", err)
		return
	}
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully created tally table for prediction with id = %d.", counts.PredictionID),
		map[string]any{"tally": counts})
}

// @Summary		Bump a tally counter
// @Description	Add one to the plausible, implausible, correct or incorrect counter of a prediction. Casting a ballot through POST /api/v1/votes already counts it, so calling both for the same ballot counts it twice.
// @Tags			tally
// @Param			tally_value	path	string	true	"Counter"	Enums(plausible, implausible, correct, incorrect)
// @Param			id			path	int		true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/votes/tallies/{tally_value}/{id} [put]
func BumpTallyHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodPut) {
		return
	}
	category, err := tally.ParseCategory(muxie.GetParam(res, "tally_value"))
	if err != nil {
		writeFailure(res, http.StatusUnauthorized, KindValidation, err.Error())
		return
	}
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	counts, err := tally.Bump(util.GetDb(), predictionID, category)
	if err != nil {
		writeDbError(res, "tally", err)
		return
	}
	metrics.TallyBumps.WithLabelValues(string(category)).Inc()
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully updated %s tally for prediction with id = %d.", category, predictionID),
		map[string]any{"tally": counts})
}
