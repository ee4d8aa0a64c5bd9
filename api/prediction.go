package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const statusIncomplete = "incomplete"

func joinedPredictions(db *gorm.DB) *gorm.DB {
	return db.Preload("Account").Preload("Tally")
}

func writePredictions(res http.ResponseWriter, scopes ...func(*gorm.DB) *gorm.DB) {
	var predictions []models.Prediction
	err := joinedPredictions(util.GetDb()).
		Scopes(scopes...).
		Order("post_time DESC").
		Find(&predictions).Error
	if err != nil {
		writeServerError(res, "could not list predictions", err)
		return
	}
	writeList(res, "Successfully gathered all predictions.", "predictions", dbPredictionsToPredictions(predictions), len(predictions))
}

// @Summary		List predictions
// @Description	Every prediction with its author and tally, newest first
// @Tags			prediction
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/predictions [get]
func GetPredictionsHandler(res http.ResponseWriter, req *http.Request) {
	writePredictions(res)
}

// @Summary		List predictions to resolve
// @Description	Pending predictions whose timeframe has passed
// @Tags			prediction
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/predictions/timeframe [get]
func GetTimeframePredictionsHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	writePredictions(res, util.AwaitingResolution(time.Now().UTC()))
}

// @Summary		Get a prediction
// @Tags			prediction
// @Param			id	path	int	true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/predictions/{id} [get]
func GetPredictionHandler(res http.ResponseWriter, req *http.Request) {
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	var prediction models.Prediction
	if err := joinedPredictions(util.GetDb()).First(&prediction, predictionID).Error; err != nil {
		writeDbError(res, "prediction", err)
		return
	}
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully gathered prediction with id = %d", prediction.PredictionID),
		map[string]any{"prediction": dbPredictionToPrediction(&prediction)})
}

// apply copies the request onto p. Fields left out of the request take
// their defaults.
func (r *PredictionRequest) apply(p *models.Prediction, now time.Time) string {
	if r.Timeframe == nil {
		return "timeframe is required"
	}
	if msg := exceedsLimit(
		fieldLimit{"user_prediction_status", &r.UserPredictionStatus, 16},
		fieldLimit{"claim_title", &r.ClaimTitle, 100},
		fieldLimit{"status", &r.Status, 16},
	); msg != "" {
		return msg
	}
	p.UserID = r.UserID
	p.UserPredictionStatus = r.UserPredictionStatus
	if p.UserPredictionStatus == "" {
		p.UserPredictionStatus = util.StatusPending
	}
	p.ClaimTitle = r.ClaimTitle
	p.ClaimMajor = r.ClaimMajor
	p.Timeframe = *r.Timeframe
	p.PostTime = now
	if r.PostTime != nil {
		p.PostTime = *r.PostTime
	}
	p.Status = r.Status
	if p.Status == "" {
		p.Status = statusIncomplete
	}
	p.ConcReason = r.ConcReason
	p.ConcReasonTimestamp = r.ConcReasonTimestamp
	return ""
}

// @Summary		Create a prediction
// @Tags			prediction
// @Param			prediction	body	PredictionRequest	true	"Prediction to create"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Router			/api/v1/predictions [post]
func PostPredictionHandler(res http.ResponseWriter, req *http.Request) {
	var body PredictionRequest
	if !decodeBody(res, req, &body) {
		return
	}

	var prediction models.Prediction
	if msg := body.apply(&prediction, time.Now().UTC()); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}
	if err := util.GetDb().Omit(clause.Associations).Create(&prediction).Error; err != nil {
		writeDbError(res, "prediction", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully created a prediction.", map[string]any{"prediction": prediction})
}

// @Summary		Update a prediction
// @Description	Replace every editable field of a prediction
// @Tags			prediction
// @Param			id			path	int					true	"Prediction id"
// @Param			prediction	body	PredictionRequest	true	"New content"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/predictions/{id} [put]
func PutPredictionHandler(res http.ResponseWriter, req *http.Request) {
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}
	var body PredictionRequest
	if !decodeBody(res, req, &body) {
		return
	}

	db := util.GetDb()
	var prediction models.Prediction
	if err := db.First(&prediction, predictionID).Error; err != nil {
		writeDbError(res, "prediction", err)
		return
	}
	if msg := body.apply(&prediction, prediction.PostTime); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}
	if err := db.Omit(clause.Associations).Save(&prediction).Error; err != nil {
		writeDbError(res, "prediction", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully updated prediction.", map[string]any{"prediction": prediction})
}

// @Summary		Delete a prediction
// @Description	Delete a prediction together with its reasons, comments, votes and tally
// @Tags			prediction
// @Param			id	path	int	true	"Prediction id"
// @Success		204
// @Failure		404	{object}	Envelope
// @Router			/api/v1/predictions/{id} [delete]
func DeletePredictionHandler(res http.ResponseWriter, req *http.Request) {
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	result := util.GetDb().Delete(&models.Prediction{}, predictionID)
	if result.Error != nil {
		writeServerError(res, "could not delete prediction", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeFailure(res, http.StatusNotFound, KindNotFound, "prediction not found")
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

// @Summary		Delete incomplete predictions
// @Description	Delete the predictions of a user that were never completed
// @Tags			prediction
// @Param			id	path	int	true	"Account id"
// @Success		204
// @Router			/api/v1/predictions/incomplete/{id} [delete]
func DeleteIncompletePredictionsHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodDelete) {
		return
	}
	userID, ok := getID(res, "id")
	if !ok {
		return
	}

	err := util.GetDb().
		Where("user_id = ? AND status = ?", userID, statusIncomplete).
		Delete(&models.Prediction{}).Error
	if err != nil {
		writeServerError(res, "could not delete incomplete predictions", err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
