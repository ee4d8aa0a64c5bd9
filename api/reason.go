package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// @Summary		List reasons
// @Tags			reason
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/reasons [get]
func GetReasonsHandler(res http.ResponseWriter, req *http.Request) {
	var reasons []models.Reason
	if err := util.GetDb().Order("reason_id").Find(&reasons).Error; err != nil {
		writeServerError(res, "could not list reasons", err)
		return
	}
	writeList(res, "Successfully gathered all reasons.", "reasons", reasons, len(reasons))
}

// @Summary		Reasons of a prediction
// @Description	Reasons backing a prediction, each with its sources
// @Tags			reason
// @Param			id	path	int	true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/reasons/{id} [get]
func GetPredictionReasonsHandler(res http.ResponseWriter, req *http.Request) {
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	var reasons []models.Reason
	err := util.GetDb().
		Preload("Sources", func(db *gorm.DB) *gorm.DB { return db.Order("source_id") }).
		Where("prediction_id = ?", predictionID).
		Order("reason_id").
		Find(&reasons).Error
	if err != nil {
		writeServerError(res, "could not list reasons", err)
		return
	}
	writeList(res,
		fmt.Sprintf("Successfully gathered reasons for prediction with id = %d", predictionID),
		"reasons", reasons, len(reasons))
}

func (r *ReasonRequest) validate() string {
	r.Reason = strings.TrimSpace(r.Reason)
	switch {
	case r.PredictionID == 0:
		return "prediction_id is required"
	case r.Reason == "":
		return "reason is required"
	}
	return ""
}

// @Summary		Add a reason
// @Tags			reason
// @Param			reason	body	ReasonRequest	true	"Reason to add"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Router			/api/v1/reasons [post]
func PostReasonHandler(res http.ResponseWriter, req *http.Request) {
	var body ReasonRequest
	if !decodeBody(res, req, &body) {
		return
	}
	if msg := body.validate(); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}

	reason := models.Reason{PredictionID: body.PredictionID, Reason: body.Reason}
	if err := util.GetDb().Omit(clause.Associations).Create(&reason).Error; err != nil {
		writeDbError(res, "reason", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully added a reason for a prediction.", map[string]any{"reason": reason})
}

// @Summary		Update a reason
// @Tags			reason
// @Param			id		path	int				true	"Reason id"
// @Param			reason	body	ReasonRequest	true	"New content"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/reasons/{id} [put]
func PutReasonHandler(res http.ResponseWriter, req *http.Request) {
	reasonID, ok := getID(res, "id")
	if !ok {
		return
	}
	var body ReasonRequest
	if !decodeBody(res, req, &body) {
		return
	}

	db := util.GetDb()
	var reason models.Reason
	if err := db.First(&reason, reasonID).Error; err != nil {
		writeDbError(res, "reason", err)
		return
	}
	// a reason keeps its prediction unless the request moves it
	if body.PredictionID == 0 {
		body.PredictionID = reason.PredictionID
	}
	if msg := body.validate(); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}

	reason.PredictionID = body.PredictionID
	reason.Reason = body.Reason
	if err := db.Omit(clause.Associations).Save(&reason).Error; err != nil {
		writeDbError(res, "reason", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully updated reason.", map[string]any{"reason": reason})
}

// @Summary		Delete a reason
// @Description	Delete a reason and its sources
// @Tags			reason
// @Param			id	path	int	true	"Reason id"
// @Success		204
// @Failure		404	{object}	Envelope
// @Router			/api/v1/reasons/{id} [delete]
func DeleteReasonHandler(res http.ResponseWriter, req *http.Request) {
	reasonID, ok := getID(res, "id")
	if !ok {
		return
	}

	result := util.GetDb().Delete(&models.Reason{}, reasonID)
	if result.Error != nil {
		writeServerError(res, "could not delete reason", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeFailure(res, http.StatusNotFound, KindNotFound, "reason not found")
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
