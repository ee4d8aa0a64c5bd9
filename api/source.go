package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
)

const sourceDateLayout = time.DateOnly

func validDate(date *string) bool {
	if date == nil || *date == "" {
		return true
	}
	_, err := time.Parse(sourceDateLayout, *date)
	return err == nil
}

// toModel copies the request onto s, replacing every citation field.
func (r *SourceRequest) toModel(s *models.Source) string {
	switch {
	case r.ReasonID == 0:
		return "reason_id is required"
	case !validDate(r.PublicationDate):
		return "publication_date must be formatted as YYYY-MM-DD"
	case !validDate(r.AccessedDate):
		return "accessed_date must be formatted as YYYY-MM-DD"
	}
	if msg := exceedsLimit(
		fieldLimit{"source_type", r.SourceType, 24},
		fieldLimit{"author1_last", r.Author1Last, 264},
		fieldLimit{"author1_initial", r.Author1Initial, 10},
		fieldLimit{"author1_first", r.Author1First, 264},
		fieldLimit{"author2_last", r.Author2Last, 264},
		fieldLimit{"author2_initial", r.Author2Initial, 10},
		fieldLimit{"author2_first", r.Author2First, 264},
		fieldLimit{"database_name", r.DatabaseName, 264},
		fieldLimit{"title", r.Title, 400},
		fieldLimit{"edition", r.Edition, 15},
		fieldLimit{"volume", r.Volume, 15},
		fieldLimit{"issue", r.Issue, 15},
		fieldLimit{"pages", r.Pages, 15},
		fieldLimit{"publisher_name", r.PublisherName, 264},
		fieldLimit{"uploader_name", r.UploaderName, 264},
	); msg != "" {
		return msg
	}

	s.ReasonID = r.ReasonID
	s.SourceType = r.SourceType
	s.Author1Last = r.Author1Last
	s.Author1Initial = r.Author1Initial
	s.Author1First = r.Author1First
	s.Author2Last = r.Author2Last
	s.Author2Initial = r.Author2Initial
	s.Author2First = r.Author2First
	s.EtAl = r.EtAl
	s.DatabaseName = r.DatabaseName
	s.PublicationDate = r.PublicationDate
	s.AccessedDate = r.AccessedDate
	s.Title = r.Title
	s.Edition = r.Edition
	s.Volume = r.Volume
	s.Issue = r.Issue
	s.Pages = r.Pages
	s.PublisherName = r.PublisherName
	s.UploaderName = r.UploaderName
	s.URL = r.URL
	return ""
}

// @Summary		List sources
// @Tags			source
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/sources [get]
func GetSourcesHandler(res http.ResponseWriter, req *http.Request) {
	var sources []models.Source
	if err := util.GetDb().Order("source_id").Find(&sources).Error; err != nil {
		writeServerError(res, "could not list sources", err)
		return
	}
	writeList(res, "Successfully gathered all sources.", "sources", sources, len(sources))
}

// @Summary		Sources of a reason
// @Tags			source
// @Param			id	path	int	true	"Reason id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/sources/{id} [get]
func GetReasonSourcesHandler(res http.ResponseWriter, req *http.Request) {
	reasonID, ok := getID(res, "id")
	if !ok {
		return
	}

	var sources []models.Source
	if err := util.GetDb().Where("reason_id = ?", reasonID).Order("source_id").Find(&sources).Error; err != nil {
		writeServerError(res, "could not list sources", err)
		return
	}
	writeList(res,
		fmt.Sprintf("Successfully gathered sources for reason with id = %d", reasonID),
		"sources", sources, len(sources))
}

// @Summary		Add a source
// @Tags			source
// @Param			source	body	SourceRequest	true	"Citation to add"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Router			/api/v1/sources [post]
func PostSourceHandler(res http.ResponseWriter, req *http.Request) {
	var body SourceRequest
	if !decodeBody(res, req, &body) {
		return
	}

	var source models.Source
	if msg := body.toModel(&source); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}
	if err := util.GetDb().Create(&source).Error; err != nil {
		writeDbError(res, "source", err)
		return
	}
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully added a source to reason with id = %d", source.ReasonID),
		map[string]any{"source": source})
}

// @Summary		Update a source
// @Tags			source
// @Param			id		path	int				true	"Source id"
// @Param			source	body	SourceRequest	true	"New citation"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/sources/{id} [put]
func PutSourceHandler(res http.ResponseWriter, req *http.Request) {
	sourceID, ok := getID(res, "id")
	if !ok {
		return
	}
	var body SourceRequest
	if !decodeBody(res, req, &body) {
		return
	}

	db := util.GetDb()
	var source models.Source
	if err := db.First(&source, sourceID).Error; err != nil {
		writeDbError(res, "source", err)
		return
	}
	if body.ReasonID == 0 {
		body.ReasonID = source.ReasonID
	}
	if msg := body.toModel(&source); msg != "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, msg)
		return
	}
	if err := db.Save(&source).Error; err != nil {
		writeDbError(res, "source", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully updated source.", map[string]any{"source": source})
}

// @Summary		Delete a source
// @Tags			source
// @Param			id	path	int	true	"Source id"
// @Success		204
// @Failure		404	{object}	Envelope
// @Router			/api/v1/sources/{id} [delete]
func DeleteSourceHandler(res http.ResponseWriter, req *http.Request) {
	sourceID, ok := getID(res, "id")
	if !ok {
		return
	}

	result := util.GetDb().Delete(&models.Source{}, sourceID)
	if result.Error != nil {
		writeServerError(res, "could not delete source", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		writeFailure(res, http.StatusNotFound, KindNotFound, "source not found")
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
