package api

import (
	"time"

	"github.com/cartabinaria/forecast/models"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type AuthFailure struct {
	Status  string `json:"status"`
	Message any    `json:"message,omitempty"`
}

type AccountSummary struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type DashboardUser struct {
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	PredictionScore int    `json:"prediction_score"`
}

type DashboardResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	User    DashboardUser `json:"user"`
}

type PredictionRequest struct {
	UserID               uint       `json:"user_id"`
	UserPredictionStatus string     `json:"user_prediction_status"`
	ClaimTitle           string     `json:"claim_title"`
	ClaimMajor           string     `json:"claim_major"`
	PostTime             *time.Time `json:"post_time"`
	Timeframe            *time.Time `json:"timeframe"`
	Status               string     `json:"status"`
	ConcReason           *string    `json:"conc_reason"`
	ConcReasonTimestamp  *time.Time `json:"conc_reason_timestamp"`
}

// Prediction is a prediction joined with its author's username and its
// tally counters. The counters are null when the prediction has no tally.
type Prediction struct {
	PredictionID         uint       `json:"prediction_id"`
	UserID               uint       `json:"user_id"`
	Username             string     `json:"username"`
	UserPredictionStatus string     `json:"user_prediction_status"`
	ClaimTitle           string     `json:"claim_title"`
	ClaimMajor           string     `json:"claim_major"`
	Timeframe            time.Time  `json:"timeframe"`
	PostTime             time.Time  `json:"post_time"`
	Status               string     `json:"status"`
	ConcReason           *string    `json:"conc_reason"`
	ConcReasonTimestamp  *time.Time `json:"conc_reason_timestamp"`

	TallyID     *uint `json:"tally_id"`
	Plausible   *uint `json:"plausible"`
	Implausible *uint `json:"implausible"`
	Correct     *uint `json:"correct"`
	Incorrect   *uint `json:"incorrect"`
}

type ReasonRequest struct {
	PredictionID uint   `json:"prediction_id"`
	Reason       string `json:"reason"`
}

type SourceRequest struct {
	ReasonID        uint    `json:"reason_id"`
	SourceType      *string `json:"source_type"`
	Author1Last     *string `json:"author1_last"`
	Author1Initial  *string `json:"author1_initial"`
	Author1First    *string `json:"author1_first"`
	Author2Last     *string `json:"author2_last"`
	Author2Initial  *string `json:"author2_initial"`
	Author2First    *string `json:"author2_first"`
	EtAl            bool    `json:"et_al"`
	DatabaseName    *string `json:"database_name"`
	PublicationDate *string `json:"publication_date"`
	AccessedDate    *string `json:"accessed_date"`
	Title           *string `json:"title"`
	Edition         *string `json:"edition"`
	Volume          *string `json:"volume"`
	Issue           *string `json:"issue"`
	Pages           *string `json:"pages"`
	PublisherName   *string `json:"publisher_name"`
	UploaderName    *string `json:"uploader_name"`
	URL             *string `json:"url"`
}

type VoteRequest struct {
	PredictionID uint  `json:"prediction_id"`
	UserID       uint  `json:"user_id"`
	Plausible    *bool `json:"plausible"`
	Correct      *bool `json:"correct"`
}

type UpdateVoteRequest struct {
	Correct *bool `json:"correct"`
}

type TallyRequest struct {
	PredictionID uint `json:"prediction_id"`
}

type CommentRequest struct {
	PredictionID uint   `json:"prediction_id"`
	UserID       uint   `json:"user_id"`
	ParentID     uint   `json:"parent_id"`
	Comment      string `json:"comment"`
}

type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

type CommentVoteRequest struct {
	CommentID uint  `json:"comment_id"`
	UserID    uint  `json:"user_id"`
	Likes     *bool `json:"likes"`
	Dislikes  *bool `json:"dislikes"`
}

func dbPredictionToPrediction(p *models.Prediction) Prediction {
	res := Prediction{
		PredictionID:         p.PredictionID,
		UserID:               p.UserID,
		Username:             p.Account.Username,
		UserPredictionStatus: p.UserPredictionStatus,
		ClaimTitle:           p.ClaimTitle,
		ClaimMajor:           p.ClaimMajor,
		Timeframe:            p.Timeframe,
		PostTime:             p.PostTime,
		Status:               p.Status,
		ConcReason:           p.ConcReason,
		ConcReasonTimestamp:  p.ConcReasonTimestamp,
	}
	if t := p.Tally; t != nil {
		res.TallyID = &t.TallyID
		res.Plausible = &t.Plausible
		res.Implausible = &t.Implausible
		res.Correct = &t.Correct
		res.Incorrect = &t.Incorrect
	}
	return res
}

func dbPredictionsToPredictions(p []models.Prediction) []Prediction {
	res := make([]Prediction, len(p))
	for i := range p {
		res[i] = dbPredictionToPrediction(&p[i])
	}
	return res
}
