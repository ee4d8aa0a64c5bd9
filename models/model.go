package models

import (
	"time"
)

type Account struct {
	UserID          uint   `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username        string `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Password        string `json:"-" gorm:"size:255;not null"`
	Email           string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PredictionScore int    `json:"prediction_score" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Predictions  []Prediction  `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Votes        []Vote        `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	Comments     []Comment     `json:"-" gorm:"foreignKey:UserID;references:UserID"`
	CommentVotes []CommentVote `json:"-" gorm:"foreignKey:UserID;references:UserID"`
}

type Prediction struct {
	PredictionID         uint       `json:"prediction_id" gorm:"primaryKey;column:prediction_id"`
	UserID               uint       `json:"user_id" gorm:"index;not null"`
	UserPredictionStatus string     `json:"user_prediction_status" gorm:"size:16;not null"`
	ClaimTitle           string     `json:"claim_title" gorm:"size:100;not null"`
	ClaimMajor           string     `json:"claim_major" gorm:"type:text;not null"`
	PostTime             time.Time  `json:"post_time" gorm:"not null"`
	Timeframe            time.Time  `json:"timeframe" gorm:"index;not null"`
	Status               string     `json:"status" gorm:"size:16;index;not null"`
	ConcReason           *string    `json:"conc_reason" gorm:"type:text"`
	ConcReasonTimestamp  *time.Time `json:"conc_reason_timestamp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Account is only preloaded; the constraint comes from Account.Predictions.
	Account  Account              `json:"-" gorm:"foreignKey:UserID;references:UserID;-:migration"`
	Tally    *PredictionVoteTally `json:"-" gorm:"foreignKey:PredictionID;references:PredictionID;constraint:OnDelete:CASCADE"`
	Reasons  []Reason             `json:"-" gorm:"foreignKey:PredictionID;references:PredictionID;constraint:OnDelete:CASCADE"`
	Comments []Comment            `json:"-" gorm:"foreignKey:PredictionID;references:PredictionID;constraint:OnDelete:CASCADE"`
	Votes    []Vote               `json:"-" gorm:"foreignKey:PredictionID;references:PredictionID;constraint:OnDelete:CASCADE"`
}

// PredictionVoteTally holds the running counters of a prediction's ballots.
// There is at most one row per prediction and it has to exist before any
// ballot can be counted.
type PredictionVoteTally struct {
	TallyID      uint `json:"tally_id" gorm:"primaryKey;column:tally_id"`
	PredictionID uint `json:"prediction_id" gorm:"uniqueIndex;not null"`
	Plausible    uint `json:"plausible" gorm:"not null;default:0"`
	Implausible  uint `json:"implausible" gorm:"not null;default:0"`
	Correct      uint `json:"correct" gorm:"not null;default:0"`
	Incorrect    uint `json:"incorrect" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Vote is a single user's ballot on a prediction. A nil field means the user
// did not express an opinion on that dimension yet.
type Vote struct {
	VoteID       uint  `json:"vote_id" gorm:"primaryKey;column:vote_id"`
	PredictionID uint  `json:"prediction_id" gorm:"not null;uniqueIndex:idx_votes_prediction_user"`
	UserID       uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_votes_prediction_user"`
	Plausible    *bool `json:"plausible"`
	Correct      *bool `json:"correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Reason struct {
	ReasonID     uint   `json:"reason_id" gorm:"primaryKey;column:reason_id"`
	PredictionID uint   `json:"prediction_id" gorm:"index;not null"`
	Reason       string `json:"reason" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sources []Source `json:"sources,omitempty" gorm:"foreignKey:ReasonID;references:ReasonID;constraint:OnDelete:CASCADE"`
}

// Source is a citation backing a reason. Dates are stored as YYYY-MM-DD.
type Source struct {
	SourceID        uint    `json:"source_id" gorm:"primaryKey;column:source_id"`
	ReasonID        uint    `json:"reason_id" gorm:"column:reason_id;index;not null"`
	SourceType      *string `json:"source_type" gorm:"column:source_type;size:24"`
	Author1Last     *string `json:"author1_last" gorm:"column:author1_last;size:264"`
	Author1Initial  *string `json:"author1_initial" gorm:"column:author1_initial;size:10"`
	Author1First    *string `json:"author1_first" gorm:"column:author1_first;size:264"`
	Author2Last     *string `json:"author2_last" gorm:"column:author2_last;size:264"`
	Author2Initial  *string `json:"author2_initial" gorm:"column:author2_initial;size:10"`
	Author2First    *string `json:"author2_first" gorm:"column:author2_first;size:264"`
	EtAl            bool    `json:"et_al" gorm:"column:et_al;not null;default:false"`
	DatabaseName    *string `json:"database_name" gorm:"column:database_name;size:264"`
	PublicationDate *string `json:"publication_date" gorm:"column:publication_date;size:10"`
	AccessedDate    *string `json:"accessed_date" gorm:"column:accessed_date;size:10"`
	Title           *string `json:"title" gorm:"column:title;size:400"`
	Edition         *string `json:"edition" gorm:"column:edition;size:15"`
	Volume          *string `json:"volume" gorm:"column:volume;size:15"`
	Issue           *string `json:"issue" gorm:"column:issue;size:15"`
	Pages           *string `json:"pages" gorm:"column:pages;size:15"`
	PublisherName   *string `json:"publisher_name" gorm:"column:publisher_name;size:264"`
	UploaderName    *string `json:"uploader_name" gorm:"column:uploader_name;size:264"`
	URL             *string `json:"url" gorm:"column:url;type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment threads are at most three levels deep: ChildValue is the depth,
// SuperParentID the root of the thread and ParentID the comment replied to.
// Both are 0 for top level comments.
type Comment struct {
	CommentID     uint   `json:"comment_id" gorm:"primaryKey;column:comment_id"`
	PredictionID  uint   `json:"prediction_id" gorm:"index;not null"`
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	Username      string `json:"username" gorm:"size:255;not null"`
	SuperParentID uint   `json:"super_parent_id" gorm:"index;not null;default:0"`
	ParentID      uint   `json:"parent_id" gorm:"index;not null;default:0"`
	ChildCount    uint   `json:"child_count" gorm:"not null;default:0"`
	ChildValue    uint   `json:"child_value" gorm:"not null;default:0"`
	Comment       string `json:"comment" gorm:"type:text;not null"`
	Likes         uint   `json:"likes" gorm:"not null;default:0"`
	Dislikes      uint   `json:"dislikes" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CommentVotes []CommentVote `json:"-" gorm:"foreignKey:CommentID;references:CommentID;constraint:OnDelete:CASCADE"`
}

type CommentVote struct {
	CommentVoteID uint  `json:"comment_vote_id" gorm:"primaryKey;column:comment_vote_id"`
	CommentID     uint  `json:"comment_id" gorm:"not null;uniqueIndex:idx_comment_votes_comment_user"`
	UserID        uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_comment_votes_comment_user"`
	Likes         *bool `json:"likes"`
	Dislikes      *bool `json:"dislikes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every entity in migration order.
func All() []any {
	return []any{
		&Account{}, &Prediction{}, &PredictionVoteTally{}, &Vote{},
		&Reason{}, &Source{}, &Comment{}, &CommentVote{},
	}
}
