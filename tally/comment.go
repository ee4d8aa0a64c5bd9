package tally

import (
	"errors"
	"fmt"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
)

// Reaction is a comment counter column.
type Reaction string

const (
	Like    Reaction = "likes"
	Dislike Reaction = "dislikes"
)

var (
	ErrUnknownReaction     = errors.New("unknown comment reaction")
	ErrConflictingReaction = errors.New("a comment ballot cannot both like and dislike")
	ErrNoComment           = errors.New("comment not found")
)

func ParseReaction(s string) (Reaction, error) {
	switch s {
	case "likes", "like":
		return Like, nil
	case "dislikes", "dislike":
		return Dislike, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReaction, s)
}

func reactionOf(v *models.CommentVote) Reaction {
	switch {
	case v == nil:
		return ""
	case v.Likes != nil && *v.Likes:
		return Like
	case v.Dislikes != nil && *v.Dislikes:
		return Dislike
	}
	return ""
}

func getComment(db *gorm.DB, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.Take(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoComment
	} else if err != nil {
		return nil, err
	}
	return &comment, nil
}

func applyComment(tx *gorm.DB, commentID uint, deltas map[string]int) error {
	rows, err := util.IncrementColumns(tx, &models.Comment{}, deltas, "comment_id = ?", commentID)
	if err != nil {
		return fmt.Errorf("could not update counters of comment %d: %w", commentID, err)
	}
	if rows == 0 {
		return ErrNoComment
	}
	return nil
}

// BumpComment adds one to the likes or dislikes of a comment.
func BumpComment(db *gorm.DB, commentID uint, reaction Reaction) (*models.Comment, error) {
	if _, err := ParseReaction(string(reaction)); err != nil {
		return nil, err
	}

	var comment *models.Comment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := applyComment(tx, commentID, map[string]int{string(reaction): 1}); err != nil {
			return err
		}
		var err error
		comment, err = getComment(tx, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// CastCommentVote sets a user's reaction to a comment, replacing any earlier
// one, and keeps the comment's likes and dislikes in step.
func CastCommentVote(db *gorm.DB, ballot models.CommentVote) (*models.CommentVote, *models.Comment, error) {
	if ballot.Likes != nil && *ballot.Likes && ballot.Dislikes != nil && *ballot.Dislikes {
		return nil, nil, ErrConflictingReaction
	}

	var (
		vote    models.CommentVote
		comment *models.Comment
	)
	err := db.Transaction(func(tx *gorm.DB) error {
		var previous *models.CommentVote
		var existing models.CommentVote
		err := tx.Clauses(lockForUpdate).
			Where("comment_id = ? AND user_id = ?", ballot.CommentID, ballot.UserID).
			Take(&existing).Error
		if err == nil {
			previous = &existing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if previous == nil {
			vote = models.CommentVote{
				CommentID: ballot.CommentID,
				UserID:    ballot.UserID,
				Likes:     ballot.Likes,
				Dislikes:  ballot.Dislikes,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		} else {
			vote = *previous
			vote.Likes, vote.Dislikes = ballot.Likes, ballot.Dislikes
			if err := tx.Save(&vote).Error; err != nil {
				return err
			}
		}

		deltas := map[string]int{}
		transition(deltas, reactionOf(previous), reactionOf(&vote))
		if err := applyComment(tx, ballot.CommentID, deltas); err != nil {
			return err
		}
		comment, err = getComment(tx, ballot.CommentID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &vote, comment, nil
}
