package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cartabinaria/forecast/models"
	"github.com/cartabinaria/forecast/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxCommentDepth is the child_value of the deepest reply allowed.
const MaxCommentDepth = 2

var (
	errUnknownAuthor = errors.New("user_id does not match any account")
	errUnknownParent = errors.New("parent_id does not match any comment of this prediction")
	errTooDeep       = fmt.Errorf("replies can be nested at most %d levels deep", MaxCommentDepth)
)

// @Summary		List comments
// @Tags			comment
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/comments [get]
func GetCommentsHandler(res http.ResponseWriter, req *http.Request) {
	var comments []models.Comment
	if err := util.GetDb().Order("comment_id").Find(&comments).Error; err != nil {
		writeServerError(res, "could not list comments", err)
		return
	}
	writeList(res, "Successfully gathered all comments.", "comments", comments, len(comments))
}

// @Summary		Comments of a prediction
// @Tags			comment
// @Param			id	path	int	true	"Prediction id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/comments/{id} [get]
func GetPredictionCommentsHandler(res http.ResponseWriter, req *http.Request) {
	predictionID, ok := getID(res, "id")
	if !ok {
		return
	}

	var comments []models.Comment
	if err := util.GetDb().Where("prediction_id = ?", predictionID).Order("comment_id").Find(&comments).Error; err != nil {
		writeServerError(res, "could not list comments", err)
		return
	}
	writeList(res,
		fmt.Sprintf("Successfully gathered comments for prediction with id = %d.", predictionID),
		"comments", comments, len(comments))
}

// createComment inserts a comment, threading it under its parent when it is
// a reply. The author's username is copied from the account.
func createComment(db *gorm.DB, body CommentRequest) (*models.Comment, error) {
	comment := models.Comment{
		PredictionID: body.PredictionID,
		UserID:       body.UserID,
		Comment:      body.Comment,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var author models.Account
		err := tx.Select("user_id", "username").Take(&author, body.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errUnknownAuthor
		} else if err != nil {
			return err
		}
		comment.Username = author.Username

		if body.ParentID != 0 {
			var parent models.Comment
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("comment_id = ? AND prediction_id = ?", body.ParentID, body.PredictionID).
				Take(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUnknownParent
			} else if err != nil {
				return err
			}
			if parent.ChildValue >= MaxCommentDepth {
				return errTooDeep
			}

			comment.ParentID = parent.CommentID
			comment.ChildValue = parent.ChildValue + 1
			comment.SuperParentID = parent.SuperParentID
			if parent.SuperParentID == 0 {
				comment.SuperParentID = parent.CommentID
			}
			if _, err := util.Increment(tx, &models.Comment{}, "child_count", 1, "comment_id = ?", parent.CommentID); err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// @Summary		Post a comment
// @Description	Post a top level comment, or a reply when parent_id is set
// @Tags			comment
// @Param			comment	body	CommentRequest	true	"Comment to post"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Router			/api/v1/comments [post]
func PostCommentHandler(res http.ResponseWriter, req *http.Request) {
	var body CommentRequest
	if !decodeBody(res, req, &body) {
		return
	}
	body.Comment = strings.TrimSpace(body.Comment)
	if body.PredictionID == 0 || body.UserID == 0 || body.Comment == "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "prediction_id, user_id and comment are required")
		return
	}

	comment, err := createComment(util.GetDb(), body)
	switch {
	case errors.Is(err, errUnknownAuthor), errors.Is(err, errUnknownParent), errors.Is(err, errTooDeep):
		writeFailure(res, http.StatusUnauthorized, KindValidation, err.Error())
		return
	case err != nil:
		writeDbError(res, "comment", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully posted a comment.", map[string]any{"comment": comment})
}

// @Summary		Edit a comment
// @Tags			comment
// @Param			id		path	int						true	"Comment id"
// @Param			comment	body	UpdateCommentRequest	true	"New text"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/comments/{id} [put]
func PutCommentHandler(res http.ResponseWriter, req *http.Request) {
	commentID, ok := getID(res, "id")
	if !ok {
		return
	}
	var body UpdateCommentRequest
	if !decodeBody(res, req, &body) {
		return
	}
	body.Comment = strings.TrimSpace(body.Comment)
	if body.Comment == "" {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "comment is required")
		return
	}

	db := util.GetDb()
	var comment models.Comment
	if err := db.First(&comment, commentID).Error; err != nil {
		writeDbError(res, "comment", err)
		return
	}
	comment.Comment = body.Comment
	if err := db.Model(&comment).Update("comment", comment.Comment).Error; err != nil {
		writeDbError(res, "comment", err)
		return
	}
	writeData(res, http.StatusOK, "Successfully updated comment.", map[string]any{"comment": comment})
}

// deleteComment removes a comment with every reply below it and drops it
// from its parent's child_count.
func deleteComment(db *gorm.DB, commentID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Take(&comment, commentID).Error; err != nil {
			return err
		}

		var replies *gorm.DB
		switch comment.ChildValue {
		case 0:
			replies = tx.Where("super_parent_id = ?", comment.CommentID)
		default:
			replies = tx.Where("parent_id = ?", comment.CommentID)
		}
		if err := replies.Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}

		if comment.ParentID != 0 {
			_, err := util.Increment(tx, &models.Comment{}, "child_count", -1, "comment_id = ? AND child_count > 0", comment.ParentID)
			return err
		}
		return nil
	})
}

// @Summary		Delete a comment
// @Description	Delete a comment and its replies
// @Tags			comment
// @Param			id	path	int	true	"Comment id"
// @Success		204
// @Failure		404	{object}	Envelope
// @Router			/api/v1/comments/{id} [delete]
func DeleteCommentHandler(res http.ResponseWriter, req *http.Request) {
	commentID, ok := getID(res, "id")
	if !ok {
		return
	}

	if err := deleteComment(util.GetDb(), commentID); err != nil {
		writeDbError(res, "comment", err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
