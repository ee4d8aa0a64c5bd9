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

// @Summary		List comment ballots
// @Tags			comment-vote
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/comment-votes [get]
func GetCommentVotesHandler(res http.ResponseWriter, req *http.Request) {
	var votes []models.CommentVote
	if err := util.GetDb().Order("comment_vote_id").Find(&votes).Error; err != nil {
		writeServerError(res, "could not list comment votes", err)
		return
	}
	writeList(res, "Successfully gathered all comment votes.", "comment_votes", votes, len(votes))
}

// @Summary		Ballots of a comment
// @Tags			comment-vote
// @Param			id	path	int	true	"Comment id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Router			/api/v1/comment-votes/{id} [get]
func GetCommentCommentVotesHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodGet) {
		return
	}
	commentID, ok := getID(res, "id")
	if !ok {
		return
	}

	var votes []models.CommentVote
	if err := util.GetDb().Where("comment_id = ?", commentID).Order("comment_vote_id").Find(&votes).Error; err != nil {
		writeServerError(res, "could not list comment votes", err)
		return
	}
	writeList(res,
		fmt.Sprintf("Successfully gathered all votes for comment with id = %d.", commentID),
		"comment_votes", votes, len(votes))
}

// @Summary		Cast a comment ballot
// @Description	Like or dislike a comment, replacing the user's previous reaction. Both false clears it.
// @Tags			comment-vote
// @Param			vote	body	CommentVoteRequest	true	"Ballot"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Failure		409	{object}	Envelope
// @Router			/api/v1/comment-votes [post]
func PostCommentVoteHandler(res http.ResponseWriter, req *http.Request) {
	var body CommentVoteRequest
	if !decodeBody(res, req, &body) {
		return
	}
	if body.CommentID == 0 || body.UserID == 0 {
		writeFailure(res, http.StatusUnauthorized, KindValidation, "comment_id and user_id are required")
		return
	}

	vote, comment, err := tally.CastCommentVote(util.GetDb(), models.CommentVote{
		CommentID: body.CommentID,
		UserID:    body.UserID,
		Likes:     body.Likes,
		Dislikes:  body.Dislikes,
	})
	if err != nil {
		writeBallotError(res, "comment vote", err)
		return
	}
	metrics.BallotsCast.WithLabelValues(metrics.BallotComment).Inc()
	writeData(res, http.StatusOK, "Successfully voted on comment.", map[string]any{"comment_vote": vote, "comment": comment})
}

// @Summary		Bump a comment counter
// @Description	Add one to the likes or dislikes of a comment
// @Tags			comment-vote
// @Param			like_value	path	string	true	"Counter"	Enums(likes, dislikes)
// @Param			id			path	int		true	"Comment id"
// @Produce		json
// @Success		200	{object}	Envelope
// @Failure		401	{object}	Envelope
// @Failure		404	{object}	Envelope
// @Router			/api/v1/comment-votes/{like_value}/{id} [put]
func BumpCommentHandler(res http.ResponseWriter, req *http.Request) {
	if methodNotAllowed(res, req, http.MethodPut) {
		return
	}
	reaction, err := tally.ParseReaction(muxie.GetParam(res, "like_value"))
	if err != nil {
		writeFailure(res, http.StatusUnauthorized, KindValidation, err.Error())
		return
	}
	commentID, ok := getID(res, "id")
	if !ok {
		return
	}

	comment, err := tally.BumpComment(util.GetDb(), commentID, reaction)
	if err != nil {
		writeDbError(res, "comment", err)
		return
	}
	writeData(res, http.StatusOK,
		fmt.Sprintf("Successfully updated %s of comment with id = %d.", reaction, commentID),
		map[string]any{"comment": comment})
}
