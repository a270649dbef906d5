package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/constants"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/requests"
	"github.com/bhavishkl/NoQue/review"
)

type CreateReviewBody struct {
	QueueID string `json:"queueId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (c *Controller) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req CreateReviewBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	rev, err := db.Service().ReviewStore.Insert(ctx, req.QueueID, userID, req.Rating, req.Comment)
	switch {
	case errors.Is(err, review.ErrInvalidRating), errors.Is(err, review.ErrCommentTooLong):
		requests.RespondWithError(w, http.StatusBadRequest, constants.ErrorInvalidReview)
		return
	case errors.Is(err, review.ErrDuplicateReview):
		requests.RespondWithError(w, http.StatusConflict, constants.ErrorDuplicateReview)
		return
	case err != nil:
		requests.RespondWithDBError(w, err)
		return
	}

	if err := c.Tasks.EnqueueAnalyticsRefresh(req.QueueID); err != nil {
		c.Logger.WithError(err).Warn("enqueue analytics refresh")
	}

	body, err := json.MarshalIndent(rev, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(body)
}

func (c *Controller) ListReviews(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}
	queueID := r.URL.Query().Get("queueId")
	if queueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	reviews, err := db.Service().ReviewStore.ListForQueue(r.Context(), queueID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	body, err := json.MarshalIndent(reviews, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}
