package controller

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/config"
	"github.com/bhavishkl/NoQue/constants"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/history"
	"github.com/bhavishkl/NoQue/queue"
	"github.com/bhavishkl/NoQue/requests"
)

type JoinQueueBody struct {
	QueueID   string `json:"queueId"`
	PaymentID string `json:"paymentId"`
}

func (c *Controller) JoinQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req JoinQueueBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	if fee := config.GetJoinFee(); fee.IsPositive() {
		if req.PaymentID == "" {
			requests.RespondWithError(w, http.StatusPaymentRequired, constants.ErrorPaymentRequired)
			return
		}
		if err := c.Payments.VerifyCaptured(ctx, req.PaymentID, fee, joinFeeCurrency); err != nil {
			c.Logger.WithError(err).WithField("payment_id", req.PaymentID).Warn("join payment rejected")
			requests.RespondWithError(w, http.StatusBadRequest, constants.ErrorPaymentInvalid)
			return
		}
	}

	member, err := db.Service().QueueStore.Join(ctx, req.QueueID, userID)
	switch {
	case errors.Is(err, queue.ErrAlreadyJoined):
		requests.RespondWithError(w, http.StatusBadRequest, constants.ErrorAlreadyJoined)
		return
	case errors.Is(err, queue.ErrQueuePaused):
		requests.RespondWithError(w, http.StatusConflict, constants.ErrorQueuePaused)
		return
	case errors.Is(err, queue.ErrQueueFull):
		requests.RespondWithError(w, http.StatusConflict, constants.ErrorQueueFull)
		return
	case err != nil:
		requests.RespondWithDBError(w, err)
		return
	}

	if err := c.Tasks.EnqueueAnalyticsRefresh(req.QueueID); err != nil {
		c.Logger.WithError(err).Warn("enqueue analytics refresh")
	}

	body, err := json.MarshalIndent(member, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

type LeaveQueueBody struct {
	QueueID string `json:"queueId"`
}

func (c *Controller) LeaveQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req LeaveQueueBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	err := db.Service().QueueStore.Leave(ctx, req.QueueID, userID)
	switch {
	case errors.Is(err, queue.ErrNotInQueue):
		requests.RespondWithError(w, http.StatusNotFound, constants.ErrorNotInQueue)
		return
	case err != nil:
		requests.RespondWithDBError(w, err)
		return
	}

	if err := c.Tasks.EnqueueAnalyticsRefresh(req.QueueID); err != nil {
		c.Logger.WithError(err).Warn("enqueue analytics refresh")
	}

	w.WriteHeader(http.StatusOK)
}

type UpdateMemberStatusBody struct {
	MemberID string `json:"memberId"`
	QueueID  string `json:"queueId"`
	Status   string `json:"status"`
}

func (c *Controller) UpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req UpdateMemberStatusBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MemberID == "" || req.QueueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	status := history.Status(req.Status)
	if status != history.StatusServed && status != history.StatusNoShow {
		requests.RespondBadRequest(w)
		return
	}

	err := db.Service().QueueStore.MarkStatus(ctx, req.MemberID, req.QueueID, userID, status)
	switch {
	case errors.Is(err, queue.ErrNotOwner):
		requests.RespondForbidden(w)
		return
	case err != nil:
		requests.RespondWithDBError(w, err)
		return
	}

	if err := c.Tasks.EnqueueAnalyticsRefresh(req.QueueID); err != nil {
		c.Logger.WithError(err).Warn("enqueue analytics refresh")
	}

	w.WriteHeader(http.StatusOK)
}

type PositionResponse struct {
	Position      *int    `json:"position"`
	EstimatedWait *int    `json:"estimatedWait"`
	ExpectedAt    *string `json:"expectedAt"`
}

func (c *Controller) GetPosition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}
	queueID := r.URL.Query().Get("queueId")
	if queueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	pos, err := db.Service().QueueStore.PositionOf(ctx, queueID, userID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	resp := PositionResponse{}
	if pos != nil {
		expected := pos.ExpectedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.Position = &pos.Rank
		resp.EstimatedWait = &pos.EstimatedWait
		resp.ExpectedAt = &expected
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

type MembersResponse struct {
	Members []queue.MemberWithPosition `json:"members"`
	Count   int                        `json:"count"`
}

func (c *Controller) GetMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := ctx.Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}
	queueID := r.URL.Query().Get("queueId")
	if queueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	members, err := db.Service().QueueStore.MembersOrdered(ctx, queueID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(MembersResponse{Members: members, Count: len(members)})
}

type QueueDetailResponse struct {
	queue.Queue
	LiveCount    int             `json:"live_count"`
	UserPosition *queue.Position `json:"user_position,omitempty"`
}

func (c *Controller) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queueID := mux.Vars(r)["id"]

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	q, err := db.Service().QueueStore.GetByID(ctx, queueID)
	if err == sql.ErrNoRows {
		requests.RespondNotFound(w)
		return
	}
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	live, err := db.Service().QueueStore.LiveCount(ctx, queueID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	resp := QueueDetailResponse{Queue: *q, LiveCount: live}

	pos, err := db.Service().QueueStore.PositionOf(ctx, queueID, userID)
	if err != nil {
		c.Logger.WithError(err).Warn("resolve user position")
	} else {
		resp.UserPosition = pos
	}

	body, err := json.MarshalIndent(resp, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}

type CheckJoinedResponse struct {
	Joined bool `json:"joined"`
}

func (c *Controller) CheckJoined(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}
	queueID := r.URL.Query().Get("queueId")
	if queueID == "" {
		requests.RespondBadRequest(w)
		return
	}

	joined, err := db.Service().QueueStore.IsJoined(ctx, queueID, userID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(CheckJoinedResponse{Joined: joined})
}

// GetAnalytics serves the cached report and computes a fresh one on a miss.
func (c *Controller) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queueID := mux.Vars(r)["id"]

	if _, ok := ctx.Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}

	report, err := c.Cache.Get(ctx, queueID)
	if err != nil {
		c.Logger.WithError(err).Warn("read analytics cache")
	}

	if report == nil {
		report, err = c.Reports.BuildReport(ctx, queueID)
		if errors.Is(err, sql.ErrNoRows) {
			requests.RespondNotFound(w)
			return
		}
		if err != nil {
			c.Logger.WithError(err).Error("compute analytics report")
			requests.RespondInternalError(w)
			return
		}
		if err := c.Cache.Set(ctx, queueID, *report); err != nil {
			c.Logger.WithError(err).Warn("write analytics cache")
		}
	}

	body, err := json.MarshalIndent(report, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}
