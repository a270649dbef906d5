package controller

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/queue"
	"github.com/bhavishkl/NoQue/requests"
)

type CreateQueueBody struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Location             string `json:"location"`
	Category             string `json:"category"`
	EstimatedServiceTime int    `json:"estimatedServiceTime"`
	MaxCapacity          int    `json:"maxCapacity"`
}

func (c *Controller) CreateQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req CreateQueueBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requests.RespondBadRequest(w)
		return
	}
	if req.Name == "" || req.EstimatedServiceTime <= 0 {
		requests.RespondMissingFields(w)
		return
	}

	q, err := db.Service().QueueStore.Insert(ctx, queue.InsertQueueParams{
		OwnerID:              userID,
		Name:                 req.Name,
		Description:          req.Description,
		Location:             req.Location,
		Category:             req.Category,
		EstimatedServiceTime: req.EstimatedServiceTime,
		MaxCapacity:          req.MaxCapacity,
	})
	if err != nil {
		c.Logger.WithError(err).Error("insert queue")
		requests.RespondInternalError(w)
		return
	}

	body, err := json.MarshalIndent(q, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(body)
}

// requireOwner resolves the queue's owner and checks it against the caller.
// It writes the error response itself and reports success via the bool.
func (c *Controller) requireOwner(w http.ResponseWriter, r *http.Request, queueID string) (string, bool) {
	userID, ok := r.Context().Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return "", false
	}

	ownerID, err := db.Service().QueueStore.OwnerOf(r.Context(), queueID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return "", false
	}
	if ownerID != userID {
		requests.RespondForbidden(w)
		return "", false
	}
	return userID, true
}

func (c *Controller) UpdateQueue(w http.ResponseWriter, r *http.Request) {
	queueID := mux.Vars(r)["id"]
	if _, ok := c.requireOwner(w, r, queueID); !ok {
		return
	}

	var req CreateQueueBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requests.RespondBadRequest(w)
		return
	}
	if req.Name == "" || req.EstimatedServiceTime <= 0 {
		requests.RespondMissingFields(w)
		return
	}

	err := db.Service().QueueStore.Update(r.Context(), queueID, queue.UpdateQueueParams{
		Name:                 req.Name,
		Description:          req.Description,
		Location:             req.Location,
		Category:             req.Category,
		EstimatedServiceTime: req.EstimatedServiceTime,
		MaxCapacity:          req.MaxCapacity,
	})
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (c *Controller) DeleteQueue(w http.ResponseWriter, r *http.Request) {
	queueID := mux.Vars(r)["id"]
	if _, ok := c.requireOwner(w, r, queueID); !ok {
		return
	}

	if err := db.Service().QueueStore.Delete(r.Context(), queueID); err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	if err := c.Cache.Invalidate(r.Context(), queueID); err != nil {
		c.Logger.WithError(err).Warn("invalidate analytics cache")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) PauseQueue(w http.ResponseWriter, r *http.Request) {
	c.setPaused(w, r, true)
}

func (c *Controller) ResumeQueue(w http.ResponseWriter, r *http.Request) {
	c.setPaused(w, r, false)
}

func (c *Controller) setPaused(w http.ResponseWriter, r *http.Request, paused bool) {
	queueID := mux.Vars(r)["id"]
	if _, ok := c.requireOwner(w, r, queueID); !ok {
		return
	}

	if err := db.Service().QueueStore.SetPaused(r.Context(), queueID, paused); err != nil {
		requests.RespondWithDBError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type SetServiceStartTimeBody struct {
	ServiceStartTime string `json:"serviceStartTime"`
}

func (c *Controller) SetServiceStartTime(w http.ResponseWriter, r *http.Request) {
	queueID := mux.Vars(r)["id"]
	if _, ok := c.requireOwner(w, r, queueID); !ok {
		return
	}

	var req SetServiceStartTimeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ServiceStartTime == "" {
		requests.RespondBadRequest(w)
		return
	}

	err := db.Service().QueueStore.SetServiceStartTime(r.Context(), queueID, req.ServiceStartTime)
	if err != nil {
		requests.RespondBadRequest(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type QueueOwnerResponse struct {
	IsOwner bool `json:"isOwner"`
}

func (c *Controller) GetQueueOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queueID := mux.Vars(r)["id"]

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	ownerID, err := db.Service().QueueStore.OwnerOf(ctx, queueID)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(QueueOwnerResponse{IsOwner: ownerID == userID})
}

type QueueIDResponse struct {
	ID string `json:"id"`
}

func (c *Controller) GetQueueByUID(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}
	uid := mux.Vars(r)["uid"]

	id, err := db.Service().QueueStore.GetIDByUID(r.Context(), uid)
	if err == sql.ErrNoRows {
		requests.RespondNotFound(w)
		return
	}
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(QueueIDResponse{ID: id})
}

func (c *Controller) ListQueues(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}

	queues, err := db.Service().QueueStore.All(r.Context())
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	body, err := json.MarshalIndent(queues, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}

func (c *Controller) ListQueuesWithCount(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}

	queues, err := db.Service().QueueStore.AllWithLiveCounts(r.Context())
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	body, err := json.MarshalIndent(queues, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}

func (c *Controller) GetCategories(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserContextKey).(string); !ok {
		requests.RespondAuthError(w)
		return
	}

	categories, err := db.Service().QueueStore.Categories(r.Context())
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	body, err := json.MarshalIndent(categories, "", " ")
	if err != nil {
		requests.RespondInternalError(w)
		return
	}
	w.Write(body)
}
