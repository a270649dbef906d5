package controller

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/constants"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/history"
	"github.com/bhavishkl/NoQue/requests"
	"github.com/bhavishkl/NoQue/user"
)

const maxAvatarBytes = 5 << 20

type CreateUserBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateUserResponse struct {
	User      user.User `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (c *Controller) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requests.RespondBadRequest(w)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		requests.RespondMissingFields(w)
		return
	}

	u, err := db.Service().UserStore.Insert(ctx, user.InsertUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			requests.RespondWithError(w, http.StatusConflict, constants.ErrorEmailInUse)
			return
		}
		c.Logger.WithError(err).Error("create user")
		requests.RespondInternalError(w)
		return
	}

	token, expiry, err := u.GetJWT()
	if err != nil {
		c.Logger.WithError(err).Error("generate jwt")
		requests.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(CreateUserResponse{
		User:      *u,
		Token:     token,
		ExpiresAt: expiry,
	})
}

func (c *Controller) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	u, err := db.Service().UserStore.GetByID(ctx, userID)
	if err == sql.ErrNoRows {
		requests.RespondAuthError(w)
		return
	}
	if err != nil {
		c.Logger.WithError(err).Error("get current user")
		requests.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(u)
}

type UpdateProfileBody struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (c *Controller) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	var req UpdateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requests.RespondBadRequest(w)
		return
	}
	if req.Name == "" {
		requests.RespondMissingFields(w)
		return
	}

	u, err := db.Service().UserStore.UpdateProfile(ctx, userID, req.Name, req.Bio)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(u)
}

type UpdateAvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

func (c *Controller) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		requests.RespondBadRequest(w)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		requests.RespondBadRequest(w)
		return
	}
	defer file.Close()

	url, err := c.Avatars.Upload(ctx, userID, file, header.Header.Get("Content-Type"))
	if err != nil {
		c.Logger.WithError(err).Error("upload avatar")
		requests.RespondInternalError(w)
		return
	}

	if err := db.Service().UserStore.UpdateAvatarURL(ctx, userID, url); err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(UpdateAvatarResponse{AvatarURL: url})
}

type RecentQueuesResponse struct {
	Entries []history.Entry `json:"entries"`
}

func (c *Controller) GetRecentQueues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	entries, err := db.Service().HistoryStore.RecentForUser(ctx, userID, 20)
	if err != nil {
		requests.RespondWithDBError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(RecentQueuesResponse{Entries: entries})
}

func (c *Controller) GetUserQueues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := ctx.Value(auth.UserContextKey).(string)
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	queues, err := db.Service().QueueStore.JoinedByUser(ctx, userID)
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
