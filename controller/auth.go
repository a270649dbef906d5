package controller

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/requests"
	"github.com/bhavishkl/NoQue/user"
)

type TokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

func (c *Controller) GetToken(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		requests.RespondAuthError(w)
		return
	}

	u, err := db.Service().UserStore.Authenticate(r.Context(), email, password)
	if err != nil && err != sql.ErrNoRows {
		c.Logger.WithError(err).Error("authenticate")
		requests.RespondInternalError(w)
		return
	}
	if u == nil || err == sql.ErrNoRows {
		requests.RespondAuthError(w)
		return
	}

	token, expiry, err := u.GetJWT()
	if err != nil {
		c.Logger.WithError(err).Error("generate jwt")
		requests.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TokenResponse{
		Token:     token,
		ExpiresAt: expiry,
		User:      u,
	})
}
