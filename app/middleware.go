package app

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/bhavishkl/NoQue/auth"
	"github.com/bhavishkl/NoQue/monitoring"
	"github.com/bhavishkl/NoQue/requests"
	"github.com/bhavishkl/NoQue/user"
)

type middleware func(next http.Handler) http.Handler

func (a *App) withMiddleware(handler http.Handler) http.Handler {
	allMiddleware := []middleware{
		authMW,
		contentMW,
		timeoutMW,
		a.logMW,
		corsMW,
	}

	for _, mw := range allMiddleware {
		handler = mw(handler)
	}

	return handler
}

func authMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqToken := r.Header.Get("Authorization")
		splitToken := strings.Split(reqToken, "Bearer ")
		if len(splitToken) < 2 {
			next.ServeHTTP(w, r)
			return
		}
		reqToken = splitToken[1]

		id, err := user.GetTokenID(reqToken)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(requests.ErrorResponse{Error: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), auth.UserContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func contentMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
		} else {
			w.Header().Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		}
	})
}

func corsMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, *")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

func (a *App) logMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" && r.URL.Path != "/metrics" {
			a.Logger.WithField("remote", r.RemoteAddr).
				Debugf("%s - %s", r.Method, r.URL.Path)
		}

		next.ServeHTTP(w, r)
	})
}

// metricsMW runs on the router (after route matching) so it can label the
// histogram with the route template instead of the raw path, keeping queue
// ids out of the label set.
func metricsMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		monitoring.ObserveRequest(r.Method, routeTemplate(r), time.Since(start))
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

func timeoutMW(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second*30)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
