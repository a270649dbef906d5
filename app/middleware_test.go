package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestRouteTemplate(t *testing.T) {
	t.Run("collapses path variables", func(t *testing.T) {
		var got string
		router := mux.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = routeTemplate(r)
				next.ServeHTTP(w, r)
			})
		})
		router.HandleFunc("/queue/{id}", func(w http.ResponseWriter, r *http.Request) {})

		r := httptest.NewRequest("GET", "/queue/2a78ae1c-23ec-47fc-8df4-c184bbd4a8a7", nil)
		router.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, "/queue/{id}", got)
	})

	t.Run("falls back to the raw path off the router", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/health", nil)
		assert.Equal(t, "/health", routeTemplate(r))
	})
}
