package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/bhavishkl/NoQue/auth"
)

func testController() *Controller {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Controller{Logger: log}
}

func authed(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserContextKey, "2a78ae1c-23ec-47fc-8df4-c184bbd4a8a7")
	return r.WithContext(ctx)
}

func TestJoinQueueRequiresAuth(t *testing.T) {
	c := testController()

	r := httptest.NewRequest("POST", "/queue/join", strings.NewReader(`{"queueId":"abc"}`))
	w := httptest.NewRecorder()
	c.JoinQueue(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJoinQueueRejectsBadBody(t *testing.T) {
	c := testController()

	for _, body := range []string{"", "{", `{"queueId":""}`} {
		r := authed(httptest.NewRequest("POST", "/queue/join", strings.NewReader(body)))
		w := httptest.NewRecorder()
		c.JoinQueue(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestLeaveQueueRejectsBadBody(t *testing.T) {
	c := testController()

	r := authed(httptest.NewRequest("POST", "/queue/leave", strings.NewReader(`{}`)))
	w := httptest.NewRecorder()
	c.LeaveQueue(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMemberStatusRejectsUnknownStatus(t *testing.T) {
	c := testController()

	body := `{"memberId":"m1","queueId":"q1","status":"vanished"}`
	r := authed(httptest.NewRequest("PUT", "/queue/update-member-status", strings.NewReader(body)))
	w := httptest.NewRecorder()
	c.UpdateMemberStatus(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPositionRequiresQueueID(t *testing.T) {
	c := testController()

	r := authed(httptest.NewRequest("GET", "/queue/position", nil))
	w := httptest.NewRecorder()
	c.GetPosition(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMembersRequiresQueueID(t *testing.T) {
	c := testController()

	r := authed(httptest.NewRequest("GET", "/queue/members", nil))
	w := httptest.NewRecorder()
	c.GetMembers(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadEndpointsRequireAuth(t *testing.T) {
	c := testController()

	handlers := map[string]http.HandlerFunc{
		"members":          c.GetMembers,
		"analytics":        c.GetAnalytics,
		"queue detail":     c.GetQueue,
		"queue list":       c.ListQueues,
		"queue list count": c.ListQueuesWithCount,
		"uid lookup":       c.GetQueueByUID,
		"reviews":          c.ListReviews,
		"categories":       c.GetCategories,
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/q?queueId=abc", nil)
			w := httptest.NewRecorder()
			handler(w, r)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestCreateQueueValidation(t *testing.T) {
	c := testController()

	t.Run("requires auth", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/queue", strings.NewReader(`{"name":"x"}`))
		w := httptest.NewRecorder()
		c.CreateQueue(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires name and service time", func(t *testing.T) {
		body := `{"name":"","estimatedServiceTime":0}`
		r := authed(httptest.NewRequest("POST", "/queue", strings.NewReader(body)))
		w := httptest.NewRecorder()
		c.CreateQueue(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProfileValidation(t *testing.T) {
	c := testController()

	t.Run("requires auth", func(t *testing.T) {
		r := httptest.NewRequest("PUT", "/user", strings.NewReader(`{"name":"Asha"}`))
		w := httptest.NewRecorder()
		c.UpdateProfile(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires name", func(t *testing.T) {
		r := authed(httptest.NewRequest("PUT", "/user", strings.NewReader(`{"name":"","bio":"hi"}`)))
		w := httptest.NewRecorder()
		c.UpdateProfile(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects bad body", func(t *testing.T) {
		r := authed(httptest.NewRequest("PUT", "/user", strings.NewReader(`{`)))
		w := httptest.NewRecorder()
		c.UpdateProfile(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateReviewRejectsBadBody(t *testing.T) {
	c := testController()

	r := authed(httptest.NewRequest("POST", "/reviews", strings.NewReader(`{"rating":5}`)))
	w := httptest.NewRecorder()
	c.CreateReview(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	c := testController()

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	c.Health(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetTokenRequiresBasicAuth(t *testing.T) {
	c := testController()

	r := httptest.NewRequest("GET", "/auth/token", nil)
	w := httptest.NewRecorder()
	c.GetToken(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
