package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) initRouter() {
	a.Router = mux.NewRouter()
	a.Router.Use(metricsMW)

	// health
	a.Router.HandleFunc("/health", a.Controller.Health).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/version", a.Controller.GetVersion).Methods("GET", "OPTIONS")
	a.Router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	a.Router.HandleFunc("/user", a.Controller.CreateUser).Methods("POST", "OPTIONS")
	a.Router.HandleFunc("/user", a.Controller.CurrentUser).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/user", a.Controller.UpdateProfile).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/user/avatar", a.Controller.UpdateAvatar).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/user/queues", a.Controller.GetUserQueues).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/user/recent-queues", a.Controller.GetRecentQueues).Methods("GET", "OPTIONS")

	a.Router.HandleFunc("/auth/token", a.Controller.GetToken).Methods("GET", "OPTIONS")

	a.Router.HandleFunc("/categories", a.Controller.GetCategories).Methods("GET", "OPTIONS")

	a.Router.HandleFunc("/queue", a.Controller.CreateQueue).Methods("POST", "OPTIONS")
	a.Router.HandleFunc("/queues", a.Controller.ListQueues).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queues-with-count", a.Controller.ListQueuesWithCount).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/uid/{uid}", a.Controller.GetQueueByUID).Methods("GET", "OPTIONS")

	// membership lifecycle
	a.Router.HandleFunc("/queue/join", a.Controller.JoinQueue).Methods("POST", "OPTIONS")
	a.Router.HandleFunc("/queue/leave", a.Controller.LeaveQueue).Methods("POST", "OPTIONS")
	a.Router.HandleFunc("/queue/update-member-status", a.Controller.UpdateMemberStatus).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/queue/position", a.Controller.GetPosition).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/members", a.Controller.GetMembers).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/check-joined", a.Controller.CheckJoined).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/analytics/{id}", a.Controller.GetAnalytics).Methods("GET", "OPTIONS")

	a.Router.HandleFunc("/queue/{id}", a.Controller.GetQueue).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}", a.Controller.UpdateQueue).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}", a.Controller.DeleteQueue).Methods("DELETE", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}/owner", a.Controller.GetQueueOwner).Methods("GET", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}/pause", a.Controller.PauseQueue).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}/resume", a.Controller.ResumeQueue).Methods("PUT", "OPTIONS")
	a.Router.HandleFunc("/queue/{id}/service-start-time", a.Controller.SetServiceStartTime).Methods("PUT", "OPTIONS")

	a.Router.HandleFunc("/reviews", a.Controller.CreateReview).Methods("POST", "OPTIONS")
	a.Router.HandleFunc("/reviews", a.Controller.ListReviews).Methods("GET", "OPTIONS")

	a.Router.HandleFunc("/payments/order", a.Controller.CreatePaymentOrder).Methods("POST", "OPTIONS")
}
