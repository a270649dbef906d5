package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bhavishkl/NoQue/analytics"
	"github.com/bhavishkl/NoQue/config"
	"github.com/bhavishkl/NoQue/controller"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/payment"
	"github.com/bhavishkl/NoQue/storage"
	"github.com/bhavishkl/NoQue/tasks"
)

type App struct {
	Router     *mux.Router
	Controller *controller.Controller
	Logger     *logrus.Logger
	Worker     *tasks.Worker
}

// Initialize wires the controller's dependencies. The database service must
// already be initialized.
func (a *App) Initialize(log *logrus.Logger) {
	a.Logger = log

	rdb := redis.NewClient(&redis.Options{Addr: config.GetRedisAddr()})
	cache := analytics.NewReportCache(rdb)

	svc := db.Service()
	a.Worker = tasks.NewWorker(svc.QueueStore, svc.HistoryStore, svc.ReviewStore, cache, log)

	keyID, keySecret := config.GetRazorpayKeys()
	accessKey, secretKey := config.GetAWSKeys()

	a.Controller = &controller.Controller{
		Logger:   log,
		Tasks:    tasks.NewClient(config.GetRedisAddr()),
		Reports:  a.Worker,
		Cache:    cache,
		Payments: payment.NewClient(keyID, keySecret),
		Avatars:  storage.NewAvatarStore(config.GetS3Bucket(), config.GetS3Region(), accessKey, secretKey),
	}
	a.initRouter()
}

func (a *App) Run(addr string) {
	a.Logger.Infof("serving on %s...", addr)
	a.Logger.Fatalf("server error: %s", http.ListenAndServe(addr, a.withMiddleware(a.Router)))
}
