package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/bhavishkl/NoQue/config"
	"github.com/bhavishkl/NoQue/history"
	"github.com/bhavishkl/NoQue/queue"
	"github.com/bhavishkl/NoQue/review"
	"github.com/bhavishkl/NoQue/user"
)

var (
	dbService *DBService
)

type DBService struct {
	DB           *sqlx.DB
	QueueStore   *queue.Store
	UserStore    *user.Store
	HistoryStore *history.Store
	ReviewStore  *review.Store
}

func Service() *DBService {
	if dbService == nil {
		dbService = &DBService{}
	}
	return dbService
}

func (d *DBService) Initialize(log *logrus.Logger) error {
	dbConn, err := sqlx.Open("pgx", config.GetDBString())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	d.DB = dbConn
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err = dbConn.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to db: %w", err)
	}

	if err = Migrate(dbConn.DB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	d.initStores(log)
	return nil
}

func (d *DBService) initStores(log *logrus.Logger) {
	d.QueueStore = queue.NewStore(d.DB, log)
	d.UserStore = user.NewStore(d.DB)
	d.HistoryStore = history.NewStore(d.DB)
	d.ReviewStore = review.NewStore(d.DB)
}
