package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/bhavishkl/NoQue/analytics"
	"github.com/bhavishkl/NoQue/payment"
	"github.com/bhavishkl/NoQue/storage"
	"github.com/bhavishkl/NoQue/tasks"
)

type Controller struct {
	Logger   *logrus.Logger
	Tasks    *tasks.Client
	Reports  *tasks.Worker
	Cache    *analytics.ReportCache
	Payments *payment.Client
	Avatars  *storage.AvatarStore
}
