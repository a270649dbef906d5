package main

import (
	"context"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bhavishkl/NoQue/app"
	"github.com/bhavishkl/NoQue/config"
	"github.com/bhavishkl/NoQue/db"
	"github.com/bhavishkl/NoQue/logger"
	"github.com/bhavishkl/NoQue/version"
)

func main() {
	v := version.Get()
	bytes, err := yaml.Marshal(v)
	if err != nil {
		log.Panicf("marshal version data: %s", err)
	}
	log.Println("version:\n" + string(bytes))

	logg := logger.New(config.GetLogLevel())

	err = db.Service().Initialize(logg)
	if err != nil {
		logg.Fatalf("initialize database: %s", err)
	}

	a := app.App{}
	a.Initialize(logg)

	addr := "0.0.0.0:8080"
	runWorker := true

	for _, arg := range os.Args {
		if arg == "--no-worker" {
			runWorker = false
			continue
		}

		if specifiedAddr, ok := strings.CutPrefix(arg, "--addr="); ok {
			addr = specifiedAddr
		}
	}

	if runWorker {
		go func() {
			if err := a.Worker.Run(context.Background(), config.GetRedisAddr()); err != nil {
				logg.Errorf("task worker: %s", err)
			}
		}()
	}

	a.Run(addr)
}
