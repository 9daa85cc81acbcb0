package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/VirgoSitesDev/rd-group-sub000/api/handlers"
	"github.com/VirgoSitesDev/rd-group-sub000/api/scheduler"
	"github.com/VirgoSitesDev/rd-group-sub000/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()
	if err := a.Initialize(); err != nil {
		zap.S().With(err).Fatal("failed to initialize app")
	}

	monitor := scheduler.NewFeedMonitor(a.Feed)
	monitor.Start()
	defer monitor.Stop()

	zap.S().Infow("listening", "port", a.Config.Port)
	if err := http.ListenAndServe(":"+a.Config.Port, a.Router); err != nil {
		zap.S().With(err).Fatal("server stopped")
	}
}
