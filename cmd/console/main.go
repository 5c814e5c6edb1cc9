package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/internal/console"
	"github.com/krancour/yuadmin/internal/signals"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/internal/version"
)

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()

	glog.Infof(
		"Starting yuadmin console -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	config, err := console.GetConfig()
	if err != nil {
		glog.Fatal(err)
	}
	if config.APIAddress == "" {
		glog.Fatal("YUADMIN_API_ADDRESS must be set")
	}

	sessions, err := tokenstore.NewSessionsFromEnvironment()
	if err != nil {
		glog.Fatal(err)
	}

	server, err := console.NewServer(config, sessions)
	if err != nil {
		glog.Fatal(err)
	}

	if err := server.ListenAndServe(signals.Context()); err != context.Canceled {
		glog.Fatal(err)
	}
}
