package main

import (
	"context"

	"github.com/golang/glog"
	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/console"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/internal/tokenstore"
	"github.com/krancour/yuadmin/internal/version"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var statsCommand = &cli.Command{
	Name:  "stats",
	Usage: "Show the dashboard counters",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: stats,
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Run the web console",
	Description: "Serves the web console for the API server saved by " +
		"`yuadmin login`, unless YUADMIN_API_ADDRESS says otherwise. The " +
		"remaining settings come from YUADMIN_* environment variables.",
	Action: serve,
}

func stats(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	dashboard := pages.LoadDashboard(c.Context, client)

	return printOutput(output, dashboard, func(table *uitable.Table) {
		table.AddRow("USERS", "ACCESSORIES", "TASKS", "COMPLETED TASKS")
		table.AddRow(
			dashboard.TotalUsers,
			dashboard.TotalAccessories,
			dashboard.TotalTasks,
			dashboard.TotalCompletedTasks,
		)
	})
}

func serve(c *cli.Context) error {
	consoleConfig, err := console.GetConfig()
	if err != nil {
		return err
	}
	if consoleConfig.APIAddress == "" {
		config, err := getConfig()
		if err != nil {
			return err
		}
		consoleConfig.APIAddress = config.APIAddress
	}
	if c.Bool(flagInsecure) {
		consoleConfig.APIIgnoreCertWarnings = true
	}

	sessions, err := tokenstore.NewSessionsFromEnvironment()
	if err != nil {
		return err
	}

	glog.Infof(
		"Starting yuadmin console -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	server, err := console.NewServer(consoleConfig, sessions)
	if err != nil {
		return err
	}
	if err = server.ListenAndServe(c.Context); err != context.Canceled {
		return err
	}
	return nil
}
