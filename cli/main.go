package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/krancour/yuadmin/internal/signals"
	"github.com/krancour/yuadmin/internal/version"
	"github.com/urfave/cli/v2"
)

func main() {
	// glog registers its flags on the standard flag set; parse an empty
	// argument list so it stops complaining without stealing our flags.
	_ = flag.CommandLine.Parse([]string{})

	app := cli.NewApp()
	app.Name = "yuadmin"
	app.Usage = "Manage the YU companion app"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		accessoryCommand,
		loginCommand,
		logoutCommand,
		messageCommand,
		serveCommand,
		statsCommand,
		taskCommand,
		userCommand,
		whoamiCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		printError(err)
		os.Exit(1)
	}
	fmt.Println()
}
