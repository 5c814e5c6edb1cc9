package main

import "github.com/urfave/cli/v2"

const (
	flagBrowse      = "browse"
	flagCode        = "code"
	flagCompleted   = "completed"
	flagDescription = "description"
	flagEmail       = "email"
	flagID          = "id"
	flagInsecure    = "insecure"
	flagMessage     = "message"
	flagName        = "name"
	flagOutput      = "output"
	flagPoints      = "points"
	flagServer      = "server"
	flagSrc         = "src"
	flagTitle       = "title"
	flagToken       = "token"
	flagType        = "type"
	flagUser        = "user"
	flagUsername    = "username"
	flagValue       = "value"
	flagVerified    = "verified"
	flagYes         = "yes"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}

	cliFlagYes = &cli.BoolFlag{
		Name:    flagYes,
		Aliases: []string{"y"},
		Usage:   "Non-interactively confirm the deletion",
	}
)

// idFlag returns the required --id flag for the given usage.
func idFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:     flagID,
		Aliases:  []string{"i"},
		Usage:    usage + " (required)",
		Required: true,
	}
}
