package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/session"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var loginCommand = &cli.Command{
	Name:  "login",
	Usage: "Log in to the YU backend",
	Description: "With --token, validates the token against the backend and " +
		"remembers it. Without it, points you at the external login service " +
		"when one is configured (YUADMIN_LOGIN_TARGET=external).",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     flagServer,
			Aliases:  []string{"s"},
			Usage:    "Log into the API server at the specified address (required)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    flagToken,
			Aliases: []string{"t"},
			Usage:   "Log in with the specified bearer token",
		},
		&cli.BoolFlag{
			Name:    flagBrowse,
			Aliases: []string{"b"},
			Usage: "Use the system's default web browser to open the external " +
				"login service; not applicable when --token is used",
		},
	},
	Action: login,
}

var logoutCommand = &cli.Command{
	Name:   "logout",
	Usage:  "Log out of the YU backend",
	Action: logout,
}

var whoamiCommand = &cli.Command{
	Name:  "whoami",
	Usage: "Show who you are logged in as",
	Flags: []cli.Flag{
		cliFlagOutput,
	},
	Action: whoami,
}

func login(c *cli.Context) error {
	address := c.String(flagServer)
	token := c.String(flagToken)
	browseToLoginURL := c.Bool(flagBrowse)

	if err := saveConfig(&config{APIAddress: address}); err != nil {
		return errors.Wrap(err, "error persisting configuration")
	}

	bootstrapper, _, err := getBootstrapper(c, address)
	if err != nil {
		return err
	}

	if token != "" {
		res := bootstrapper.BootstrapToken(c.Context, token)
		if res.State != session.StateAuthenticated {
			return errors.New("the backend rejected that token")
		}
		fmt.Printf("You are logged in as %s.\n", res.User.DisplayName())
		return nil
	}

	res := bootstrapper.BootstrapToken(c.Context, "")
	if res.State == session.StateAuthenticated {
		fmt.Printf("You are already logged in as %s.\n", res.User.DisplayName())
		return nil
	}
	if res.State != session.StateExternalLoginRequired {
		return errors.New(
			"a token is required; use --token or configure an external login " +
				"service",
		)
	}

	loginURL := res.Redirect
	if browseToLoginURL {
		var err error
		switch runtime.GOOS {
		case "linux":
			err = exec.Command("xdg-open", loginURL).Start()
		case "windows":
			err = exec.Command(
				"rundll32",
				"url.dll,FileProtocolHandler",
				loginURL,
			).Start()
		case "darwin":
			err = exec.Command("open", loginURL).Start()
		default:
			err = errors.New("unsupported OS")
		}
		if err != nil {
			return errors.Wrapf(
				err,
				"Error opening the login URL using the system's default web "+
					"browser.\n\nPlease visit  %s  to log in.\n",
				loginURL,
			)
		}
		return nil
	}

	fmt.Printf(
		"Please visit  %s  to log in, then run `yuadmin login --server %s "+
			"--token <token>`.\n",
		loginURL,
		address,
	)
	return nil
}

func logout(c *cli.Context) error {
	config, err := getConfig()
	if err != nil {
		return err
	}
	_, store, err := getBootstrapper(c, config.APIAddress)
	if err != nil {
		return err
	}
	if err := store.Clear(c.Context); err != nil {
		return errors.Wrap(err, "error clearing session")
	}
	if err := deleteConfig(); err != nil {
		return err
	}
	fmt.Println("You have been logged out.")
	return nil
}

func whoami(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	config, err := getConfig()
	if err != nil {
		return err
	}
	bootstrapper, _, err := getBootstrapper(c, config.APIAddress)
	if err != nil {
		return err
	}
	res := bootstrapper.BootstrapToken(c.Context, "")
	if res.State != session.StateAuthenticated {
		return errors.New(
			"you are not logged in; please use `yuadmin login` to continue",
		)
	}
	user := res.User

	return printOutput(output, user, func(table *uitable.Table) {
		table.AddRow("ID", "USERNAME", "NAME", "EMAIL")
		table.AddRow(user.ID, user.Username, user.Name, user.Email)
	})
}
