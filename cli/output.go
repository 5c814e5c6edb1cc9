package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/ssh/terminal"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case "table":
	case "yaml":
	case "json":
	default:
		return errors.Errorf("unknown output format %q", outputFormat)
	}
	return nil
}

// printOutput prints obj in the requested format. addRows fills a table
// when the format is "table".
func printOutput(
	outputFormat string,
	obj interface{},
	addRows func(*uitable.Table),
) error {
	switch strings.ToLower(outputFormat) {
	case "table":
		table := uitable.New()
		addRows(table)
		fmt.Println(table)
	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Println(string(yamlBytes))
	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Println(string(prettyJSON))
	}
	return nil
}

// printNotification prints a page Notification in its severity's color. An
// error Notification makes the command exit non-zero.
func printNotification(notification pages.Notification, err error) error {
	if notification.IsError() || err != nil {
		color.Red(notification.Message)
		return cli.Exit("", 1)
	}
	color.Green(notification.Message)
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "\n%s\n\n", color.RedString(err.Error()))
}

// confirmed asks the operator to confirm a destructive action. Without a
// terminal to ask on, only --yes confirms.
func confirmed(message string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New(
			"refusing to delete without confirmation; use --yes when not " +
				"attached to a terminal",
		)
	}
	var confirmed bool
	if err := survey.AskOne(
		&survey.Confirm{
			Message: message,
		},
		&confirmed,
	); err != nil {
		return false, errors.Wrap(
			err,
			"error confirming if user wishes to continue",
		)
	}
	return confirmed, nil
}
