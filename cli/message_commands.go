package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var messageCommand = &cli.Command{
	Name:    "message",
	Aliases: []string{"messages"},
	Usage:   "Manage the mascot's preset messages",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve all preset messages",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: messageList,
		},
		{
			Name:  "create",
			Usage: "Create a new preset message",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     flagMessage,
					Aliases:  []string{"m"},
					Usage:    "The text of the message (required)",
					Required: true,
				},
			},
			Action: messageCreate,
		},
		{
			Name:  "update",
			Usage: "Replace the text of a preset message",
			Flags: []cli.Flag{
				idFlag("Update the specified message"),
				&cli.StringFlag{
					Name:     flagMessage,
					Aliases:  []string{"m"},
					Usage:    "The new text of the message (required)",
					Required: true,
				},
			},
			Action: messageUpdate,
		},
		{
			Name:  "delete",
			Usage: "Delete a preset message",
			Flags: []cli.Flag{
				idFlag("Delete the specified message"),
				cliFlagYes,
			},
			Action: messageDelete,
		},
	},
}

func getPresetMessagesPage(c *cli.Context) (*pages.PresetMessagesPage, error) {
	client, err := getClient(c)
	if err != nil {
		return nil, errors.Wrap(err, "error getting yuadmin client")
	}
	return pages.NewPresetMessagesPage(client.PresetMessages()), nil
}

func messageList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	page, err := getPresetMessagesPage(c)
	if err != nil {
		return err
	}
	if err = page.Load(c.Context); err != nil {
		return err
	}
	messages := page.Messages()

	if len(messages) == 0 {
		fmt.Println("No preset messages found.")
		return nil
	}

	return printOutput(output, messages, func(table *uitable.Table) {
		table.AddRow("ID", "MESSAGE")
		for _, message := range messages {
			table.AddRow(message.ID, message.Message)
		}
	})
}

func messageCreate(c *cli.Context) error {
	page, err := getPresetMessagesPage(c)
	if err != nil {
		return err
	}
	return printNotification(
		page.Save(
			c.Context,
			"",
			api.PresetMessageForm{Message: c.String(flagMessage)},
		),
	)
}

func messageUpdate(c *cli.Context) error {
	page, err := getPresetMessagesPage(c)
	if err != nil {
		return err
	}
	return printNotification(
		page.Save(
			c.Context,
			c.String(flagID),
			api.PresetMessageForm{Message: c.String(flagMessage)},
		),
	)
}

func messageDelete(c *cli.Context) error {
	id := c.String(flagID)

	ok, err := confirmed(
		fmt.Sprintf("Are you sure you want to delete message %q?", id),
		c.Bool(flagYes),
	)
	if err != nil || !ok {
		return err
	}

	page, err := getPresetMessagesPage(c)
	if err != nil {
		return err
	}
	return printNotification(page.Delete(c.Context, id))
}
