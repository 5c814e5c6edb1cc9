package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var userFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagUsername,
		Aliases: []string{"u"},
		Usage:   "The user's handle",
	},
	&cli.StringFlag{
		Name:  flagCode,
		Usage: "The pairing code of the user's companion device",
	},
	&cli.StringFlag{
		Name:    flagEmail,
		Aliases: []string{"e"},
		Usage:   "The user's e-mail address",
	},
	&cli.IntFlag{
		Name:    flagPoints,
		Aliases: []string{"p"},
		Usage:   "The user's point balance",
	},
}

var userCommand = &cli.Command{
	Name:  "user",
	Usage: "Manage users",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve all users",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: userList,
		},
		{
			Name:   "create",
			Usage:  "Create a new user",
			Flags:  userFlags,
			Action: userCreate,
		},
		{
			Name:   "update",
			Usage:  "Update a user; unspecified fields keep their value",
			Flags:  append([]cli.Flag{idFlag("Update the specified user")}, userFlags...),
			Action: userUpdate,
		},
		{
			Name:  "delete",
			Usage: "Delete a user",
			Flags: []cli.Flag{
				idFlag("Delete the specified user"),
				cliFlagYes,
			},
			Action: userDelete,
		},
	},
}

func userList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	page := pages.NewUsersPage(client.Users(), client.Accessories())
	if err = page.Load(c.Context); err != nil {
		return err
	}
	users := page.Users()

	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	return printOutput(output, users, func(table *uitable.Table) {
		table.AddRow("ID", "USERNAME", "CODE", "EMAIL", "POINTS", "EQUIPPED")
		for _, user := range users {
			table.AddRow(
				user.ID,
				user.Username,
				user.Code,
				user.Email,
				user.Points,
				equippedSummary(user.Equipped),
			)
		}
	})
}

func equippedSummary(equipped map[string]api.Accessory) string {
	slots := make([]string, 0, len(equipped))
	for slot, accessory := range equipped {
		slots = append(slots, fmt.Sprintf("%s=%s", slot, accessory.Name))
	}
	sort.Strings(slots)
	return strings.Join(slots, ",")
}

func userForm(c *cli.Context, form api.UserForm) api.UserForm {
	if c.IsSet(flagUsername) {
		form.Username = c.String(flagUsername)
	}
	if c.IsSet(flagCode) {
		form.Code = c.String(flagCode)
	}
	if c.IsSet(flagEmail) {
		form.Email = c.String(flagEmail)
	}
	if c.IsSet(flagPoints) {
		form.Points = c.Int(flagPoints)
	}
	return form
}

func userCreate(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}
	return printNotification(
		pages.NewUsersPage(client.Users(), client.Accessories()).Save(
			c.Context,
			"",
			userForm(c, api.UserForm{}),
		),
	)
}

func userUpdate(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	user, err := client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}

	return printNotification(
		pages.NewUsersPage(client.Users(), client.Accessories()).Save(
			c.Context,
			id,
			userForm(
				c,
				api.UserForm{
					Username: user.Username,
					Code:     user.Code,
					Email:    user.Email,
					Points:   user.Points,
				},
			),
		),
	)
}

func userDelete(c *cli.Context) error {
	id := c.String(flagID)

	ok, err := confirmed(
		fmt.Sprintf("Are you sure you want to delete user %q?", id),
		c.Bool(flagYes),
	)
	if err != nil || !ok {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	return printNotification(
		pages.NewUsersPage(client.Users(), client.Accessories()).Delete(
			c.Context,
			id,
		),
	)
}
