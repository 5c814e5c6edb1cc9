package main

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var accessoryFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagName,
		Aliases: []string{"n"},
		Usage:   "The accessory's name",
	},
	&cli.StringFlag{
		Name:    flagType,
		Aliases: []string{"t"},
		Usage: "The slot the accessory occupies; one of " +
			strings.Join(api.AccessoryTypes, ", "),
	},
	&cli.IntFlag{
		Name:    flagValue,
		Aliases: []string{"v"},
		Usage:   "The accessory's price, in points",
	},
	&cli.StringFlag{
		Name:  flagSrc,
		Usage: "The URL of the accessory's image",
	},
}

var accessoryCommand = &cli.Command{
	Name:  "accessory",
	Usage: "Manage accessories",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve accessories",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagType,
					Aliases: []string{"t"},
					Usage: "Only retrieve accessories of the specified type; one of " +
						pages.AllTypes + ", " + strings.Join(api.AccessoryTypes, ", "),
					Value: pages.AllTypes,
				},
				cliFlagOutput,
			},
			Action: accessoryList,
		},
		{
			Name:   "create",
			Usage:  "Create a new accessory",
			Flags:  accessoryFlags,
			Action: accessoryCreate,
		},
		{
			Name:  "update",
			Usage: "Update an accessory; unspecified fields keep their value",
			Flags: append(
				[]cli.Flag{idFlag("Update the specified accessory")},
				accessoryFlags...,
			),
			Action: accessoryUpdate,
		},
		{
			Name:  "delete",
			Usage: "Delete an accessory",
			Flags: []cli.Flag{
				idFlag("Delete the specified accessory"),
				cliFlagYes,
			},
			Action: accessoryDelete,
		},
	},
}

func accessoryList(c *cli.Context) error {
	filterType := c.String(flagType)
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	page := pages.NewAccessoriesPage(client.Accessories())
	if err = page.Load(c.Context); err != nil {
		return err
	}
	accessories := page.Accessories(filterType)

	if len(accessories) == 0 {
		fmt.Println("No accessories found.")
		return nil
	}

	return printOutput(output, accessories, func(table *uitable.Table) {
		table.AddRow("ID", "NAME", "TYPE", "VALUE", "SRC")
		for _, accessory := range accessories {
			table.AddRow(
				accessory.ID,
				accessory.Name,
				accessory.Type,
				accessory.Value,
				accessory.Src,
			)
		}
	})
}

func accessoryForm(c *cli.Context, form api.AccessoryForm) api.AccessoryForm {
	if c.IsSet(flagName) {
		form.Name = c.String(flagName)
	}
	if c.IsSet(flagType) {
		form.Type = c.String(flagType)
	}
	if c.IsSet(flagValue) {
		value := c.Int(flagValue)
		form.Value = &value
	}
	if c.IsSet(flagSrc) {
		form.Src = c.String(flagSrc)
	}
	return form
}

func accessoryCreate(c *cli.Context) error {
	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}
	return printNotification(
		pages.NewAccessoriesPage(client.Accessories()).Save(
			c.Context,
			"",
			accessoryForm(c, api.AccessoryForm{}),
		),
	)
}

func accessoryUpdate(c *cli.Context) error {
	id := c.String(flagID)

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	page := pages.NewAccessoriesPage(client.Accessories())
	if err = page.Load(c.Context); err != nil {
		return err
	}
	var current *api.Accessory
	for _, accessory := range page.Accessories(pages.AllTypes) {
		if accessory.ID == id {
			accessory := accessory
			current = &accessory
			break
		}
	}
	if current == nil {
		return errors.Errorf("accessory %q was not found", id)
	}

	return printNotification(
		page.Save(
			c.Context,
			id,
			accessoryForm(
				c,
				api.AccessoryForm{
					Name:  current.Name,
					Type:  current.Type,
					Value: &current.Value,
					Src:   current.Src,
				},
			),
		),
	)
}

func accessoryDelete(c *cli.Context) error {
	id := c.String(flagID)

	ok, err := confirmed(
		fmt.Sprintf("Are you sure you want to delete accessory %q?", id),
		c.Bool(flagYes),
	)
	if err != nil || !ok {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting yuadmin client")
	}

	page := pages.NewAccessoriesPage(client.Accessories())
	// Only needed for the accessory's name in the notification
	_ = page.Load(c.Context)
	return printNotification(page.Delete(c.Context, id))
}
