package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var taskFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagUser,
		Aliases: []string{"u"},
		Usage:   "The ID of the user the task is assigned to",
	},
	&cli.StringFlag{
		Name:    flagTitle,
		Aliases: []string{"t"},
		Usage:   "The task's title",
	},
	&cli.StringFlag{
		Name:    flagDescription,
		Aliases: []string{"d"},
		Usage:   "The task's description",
	},
	&cli.BoolFlag{
		Name:  flagCompleted,
		Usage: "Whether the task has been completed",
	},
	&cli.BoolFlag{
		Name:  flagVerified,
		Usage: "Whether an adult confirmed the task was completed",
	},
}

var taskCommand = &cli.Command{
	Name:  "task",
	Usage: "Manage tasks",
	Subcommands: []*cli.Command{
		{
			Name:  "list",
			Usage: "Retrieve all tasks",
			Flags: []cli.Flag{
				cliFlagOutput,
			},
			Action: taskList,
		},
		{
			Name:   "create",
			Usage:  "Create a new task",
			Flags:  taskFlags,
			Action: taskCreate,
		},
		{
			Name:  "update",
			Usage: "Update a task; unspecified fields keep their value",
			Flags: append(
				[]cli.Flag{idFlag("Update the specified task")},
				taskFlags...,
			),
			Action: taskUpdate,
		},
		{
			Name:  "delete",
			Usage: "Delete a task",
			Flags: []cli.Flag{
				idFlag("Delete the specified task"),
				cliFlagYes,
			},
			Action: taskDelete,
		},
	},
}

func getTasksPage(c *cli.Context) (*pages.TasksPage, error) {
	client, err := getClient(c)
	if err != nil {
		return nil, errors.Wrap(err, "error getting yuadmin client")
	}
	return pages.NewTasksPage(
		client.Tasks(),
		client.Users(),
		client.Accessories(),
	), nil
}

func taskList(c *cli.Context) error {
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	page, err := getTasksPage(c)
	if err != nil {
		return err
	}
	if err = page.Load(c.Context); err != nil {
		return err
	}
	tasks := page.Tasks()

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	return printOutput(output, tasks, func(table *uitable.Table) {
		table.AddRow("ID", "OWNER", "TITLE", "COMPLETED?", "VERIFIED?")
		for _, task := range tasks {
			table.AddRow(
				task.ID,
				task.Owner,
				task.Title,
				task.Completed,
				task.Verified,
			)
		}
	})
}

func taskForm(c *cli.Context, form api.TaskForm) api.TaskForm {
	if c.IsSet(flagUser) {
		form.UserID = c.String(flagUser)
	}
	if c.IsSet(flagTitle) {
		form.Title = c.String(flagTitle)
	}
	if c.IsSet(flagDescription) {
		form.Description = c.String(flagDescription)
	}
	if c.IsSet(flagCompleted) {
		form.Completed = c.Bool(flagCompleted)
	}
	if c.IsSet(flagVerified) {
		form.Verified = c.Bool(flagVerified)
	}
	return form
}

func taskCreate(c *cli.Context) error {
	page, err := getTasksPage(c)
	if err != nil {
		return err
	}
	return printNotification(
		page.Save(c.Context, "", taskForm(c, api.TaskForm{})),
	)
}

func taskUpdate(c *cli.Context) error {
	id := c.String(flagID)

	page, err := getTasksPage(c)
	if err != nil {
		return err
	}
	if err = page.Load(c.Context); err != nil {
		return err
	}
	var current *api.Task
	for _, task := range page.Tasks() {
		if task.ID == id {
			t := task.Task
			current = &t
			break
		}
	}
	if current == nil {
		return errors.Errorf("task %q was not found", id)
	}

	return printNotification(
		page.Save(
			c.Context,
			id,
			taskForm(
				c,
				api.TaskForm{
					UserID:      current.UserID,
					Title:       current.Title,
					Description: current.Description,
					Completed:   current.Completed,
					Verified:    current.Verified,
				},
			),
		),
	)
}

func taskDelete(c *cli.Context) error {
	id := c.String(flagID)

	ok, err := confirmed(
		fmt.Sprintf("Are you sure you want to delete task %q?", id),
		c.Bool(flagYes),
	)
	if err != nil || !ok {
		return err
	}

	page, err := getTasksPage(c)
	if err != nil {
		return err
	}
	return printNotification(page.Delete(c.Context, id))
}
