package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Task is a chore or challenge assigned to a User in the companion app.
type Task struct {
	ID          string `json:"_id,omitempty"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	// Verified indicates an adult confirmed the Task was really completed.
	Verified bool `json:"verified"`
}

// TaskForm holds the editable fields of a Task.
type TaskForm struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Verified    bool   `json:"verified"`
}

// TaskStats are aggregate counters about Tasks.
type TaskStats struct {
	TotalTasks          int `json:"totalTasks"`
	TotalCompletedTasks int `json:"totalCompletedTasks"`
}

// TasksClient is the specialized client for managing Tasks with the YU API.
type TasksClient interface {
	List(context.Context) ([]Task, error)
	Create(context.Context, TaskForm) (Task, error)
	Update(context.Context, string, TaskForm) (Task, error)
	Delete(context.Context, string) error
	Stats(context.Context) (TaskStats, error)
}

type tasksClient struct {
	*baseClient
}

// NewTasksClient returns a specialized client for managing Tasks.
func NewTasksClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) TasksClient {
	return &tasksClient{
		baseClient: newBaseClient(apiAddress, tokens, allowInsecure),
	}
}

func (t *tasksClient) List(ctx context.Context) ([]Task, error) {
	tasks := []Task{}
	return tasks, t.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "tasks",
			successCodes: []int{http.StatusOK},
			decode:       listDecoder("tasks", &tasks),
		},
	)
}

func (t *tasksClient) Create(ctx context.Context, form TaskForm) (Task, error) {
	task := Task{}
	return task, t.executeRequest(
		ctx,
		outboundRequest{
			method:     http.MethodPost,
			path:       "tasks",
			reqBodyObj: form,
			decode:     itemDecoder("task", &task),
		},
	)
}

func (t *tasksClient) Update(
	ctx context.Context,
	id string,
	form TaskForm,
) (Task, error) {
	task := Task{}
	return task, t.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("tasks/%s", id),
			reqBodyObj:   form,
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("task", &task),
		},
	)
}

func (t *tasksClient) Delete(ctx context.Context, id string) error {
	return t.executeRequest(
		ctx,
		outboundRequest{
			method: http.MethodDelete,
			path:   fmt.Sprintf("tasks/%s", id),
		},
	)
}

func (t *tasksClient) Stats(ctx context.Context) (TaskStats, error) {
	stats := struct {
		Success             *bool `json:"success"`
		TotalTasks          *int  `json:"totalTasks"`
		TotalCompletedTasks *int  `json:"totalCompletedTasks"`
	}{}
	if err := t.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "tasks/stats",
			successCodes: []int{http.StatusOK},
			decode:       objectDecoder(&stats),
		},
	); err != nil {
		return TaskStats{}, err
	}
	if stats.Success != nil && !*stats.Success {
		return TaskStats{}, errors.New("backend reported task stats failure")
	}
	if stats.TotalTasks == nil || stats.TotalCompletedTasks == nil {
		return TaskStats{}, errors.New("unexpected task stats response format")
	}
	return TaskStats{
		TotalTasks:          *stats.TotalTasks,
		TotalCompletedTasks: *stats.TotalCompletedTasks,
	}, nil
}
