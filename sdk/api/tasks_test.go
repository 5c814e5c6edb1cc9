package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTasksClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/tasks", r.URL.Path)
				fmt.Fprintln(
					w,
					`{"success":true,"tasks":[{"_id":"t1","userId":"u1","title":"Arrumar o quarto","completed":true}]}`, // nolint: lll
				)
			},
		),
	)
	defer server.Close()
	client := NewTasksClient(server.URL, StaticToken(testAPIToken), false)
	tasks, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "u1", tasks[0].UserID)
	require.True(t, tasks[0].Completed)
	require.False(t, tasks[0].Verified)
}

func TestTasksClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(w, `{"success":true,"task":{"_id":"t2","userId":"u1","title":"Ler"}}`)
			},
		),
	)
	defer server.Close()
	client := NewTasksClient(server.URL, StaticToken(testAPIToken), false)
	task, err := client.Create(
		context.Background(),
		TaskForm{UserID: "u1", Title: "Ler"},
	)
	require.NoError(t, err)
	require.Equal(t, "t2", task.ID)
}

func TestTasksClientStats(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		assertions func(TaskStats, error)
	}{
		{
			name: "ok",
			body: `{"success":true,"totalTasks":7,"totalCompletedTasks":3}`,
			assertions: func(stats TaskStats, err error) {
				require.NoError(t, err)
				require.Equal(t, TaskStats{TotalTasks: 7, TotalCompletedTasks: 3}, stats)
			},
		},
		{
			name: "unsuccessful",
			body: `{"success":false}`,
			assertions: func(_ TaskStats, err error) {
				require.Error(t, err)
			},
		},
		{
			name: "missing counters",
			body: `{"totalTasks":7}`,
			assertions: func(_ TaskStats, err error) {
				require.Error(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						require.Equal(t, "/tasks/stats", r.URL.Path)
						fmt.Fprintln(w, testCase.body)
					},
				),
			)
			defer server.Close()
			client := NewTasksClient(server.URL, StaticToken(testAPIToken), false)
			testCase.assertions(client.Stats(context.Background()))
		})
	}
}
