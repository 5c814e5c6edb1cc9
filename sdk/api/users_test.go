package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const testUserID = "64b7f0c2e1"

func TestNewUsersClient(t *testing.T) {
	client := NewUsersClient(
		testAPIAddress,
		StaticToken(testAPIToken),
		testClientAllowInsecure,
	)
	require.IsType(t, &usersClient{}, client)
	requireBaseClient(t, client.(*usersClient).baseClient)
}

func TestUsersClientMe(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/users/me", r.URL.Path)
				require.Equal(
					t,
					fmt.Sprintf("Bearer %s", testAPIToken),
					r.Header.Get("Authorization"),
				)
				fmt.Fprintf(w, `{"_id":%q,"name":"Ana"}`, testUserID)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
	require.Equal(t, "Ana", user.Name)
	require.Equal(t, "Ana", user.DisplayName())
}

func TestUsersClientList(t *testing.T) {
	for name, body := range map[string]string{
		"bare":    `[{"_id":"1","username":"ana"},{"_id":"2","email":"r@x"}]`,
		"wrapped": `{"users":[{"_id":"1","username":"ana"},{"_id":"2","email":"r@x"}]}`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(
				http.HandlerFunc(
					func(w http.ResponseWriter, r *http.Request) {
						require.Equal(t, http.MethodGet, r.Method)
						require.Equal(t, "/users", r.URL.Path)
						fmt.Fprintln(w, body)
					},
				),
			)
			defer server.Close()
			client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
			users, err := client.List(context.Background())
			require.NoError(t, err)
			require.Len(t, users, 2)
			require.Equal(t, "ana", users[0].DisplayName())
			require.Equal(t, "r@x", users[1].DisplayName())
		})
	}
}

func TestUsersClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/users", r.URL.Path)
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				form := UserForm{}
				require.NoError(t, json.Unmarshal(bodyBytes, &form))
				require.Equal(t, "ana", form.Username)
				require.Equal(t, 10, form.Points)
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintf(w, `{"_id":%q,"username":"ana","points":10}`, testUserID)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
	user, err := client.Create(
		context.Background(),
		UserForm{Username: "ana", Points: 10},
	)
	require.NoError(t, err)
	require.Equal(t, testUserID, user.ID)
}

func TestUsersClientUpdate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPut, r.Method)
				require.Equal(t, fmt.Sprintf("/users/%s", testUserID), r.URL.Path)
				fmt.Fprintf(w, `{"user":{"_id":%q,"username":"ana2"}}`, testUserID)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
	user, err := client.Update(
		context.Background(),
		testUserID,
		UserForm{Username: "ana2"},
	)
	require.NoError(t, err)
	require.Equal(t, "ana2", user.Username)
}

func TestUsersClientDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, fmt.Sprintf("/users/%s", testUserID), r.URL.Path)
				w.WriteHeader(http.StatusNoContent)
			},
		),
	)
	defer server.Close()
	client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
	require.NoError(t, client.Delete(context.Background(), testUserID))
}

func TestUsersClientStats(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					require.Equal(t, "/users/stats/users", r.URL.Path)
					fmt.Fprintln(w, `{"totalUsers":0}`)
				},
			),
		)
		defer server.Close()
		client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
		stats, err := client.Stats(context.Background())
		require.NoError(t, err)
		require.Equal(t, 0, stats.TotalUsers)
	})

	t.Run("unexpected format", func(t *testing.T) {
		server := httptest.NewServer(
			http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprintln(w, `{"count":3}`)
				},
			),
		)
		defer server.Close()
		client := NewUsersClient(server.URL, StaticToken(testAPIToken), false)
		_, err := client.Stats(context.Background())
		require.Error(t, err)
	})
}
