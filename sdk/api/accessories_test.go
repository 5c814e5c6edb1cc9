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

func TestAccessoriesClientList(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/accessories", r.URL.Path)
				fmt.Fprintln(
					w,
					`{"accessories":[{"_id":"a1","name":"Hat","type":"Chapeu","value":5,"src":"http://x/y.png"}]}`, // nolint: lll
				)
			},
		),
	)
	defer server.Close()
	client := NewAccessoriesClient(server.URL, StaticToken(testAPIToken), false)
	accessories, err := client.List(context.Background())
	require.NoError(t, err)
	require.Equal(
		t,
		[]Accessory{
			{ID: "a1", Name: "Hat", Type: "Chapeu", Value: 5, Src: "http://x/y.png"},
		},
		accessories,
	)
}

func TestAccessoriesClientCreate(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				defer r.Body.Close()
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/accessories", r.URL.Path)
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				form := map[string]interface{}{}
				require.NoError(t, json.Unmarshal(bodyBytes, &form))
				require.Equal(t, "Hat", form["name"])
				require.Equal(t, "Chapeu", form["type"])
				require.Equal(t, float64(5), form["value"])
				require.Equal(t, "http://x/y.png", form["src"])
				w.WriteHeader(http.StatusCreated)
				fmt.Fprintln(
					w,
					`{"accessory":{"_id":"a9","name":"Hat","type":"Chapeu","value":5,"src":"http://x/y.png"}}`, // nolint: lll
				)
			},
		),
	)
	defer server.Close()
	client := NewAccessoriesClient(server.URL, StaticToken(testAPIToken), false)
	value := 5
	accessory, err := client.Create(
		context.Background(),
		AccessoryForm{
			Name:  "Hat",
			Type:  "Chapeu",
			Value: &value,
			Src:   "http://x/y.png",
		},
	)
	require.NoError(t, err)
	require.Equal(t, "a9", accessory.ID)
}

func TestAccessoriesClientUpdateAndDelete(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/accessories/a1", r.URL.Path)
				switch r.Method {
				case http.MethodPut:
					fmt.Fprintln(w, `{"accessory":{"_id":"a1","name":"Big Hat"}}`)
				case http.MethodDelete:
					fmt.Fprintln(w, `{"msg":"deleted"}`)
				default:
					t.Errorf("unexpected method %s", r.Method)
				}
			},
		),
	)
	defer server.Close()
	client := NewAccessoriesClient(server.URL, StaticToken(testAPIToken), false)
	accessory, err := client.Update(
		context.Background(),
		"a1",
		AccessoryForm{Name: "Big Hat"},
	)
	require.NoError(t, err)
	require.Equal(t, "Big Hat", accessory.Name)
	require.NoError(t, client.Delete(context.Background(), "a1"))
}

func TestAccessoriesClientStats(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/accessories/stats", r.URL.Path)
				fmt.Fprintln(w, `{"totalAccessories":42}`)
			},
		),
	)
	defer server.Close()
	client := NewAccessoriesClient(server.URL, StaticToken(testAPIToken), false)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 42, stats.TotalAccessories)
}
