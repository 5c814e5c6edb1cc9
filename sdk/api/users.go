package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// User represents a player of the YU companion app, as well as the operator
// that is logged into the admin tooling (both come from the same collection).
type User struct {
	// ID is the backend-assigned identifier.
	ID string `json:"_id,omitempty"`
	// Username is the handle the User chose in the app.
	Username string `json:"username,omitempty"`
	// Name is the display name, when the backend has one.
	Name string `json:"name,omitempty"`
	// Code is the pairing code of the User's companion device.
	Code string `json:"code,omitempty"`
	// Email is the User's e-mail address.
	Email string `json:"email,omitempty"`
	// Points is the User's point balance, spent on Accessories.
	Points int `json:"points"`
	// Mascot describes the User's mascot. Its shape is owned by the app and is
	// passed through untouched.
	Mascot json.RawMessage `json:"mascot,omitempty"`
	// AccessoriesEquipped maps a slot (one of the Accessory types) to the ID of
	// the Accessory equipped in that slot.
	AccessoriesEquipped map[string]string `json:"accessoriesEquipped,omitempty"`
}

// DisplayName returns the best human readable label for the User.
func (u User) DisplayName() string {
	switch {
	case u.Username != "":
		return u.Username
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

// UserForm holds the editable fields of a User.
type UserForm struct {
	Username string `json:"username"`
	Code     string `json:"code"`
	Email    string `json:"email"`
	Points   int    `json:"points"`
}

// UserStats are aggregate counters about Users.
type UserStats struct {
	TotalUsers int `json:"totalUsers"`
}

// UsersClient is the specialized client for managing Users with the YU API.
type UsersClient interface {
	// Me returns the User that owns the bearer token. The backend rejects the
	// call when the token is invalid or expired, which makes this the one
	// authoritative way to validate a token.
	Me(context.Context) (User, error)
	// List returns all Users.
	List(context.Context) ([]User, error)
	// Get retrieves a single User specified by their identifier.
	Get(context.Context, string) (User, error)
	// Create creates a new User and returns it as stored by the backend.
	Create(context.Context, UserForm) (User, error)
	// Update replaces the editable fields of the User with the given
	// identifier and returns the updated User.
	Update(context.Context, string, UserForm) (User, error)
	// Delete deletes a single User specified by their identifier.
	Delete(context.Context, string) error
	// Stats returns aggregate counters about Users.
	Stats(context.Context) (UserStats, error)
}

type usersClient struct {
	*baseClient
}

// NewUsersClient returns a specialized client for managing Users.
func NewUsersClient(
	apiAddress string,
	tokens TokenSource,
	allowInsecure bool,
) UsersClient {
	return &usersClient{
		baseClient: newBaseClient(apiAddress, tokens, allowInsecure),
	}
}

func (u *usersClient) Me(ctx context.Context) (User, error) {
	user := User{}
	return user, u.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "users/me",
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("user", &user),
		},
	)
}

func (u *usersClient) List(ctx context.Context) ([]User, error) {
	users := []User{}
	return users, u.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "users",
			successCodes: []int{http.StatusOK},
			decode:       listDecoder("users", &users),
		},
	)
}

func (u *usersClient) Get(ctx context.Context, id string) (User, error) {
	user := User{}
	return user, u.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         fmt.Sprintf("users/%s", id),
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("user", &user),
		},
	)
}

func (u *usersClient) Create(ctx context.Context, form UserForm) (User, error) {
	user := User{}
	return user, u.executeRequest(
		ctx,
		outboundRequest{
			method:     http.MethodPost,
			path:       "users",
			reqBodyObj: form,
			decode:     itemDecoder("user", &user),
		},
	)
}

func (u *usersClient) Update(
	ctx context.Context,
	id string,
	form UserForm,
) (User, error) {
	user := User{}
	return user, u.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodPut,
			path:         fmt.Sprintf("users/%s", id),
			reqBodyObj:   form,
			successCodes: []int{http.StatusOK},
			decode:       itemDecoder("user", &user),
		},
	)
}

func (u *usersClient) Delete(ctx context.Context, id string) error {
	return u.executeRequest(
		ctx,
		outboundRequest{
			method: http.MethodDelete,
			path:   fmt.Sprintf("users/%s", id),
		},
	)
}

func (u *usersClient) Stats(ctx context.Context) (UserStats, error) {
	stats := struct {
		TotalUsers *int `json:"totalUsers"`
	}{}
	if err := u.executeRequest(
		ctx,
		outboundRequest{
			method:       http.MethodGet,
			path:         "users/stats/users",
			successCodes: []int{http.StatusOK},
			decode:       objectDecoder(&stats),
		},
	); err != nil {
		return UserStats{}, err
	}
	if stats.TotalUsers == nil {
		return UserStats{}, errors.New("unexpected user stats response format")
	}
	return UserStats{TotalUsers: *stats.TotalUsers}, nil
}
