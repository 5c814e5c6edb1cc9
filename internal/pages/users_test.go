package pages

import (
	"context"
	"testing"

	"github.com/krancour/yuadmin/sdk/api"
	"github.com/stretchr/testify/require"
)

func testAccessoriesClient() *mockAccessoriesClient {
	return &mockAccessoriesClient{
		ListFn: func(context.Context) ([]api.Accessory, error) {
			return []api.Accessory{
				{ID: "a1", Name: "Boné", Type: "Chapeu"},
				{ID: "a2", Name: "Praia", Type: "Backgrounds"},
			}, nil
		},
	}
}

func TestUsersPageResolvesEquippedAccessories(t *testing.T) {
	page := NewUsersPage(
		&mockUsersClient{
			ListFn: func(context.Context) ([]api.User, error) {
				return []api.User{
					{
						ID:       "1",
						Username: "ana",
						AccessoriesEquipped: map[string]string{
							"Chapeu":      "a1",
							"Backgrounds": "a2",
							"Ouvidos":     "gone",
						},
					},
					{ID: "2", Username: "rui"},
				}, nil
			},
		},
		testAccessoriesClient(),
	)
	require.NoError(t, page.Load(context.Background()))
	users := page.Users()
	require.Len(t, users, 2)
	require.Equal(t, "ana", users[0].Username)
	require.Len(t, users[0].Equipped, 2)
	require.Equal(t, "Boné", users[0].Equipped["Chapeu"].Name)
	require.Equal(t, "Praia", users[0].Equipped["Backgrounds"].Name)
	require.Empty(t, users[1].Equipped)
}

func TestUsersPageWithoutCatalogue(t *testing.T) {
	page := NewUsersPage(
		&mockUsersClient{
			ListFn: func(context.Context) ([]api.User, error) {
				return []api.User{
					{ID: "1", AccessoriesEquipped: map[string]string{"Chapeu": "a1"}},
				}, nil
			},
		},
		&mockAccessoriesClient{
			ListFn: func(context.Context) ([]api.Accessory, error) {
				return nil, &api.ErrInternalServer{}
			},
		},
	)
	require.NoError(t, page.Load(context.Background()))
	users := page.Users()
	require.Len(t, users, 1)
	require.Empty(t, users[0].Equipped)
}

func TestUsersPageSave(t *testing.T) {
	client := &mockUsersClient{
		ListFn: func(context.Context) ([]api.User, error) {
			return []api.User{{ID: "1", Username: "ana", Points: 3}}, nil
		},
		CreateFn: func(_ context.Context, form api.UserForm) (api.User, error) {
			return api.User{ID: "2", Username: form.Username}, nil
		},
		UpdateFn: func(
			_ context.Context,
			id string,
			form api.UserForm,
		) (api.User, error) {
			return api.User{ID: id, Username: form.Username, Points: form.Points}, nil
		},
	}
	page := NewUsersPage(client, testAccessoriesClient())
	require.NoError(t, page.Load(context.Background()))

	notification, err := page.Save(
		context.Background(),
		"1",
		api.UserForm{Username: "ana", Points: 30},
	)
	require.NoError(t, err)
	require.Equal(t, "Utilizador atualizado com sucesso!", notification.Message)
	require.Equal(t, 30, page.Users()[0].Points)

	notification, err = page.Save(
		context.Background(),
		"",
		api.UserForm{Username: "rui"},
	)
	require.NoError(t, err)
	require.Equal(t, "Utilizador criado com sucesso!", notification.Message)
	require.Len(t, page.Users(), 2)

	// The backend's message is surfaced when there is one
	client.CreateFn = func(context.Context, api.UserForm) (api.User, error) {
		return api.User{}, &api.ErrConflict{Msg: "Email já registado"}
	}
	notification, err = page.Save(
		context.Background(),
		"",
		api.UserForm{Username: "rui"},
	)
	require.Error(t, err)
	require.Equal(t, "Email já registado", notification.Message)
	require.Len(t, page.Users(), 2)
}

func TestUsersPageDelete(t *testing.T) {
	client := &mockUsersClient{
		ListFn: func(context.Context) ([]api.User, error) {
			return []api.User{{ID: "1"}, {ID: "2"}}, nil
		},
		DeleteFn: func(context.Context, string) error {
			return &api.ErrInternalServer{}
		},
	}
	page := NewUsersPage(client, testAccessoriesClient())
	require.NoError(t, page.Load(context.Background()))

	notification, err := page.Delete(context.Background(), "1")
	require.Error(t, err)
	require.Equal(t, "Erro ao eliminar utilizador.", notification.Message)
	require.Len(t, page.Users(), 2)

	client.DeleteFn = func(context.Context, string) error {
		return nil
	}
	notification, err = page.Delete(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "Utilizador eliminado com sucesso!", notification.Message)
	users := page.Users()
	require.Len(t, users, 1)
	require.Equal(t, "2", users[0].ID)
}
