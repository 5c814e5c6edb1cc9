package pages

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
)

// UserView is a User as listed on the Users screen, with the Accessories it
// has equipped resolved from the catalogue.
type UserView struct {
	api.User
	// Equipped maps a slot to the Accessory equipped in it. Slots whose
	// Accessory is not in the catalogue are left out.
	Equipped map[string]api.Accessory `json:"equipped"`
}

// UsersPage is the model behind the Users screen.
type UsersPage struct {
	client      api.UsersClient
	accessories *AccessoriesPage
	mu          sync.RWMutex
	users       []api.User
}

// NewUsersPage returns an empty UsersPage. The accessory catalogue is used to
// resolve what each User has equipped.
func NewUsersPage(
	client api.UsersClient,
	accessories api.AccessoriesClient,
) *UsersPage {
	return &UsersPage{
		client:      client,
		accessories: NewAccessoriesPage(accessories),
		users:       []api.User{},
	}
}

// Load fetches the Users and the accessory catalogue. Only a failure to
// fetch the Users is returned; without the catalogue equipped Accessories
// simply stay unresolved.
func (u *UsersPage) Load(ctx context.Context) error {
	if err := u.loadUsers(ctx); err != nil {
		glog.Errorf("error fetching users: %s", err)
		return err
	}
	// Already logged
	_ = u.accessories.Load(ctx)
	return nil
}

func (u *UsersPage) loadUsers(ctx context.Context) error {
	users, err := u.client.List(ctx)
	if err != nil {
		return err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users = users
	return nil
}

// Users returns the listed Users.
func (u *UsersPage) Users() []UserView {
	catalogue := u.accessories.catalogue()
	u.mu.RLock()
	defer u.mu.RUnlock()
	views := make([]UserView, len(u.users))
	for i, user := range u.users {
		views[i] = UserView{
			User:     user,
			Equipped: map[string]api.Accessory{},
		}
		for slot, accessoryID := range user.AccessoriesEquipped {
			if accessory, ok := catalogue[accessoryID]; ok {
				views[i].Equipped[slot] = accessory
			}
		}
	}
	return views
}

// Save updates the User with the given id or, when id is empty, creates a new
// one and appends it to the list.
func (u *UsersPage) Save(
	ctx context.Context,
	id string,
	form api.UserForm,
) (Notification, error) {
	if err := validate(
		userSchemaLoader,
		form,
		"Dados de utilizador inválidos.",
	); err != nil {
		return invalid(err), err
	}
	if id != "" {
		user, err := u.client.Update(ctx, id, form)
		if err != nil {
			return failed(err, "Erro ao salvar usuário."), err
		}
		u.mu.Lock()
		defer u.mu.Unlock()
		for i := range u.users {
			if u.users[i].ID == id {
				u.users[i] = user
			}
		}
		return succeeded("Utilizador atualizado com sucesso!"), nil
	}
	user, err := u.client.Create(ctx, form)
	if err != nil {
		return failed(err, "Erro ao salvar usuário."), err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users = append(u.users, user)
	return succeeded("Utilizador criado com sucesso!"), nil
}

// Delete deletes the User with the given id. It is removed from the list
// only if the backend confirms.
func (u *UsersPage) Delete(ctx context.Context, id string) (Notification, error) {
	if err := u.client.Delete(ctx, id); err != nil {
		return failed(err, "Erro ao eliminar utilizador."), err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	users := make([]api.User, 0, len(u.users))
	for _, user := range u.users {
		if user.ID != id {
			users = append(users, user)
		}
	}
	u.users = users
	return succeeded("Utilizador eliminado com sucesso!"), nil
}

// displayNames maps each listed User's ID to its username, falling back to
// its e-mail address.
func (u *UsersPage) displayNames() map[string]string {
	u.mu.RLock()
	defer u.mu.RUnlock()
	names := make(map[string]string, len(u.users))
	for _, user := range u.users {
		name := user.Username
		if name == "" {
			name = user.Email
		}
		names[user.ID] = name
	}
	return names
}
