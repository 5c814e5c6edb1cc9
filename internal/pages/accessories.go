package pages

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
)

// AllTypes is the Accessory filter that matches every type.
const AllTypes = "All"

// AccessoriesPage is the model behind the Accessories screen.
type AccessoriesPage struct {
	client      api.AccessoriesClient
	mu          sync.RWMutex
	accessories []api.Accessory
}

// NewAccessoriesPage returns an empty AccessoriesPage. Call Load to populate
// it.
func NewAccessoriesPage(client api.AccessoriesClient) *AccessoriesPage {
	return &AccessoriesPage{
		client:      client,
		accessories: []api.Accessory{},
	}
}

// Load replaces the list with the backend's. On failure the list is left
// as it was.
func (a *AccessoriesPage) Load(ctx context.Context) error {
	accessories, err := a.client.List(ctx)
	if err != nil {
		glog.Errorf("error fetching accessories: %s", err)
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessories = accessories
	return nil
}

// Accessories returns the Accessories whose type matches filterType. An empty
// filterType or AllTypes matches all of them.
func (a *AccessoriesPage) Accessories(filterType string) []api.Accessory {
	a.mu.RLock()
	defer a.mu.RUnlock()
	accessories := []api.Accessory{}
	for _, accessory := range a.accessories {
		if filterType == "" || filterType == AllTypes ||
			accessory.Type == filterType {
			accessories = append(accessories, accessory)
		}
	}
	return accessories
}

// Save updates the Accessory with the given id or, when id is empty, creates
// a new one and appends it to the list.
func (a *AccessoriesPage) Save(
	ctx context.Context,
	id string,
	form api.AccessoryForm,
) (Notification, error) {
	if err := validate(
		accessorySchemaLoader,
		form,
		"Por favor, preencha todos os campos obrigatórios.",
	); err != nil {
		return invalid(err), err
	}
	if id != "" {
		accessory, err := a.client.Update(ctx, id, form)
		if err != nil {
			return failed(err, "Erro ao salvar acessório."), err
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		for i := range a.accessories {
			if a.accessories[i].ID == id {
				a.accessories[i] = accessory
			}
		}
		return succeeded("Acessório atualizado com sucesso!"), nil
	}
	accessory, err := a.client.Create(ctx, form)
	if err != nil {
		return failed(err, "Erro ao salvar acessório."), err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accessories = append(a.accessories, accessory)
	return succeeded("Acessório criado com sucesso!"), nil
}

// Delete deletes the Accessory with the given id. It is removed from the
// list only if the backend confirms.
func (a *AccessoriesPage) Delete(
	ctx context.Context,
	id string,
) (Notification, error) {
	if err := a.client.Delete(ctx, id); err != nil {
		return failed(err, "Erro ao apagar acessório."), err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	name := id
	accessories := make([]api.Accessory, 0, len(a.accessories))
	for _, accessory := range a.accessories {
		if accessory.ID == id {
			name = accessory.Name
			continue
		}
		accessories = append(accessories, accessory)
	}
	a.accessories = accessories
	return succeeded(
		fmt.Sprintf("Acessório %q eliminado com sucesso!", name),
	), nil
}

// catalogue indexes the loaded Accessories by ID.
func (a *AccessoriesPage) catalogue() map[string]api.Accessory {
	a.mu.RLock()
	defer a.mu.RUnlock()
	catalogue := make(map[string]api.Accessory, len(a.accessories))
	for _, accessory := range a.accessories {
		catalogue[accessory.ID] = accessory
	}
	return catalogue
}
