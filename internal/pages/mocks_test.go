package pages

import (
	"context"

	"github.com/krancour/yuadmin/sdk/api"
)

type mockClient struct {
	accessories    api.AccessoriesClient
	presetMessages api.PresetMessagesClient
	tasks          api.TasksClient
	users          api.UsersClient
}

func (m *mockClient) Accessories() api.AccessoriesClient {
	return m.accessories
}

func (m *mockClient) PresetMessages() api.PresetMessagesClient {
	return m.presetMessages
}

func (m *mockClient) Tasks() api.TasksClient {
	return m.tasks
}

func (m *mockClient) Users() api.UsersClient {
	return m.users
}

type mockAccessoriesClient struct {
	ListFn   func(context.Context) ([]api.Accessory, error)
	CreateFn func(context.Context, api.AccessoryForm) (api.Accessory, error)
	UpdateFn func(
		context.Context,
		string,
		api.AccessoryForm,
	) (api.Accessory, error)
	DeleteFn func(context.Context, string) error
	StatsFn  func(context.Context) (api.AccessoryStats, error)
}

func (m *mockAccessoriesClient) List(
	ctx context.Context,
) ([]api.Accessory, error) {
	return m.ListFn(ctx)
}

func (m *mockAccessoriesClient) Create(
	ctx context.Context,
	form api.AccessoryForm,
) (api.Accessory, error) {
	return m.CreateFn(ctx, form)
}

func (m *mockAccessoriesClient) Update(
	ctx context.Context,
	id string,
	form api.AccessoryForm,
) (api.Accessory, error) {
	return m.UpdateFn(ctx, id, form)
}

func (m *mockAccessoriesClient) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockAccessoriesClient) Stats(
	ctx context.Context,
) (api.AccessoryStats, error) {
	return m.StatsFn(ctx)
}

type mockUsersClient struct {
	MeFn     func(context.Context) (api.User, error)
	ListFn   func(context.Context) ([]api.User, error)
	GetFn    func(context.Context, string) (api.User, error)
	CreateFn func(context.Context, api.UserForm) (api.User, error)
	UpdateFn func(context.Context, string, api.UserForm) (api.User, error)
	DeleteFn func(context.Context, string) error
	StatsFn  func(context.Context) (api.UserStats, error)
}

func (m *mockUsersClient) Me(ctx context.Context) (api.User, error) {
	return m.MeFn(ctx)
}

func (m *mockUsersClient) List(ctx context.Context) ([]api.User, error) {
	return m.ListFn(ctx)
}

func (m *mockUsersClient) Get(ctx context.Context, id string) (api.User, error) {
	return m.GetFn(ctx, id)
}

func (m *mockUsersClient) Create(
	ctx context.Context,
	form api.UserForm,
) (api.User, error) {
	return m.CreateFn(ctx, form)
}

func (m *mockUsersClient) Update(
	ctx context.Context,
	id string,
	form api.UserForm,
) (api.User, error) {
	return m.UpdateFn(ctx, id, form)
}

func (m *mockUsersClient) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockUsersClient) Stats(ctx context.Context) (api.UserStats, error) {
	return m.StatsFn(ctx)
}

type mockTasksClient struct {
	ListFn   func(context.Context) ([]api.Task, error)
	CreateFn func(context.Context, api.TaskForm) (api.Task, error)
	UpdateFn func(context.Context, string, api.TaskForm) (api.Task, error)
	DeleteFn func(context.Context, string) error
	StatsFn  func(context.Context) (api.TaskStats, error)
}

func (m *mockTasksClient) List(ctx context.Context) ([]api.Task, error) {
	return m.ListFn(ctx)
}

func (m *mockTasksClient) Create(
	ctx context.Context,
	form api.TaskForm,
) (api.Task, error) {
	return m.CreateFn(ctx, form)
}

func (m *mockTasksClient) Update(
	ctx context.Context,
	id string,
	form api.TaskForm,
) (api.Task, error) {
	return m.UpdateFn(ctx, id, form)
}

func (m *mockTasksClient) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

func (m *mockTasksClient) Stats(ctx context.Context) (api.TaskStats, error) {
	return m.StatsFn(ctx)
}

type mockPresetMessagesClient struct {
	ListFn   func(context.Context) ([]api.PresetMessage, error)
	CreateFn func(
		context.Context,
		api.PresetMessageForm,
	) (api.PresetMessage, error)
	UpdateFn func(
		context.Context,
		string,
		api.PresetMessageForm,
	) (api.PresetMessage, error)
	DeleteFn func(context.Context, string) error
}

func (m *mockPresetMessagesClient) List(
	ctx context.Context,
) ([]api.PresetMessage, error) {
	return m.ListFn(ctx)
}

func (m *mockPresetMessagesClient) Create(
	ctx context.Context,
	form api.PresetMessageForm,
) (api.PresetMessage, error) {
	return m.CreateFn(ctx, form)
}

func (m *mockPresetMessagesClient) Update(
	ctx context.Context,
	id string,
	form api.PresetMessageForm,
) (api.PresetMessage, error) {
	return m.UpdateFn(ctx, id, form)
}

func (m *mockPresetMessagesClient) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}
