package pages

import (
	"context"
	"sync"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/sdk/api"
)

// TaskView is a Task as listed on the Tasks screen.
type TaskView struct {
	api.Task
	// Owner is the owning User's username or e-mail address, or the raw user
	// ID when the owner is not among the loaded Users.
	Owner string `json:"owner"`
}

// TasksPage is the model behind the Tasks screen.
type TasksPage struct {
	client api.TasksClient
	owners *UsersPage
	mu     sync.RWMutex
	tasks  []api.Task
	stats  *api.TaskStats
}

// NewTasksPage returns an empty TasksPage.
func NewTasksPage(
	client api.TasksClient,
	users api.UsersClient,
	accessories api.AccessoriesClient,
) *TasksPage {
	return &TasksPage{
		client: client,
		owners: NewUsersPage(users, accessories),
		tasks:  []api.Task{},
	}
}

// Load fetches the Tasks, the Users that may own them and the task counters.
// Only a failure to fetch the Tasks is returned.
func (t *TasksPage) Load(ctx context.Context) error {
	tasks, err := t.client.List(ctx)
	if err != nil {
		glog.Errorf("error fetching tasks: %s", err)
		return err
	}
	t.mu.Lock()
	t.tasks = tasks
	t.mu.Unlock()
	if err := t.owners.loadUsers(ctx); err != nil {
		glog.Errorf("error fetching task owners: %s", err)
	}
	t.refreshStats(ctx)
	return nil
}

// Tasks returns the listed Tasks.
func (t *TasksPage) Tasks() []TaskView {
	names := t.owners.displayNames()
	t.mu.RLock()
	defer t.mu.RUnlock()
	views := make([]TaskView, len(t.tasks))
	for i, task := range t.tasks {
		owner := names[task.UserID]
		if owner == "" {
			owner = task.UserID
		}
		views[i] = TaskView{
			Task:  task,
			Owner: owner,
		}
	}
	return views
}

// Owners returns the Users a Task can be assigned to.
func (t *TasksPage) Owners() []UserView {
	return t.owners.Users()
}

// Stats returns the most recently fetched task counters, or nil if they
// could never be fetched.
func (t *TasksPage) Stats() *api.TaskStats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.stats == nil {
		return nil
	}
	stats := *t.stats
	return &stats
}

// Save updates the Task with the given id or, when id is empty, creates a new
// one and appends it to the list. Counters are refreshed afterwards.
func (t *TasksPage) Save(
	ctx context.Context,
	id string,
	form api.TaskForm,
) (Notification, error) {
	if err := validate(
		taskSchemaLoader,
		form,
		"Usuário e título são obrigatórios.",
	); err != nil {
		return invalid(err), err
	}
	var notification Notification
	if id != "" {
		task, err := t.client.Update(ctx, id, form)
		if err != nil {
			return failed(err, "Erro ao salvar tarefa."), err
		}
		t.mu.Lock()
		for i := range t.tasks {
			if t.tasks[i].ID == id {
				t.tasks[i] = task
			}
		}
		t.mu.Unlock()
		notification = succeeded("Tarefa atualizada com sucesso!")
	} else {
		task, err := t.client.Create(ctx, form)
		if err != nil {
			return failed(err, "Erro ao salvar tarefa."), err
		}
		t.mu.Lock()
		t.tasks = append(t.tasks, task)
		t.mu.Unlock()
		notification = succeeded("Tarefa criada com sucesso!")
	}
	t.refreshStats(ctx)
	return notification, nil
}

// Delete deletes the Task with the given id. It is removed from the list only
// if the backend confirms. Counters are refreshed afterwards.
func (t *TasksPage) Delete(ctx context.Context, id string) (Notification, error) {
	if err := t.client.Delete(ctx, id); err != nil {
		return failed(err, "Erro ao eliminar tarefa."), err
	}
	t.mu.Lock()
	tasks := make([]api.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	t.tasks = tasks
	t.mu.Unlock()
	t.refreshStats(ctx)
	return succeeded("Tarefa eliminada com sucesso!"), nil
}

// refreshStats keeps the previous counters when they cannot be fetched.
func (t *TasksPage) refreshStats(ctx context.Context) {
	stats, err := t.client.Stats(ctx)
	if err != nil {
		glog.Errorf("error fetching task stats: %s", err)
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = &stats
}
