package console

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
)

type mutationResponse struct {
	Notification pages.Notification `json:"notification"`
	Items        interface{}        `json:"items,omitempty"`
}

func (s *server) registerPages(router *mux.Router) {
	guarded := s.guard.Decorate

	router.HandleFunc(homePath, guarded(s.dashboard)).Methods(http.MethodGet)

	router.HandleFunc("/users", guarded(s.listUsers)).Methods(http.MethodGet)
	router.HandleFunc("/users", guarded(s.createUser)).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", guarded(s.updateUser)).
		Methods(http.MethodPut)
	router.HandleFunc("/users/{id}", guarded(s.deleteUser)).
		Methods(http.MethodDelete)

	router.HandleFunc("/accessories", guarded(s.listAccessories)).
		Methods(http.MethodGet)
	router.HandleFunc("/accessories", guarded(s.createAccessory)).
		Methods(http.MethodPost)
	router.HandleFunc("/accessories/{id}", guarded(s.updateAccessory)).
		Methods(http.MethodPut)
	router.HandleFunc("/accessories/{id}", guarded(s.deleteAccessory)).
		Methods(http.MethodDelete)

	router.HandleFunc("/tasks", guarded(s.listTasks)).Methods(http.MethodGet)
	router.HandleFunc("/tasks", guarded(s.createTask)).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id}", guarded(s.updateTask)).
		Methods(http.MethodPut)
	router.HandleFunc("/tasks/{id}", guarded(s.deleteTask)).
		Methods(http.MethodDelete)

	// Both spellings have been linked to
	for _, path := range []string{"/preset-messages", "/preset_messages"} {
		router.HandleFunc(path, guarded(s.listPresetMessages)).
			Methods(http.MethodGet)
		router.HandleFunc(path, guarded(s.createPresetMessage)).
			Methods(http.MethodPost)
		router.HandleFunc(path+"/{id}", guarded(s.updatePresetMessage)).
			Methods(http.MethodPut)
		router.HandleFunc(path+"/{id}", guarded(s.deletePresetMessage)).
			Methods(http.MethodDelete)
	}
}

func (s *server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				return struct {
					User      *api.User       `json:"user"`
					Dashboard pages.Dashboard `json:"dashboard"`
				}{
					User:      userFromContext(r.Context()),
					Dashboard: pages.LoadDashboard(r.Context(), s.client),
				}, nil
			},
			successCode: http.StatusOK,
		},
	)
}

// The page models below are built for each request. They hold one
// operator's view of a list and are never shared between requests.

func (s *server) usersPage() *pages.UsersPage {
	return pages.NewUsersPage(s.client.Users(), s.client.Accessories())
}

func (s *server) accessoriesPage() *pages.AccessoriesPage {
	return pages.NewAccessoriesPage(s.client.Accessories())
}

func (s *server) tasksPage() *pages.TasksPage {
	return pages.NewTasksPage(
		s.client.Tasks(),
		s.client.Users(),
		s.client.Accessories(),
	)
}

func (s *server) presetMessagesPage() *pages.PresetMessagesPage {
	return pages.NewPresetMessagesPage(s.client.PresetMessages())
}

// mutate loads the current list, runs a save or delete against it and
// answers with its Notification and the resulting list. A list that fails to
// load does not stop the mutation.
func (s *server) mutate(
	w http.ResponseWriter,
	r *http.Request,
	form interface{},
	load func(context.Context) error,
	op func() (pages.Notification, error),
	items func() interface{},
	successCode int,
) {
	s.serveRequest(
		inboundRequest{
			w:          w,
			r:          r,
			reqBodyObj: form,
			endpointLogic: func() (interface{}, error) {
				if err := load(r.Context()); err != nil {
					glog.Errorf(
						"[%s] error loading list before %s %s: %s",
						requestIDFromContext(r.Context()),
						r.Method,
						r.URL.Path,
						err,
					)
				}
				notification, err := op()
				return mutationResponse{
					Notification: notification,
					Items:        items(),
				}, err
			},
			successCode: successCode,
		},
	)
}

func (s *server) listUsers(w http.ResponseWriter, r *http.Request) {
	page := s.usersPage()
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				if err := page.Load(r.Context()); err != nil {
					return nil, err
				}
				return struct {
					Users []pages.UserView `json:"users"`
				}{
					Users: page.Users(),
				}, nil
			},
			successCode: http.StatusOK,
		},
	)
}

func (s *server) saveUser(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	successCode int,
) {
	page := s.usersPage()
	form := api.UserForm{}
	s.mutate(
		w,
		r,
		&form,
		page.Load,
		func() (pages.Notification, error) {
			return page.Save(r.Context(), id, form)
		},
		func() interface{} { return page.Users() },
		successCode,
	)
}

func (s *server) createUser(w http.ResponseWriter, r *http.Request) {
	s.saveUser(w, r, "", http.StatusCreated)
}

func (s *server) updateUser(w http.ResponseWriter, r *http.Request) {
	s.saveUser(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *server) deleteUser(w http.ResponseWriter, r *http.Request) {
	page := s.usersPage()
	s.mutate(
		w,
		r,
		nil,
		page.Load,
		func() (pages.Notification, error) {
			return page.Delete(r.Context(), mux.Vars(r)["id"])
		},
		func() interface{} { return page.Users() },
		http.StatusOK,
	)
}

func (s *server) listAccessories(w http.ResponseWriter, r *http.Request) {
	page := s.accessoriesPage()
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				if err := page.Load(r.Context()); err != nil {
					return nil, err
				}
				filterType := r.URL.Query().Get("type")
				if filterType == "" {
					filterType = pages.AllTypes
				}
				return struct {
					Types       []string        `json:"types"`
					Type        string          `json:"type"`
					Accessories []api.Accessory `json:"accessories"`
				}{
					Types:       append([]string{pages.AllTypes}, api.AccessoryTypes...),
					Type:        filterType,
					Accessories: page.Accessories(filterType),
				}, nil
			},
			successCode: http.StatusOK,
		},
	)
}

func (s *server) saveAccessory(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	successCode int,
) {
	page := s.accessoriesPage()
	form := api.AccessoryForm{}
	s.mutate(
		w,
		r,
		&form,
		page.Load,
		func() (pages.Notification, error) {
			return page.Save(r.Context(), id, form)
		},
		func() interface{} { return page.Accessories(pages.AllTypes) },
		successCode,
	)
}

func (s *server) createAccessory(w http.ResponseWriter, r *http.Request) {
	s.saveAccessory(w, r, "", http.StatusCreated)
}

func (s *server) updateAccessory(w http.ResponseWriter, r *http.Request) {
	s.saveAccessory(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *server) deleteAccessory(w http.ResponseWriter, r *http.Request) {
	page := s.accessoriesPage()
	s.mutate(
		w,
		r,
		nil,
		page.Load,
		func() (pages.Notification, error) {
			return page.Delete(r.Context(), mux.Vars(r)["id"])
		},
		func() interface{} { return page.Accessories(pages.AllTypes) },
		http.StatusOK,
	)
}

func (s *server) listTasks(w http.ResponseWriter, r *http.Request) {
	page := s.tasksPage()
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				if err := page.Load(r.Context()); err != nil {
					return nil, err
				}
				return struct {
					Tasks  []pages.TaskView `json:"tasks"`
					Owners []pages.UserView `json:"owners"`
					Stats  *api.TaskStats   `json:"stats"`
				}{
					Tasks:  page.Tasks(),
					Owners: page.Owners(),
					Stats:  page.Stats(),
				}, nil
			},
			successCode: http.StatusOK,
		},
	)
}

func (s *server) saveTask(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	successCode int,
) {
	page := s.tasksPage()
	form := api.TaskForm{}
	s.mutate(
		w,
		r,
		&form,
		page.Load,
		func() (pages.Notification, error) {
			return page.Save(r.Context(), id, form)
		},
		func() interface{} { return page.Tasks() },
		successCode,
	)
}

func (s *server) createTask(w http.ResponseWriter, r *http.Request) {
	s.saveTask(w, r, "", http.StatusCreated)
}

func (s *server) updateTask(w http.ResponseWriter, r *http.Request) {
	s.saveTask(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *server) deleteTask(w http.ResponseWriter, r *http.Request) {
	page := s.tasksPage()
	s.mutate(
		w,
		r,
		nil,
		page.Load,
		func() (pages.Notification, error) {
			return page.Delete(r.Context(), mux.Vars(r)["id"])
		},
		func() interface{} { return page.Tasks() },
		http.StatusOK,
	)
}

func (s *server) listPresetMessages(w http.ResponseWriter, r *http.Request) {
	page := s.presetMessagesPage()
	s.serveRequest(
		inboundRequest{
			w: w,
			r: r,
			endpointLogic: func() (interface{}, error) {
				if err := page.Load(r.Context()); err != nil {
					return nil, err
				}
				return struct {
					Messages []api.PresetMessage `json:"messages"`
				}{
					Messages: page.Messages(),
				}, nil
			},
			successCode: http.StatusOK,
		},
	)
}

func (s *server) savePresetMessage(
	w http.ResponseWriter,
	r *http.Request,
	id string,
	successCode int,
) {
	page := s.presetMessagesPage()
	form := api.PresetMessageForm{}
	s.mutate(
		w,
		r,
		&form,
		page.Load,
		func() (pages.Notification, error) {
			return page.Save(r.Context(), id, form)
		},
		func() interface{} { return page.Messages() },
		successCode,
	)
}

func (s *server) createPresetMessage(w http.ResponseWriter, r *http.Request) {
	s.savePresetMessage(w, r, "", http.StatusCreated)
}

func (s *server) updatePresetMessage(w http.ResponseWriter, r *http.Request) {
	s.savePresetMessage(w, r, mux.Vars(r)["id"], http.StatusOK)
}

func (s *server) deletePresetMessage(w http.ResponseWriter, r *http.Request) {
	page := s.presetMessagesPage()
	s.mutate(
		w,
		r,
		nil,
		page.Load,
		func() (pages.Notification, error) {
			return page.Delete(r.Context(), mux.Vars(r)["id"])
		},
		func() interface{} { return page.Messages() },
		http.StatusOK,
	)
}
