package tokenstore

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"sync"

	"github.com/krancour/yuadmin/internal/file"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

const sessionFileName = "session"

type fileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a Store persisted as a JSON document at the given
// path. The file survives restarts of the process, much like browser storage
// survives a page reload.
func NewFileStore(sessionFile string) Store {
	return &fileStore{path: sessionFile}
}

// DefaultSessionFile returns ~/.yuadmin/session.
func DefaultSessionFile() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return path.Join(home, sessionFileName), nil
}

// Home returns the yuadmin home directory, ~/.yuadmin.
func Home() (string, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "error locating user's home directory")
	}
	return path.Join(homeDir, ".yuadmin"), nil
}

func (f *fileStore) SetToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.read()
	if err != nil {
		return err
	}
	s.Token = token
	return f.write(s)
}

func (f *fileStore) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.read()
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

func (f *fileStore) SetUser(_ context.Context, user api.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.read()
	if err != nil {
		return err
	}
	s.User = &user
	return f.write(s)
}

func (f *fileStore) User(context.Context) (*api.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, err := f.read()
	if err != nil {
		return nil, err
	}
	return s.User, nil
}

func (f *fileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "error deleting session file %s", f.path)
	}
	return nil
}

// read returns the persisted session. A missing file is an empty session.
func (f *fileStore) read() (session, error) {
	s := session{}
	if !file.Exists(f.path) {
		return s, nil
	}
	sessionBytes, err := ioutil.ReadFile(f.path)
	if err != nil {
		return s, errors.Wrapf(err, "error reading session file %s", f.path)
	}
	if len(sessionBytes) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(sessionBytes, &s); err != nil {
		return s, errors.Wrapf(err, "error parsing session file %s", f.path)
	}
	return s, nil
}

func (f *fileStore) write(s session) error {
	if err := file.EnsureDirectory(path.Dir(f.path)); err != nil {
		return err
	}
	sessionBytes, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "error marshaling session")
	}
	// The token is a credential; keep it private to the operator.
	if err := ioutil.WriteFile(f.path, sessionBytes, 0600); err != nil {
		return errors.Wrapf(err, "error writing to %s", f.path)
	}
	return nil
}
