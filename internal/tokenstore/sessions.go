package tokenstore

import (
	"fmt"
	"path"
	"sync"

	"github.com/go-redis/redis"
)

const sessionsDirName = "sessions"

// Sessions hands out one Store per console session. The web console serves
// many operators at once and each of them gets a Store of their own. Session
// IDs must be safe to use as a file name; the console only ever uses UUIDs.
type Sessions interface {
	// Session returns the Store of the session with the given ID. A session
	// that was never written to is simply empty.
	Session(id string) Store
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]*memoryStore
}

// NewMemorySessions returns Sessions kept in process memory. A session is
// forgotten as soon as it is cleared.
func NewMemorySessions() Sessions {
	return &memorySessions{
		sessions: map[string]*memoryStore{},
	}
}

func (m *memorySessions) Session(id string) Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.sessions[id]
	if !ok {
		store = &memoryStore{
			onClear: func() {
				m.forget(id)
			},
		}
		m.sessions[id] = store
	}
	return store
}

func (m *memorySessions) forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

type fileSessions struct {
	dir string
}

// NewFileSessions returns Sessions persisted as one JSON document per session
// in dir.
func NewFileSessions(dir string) Sessions {
	return &fileSessions{dir: dir}
}

// DefaultSessionsDir returns ~/.yuadmin/sessions.
func DefaultSessionsDir() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return path.Join(home, sessionsDirName), nil
}

func (f *fileSessions) Session(id string) Store {
	return NewFileStore(path.Join(f.dir, path.Base(id)))
}

type redisSessions struct {
	redisClient *redis.Client
	prefix      string
}

// NewRedisSessions returns Sessions kept in Redis under
// <prefix><id>:token and <prefix><id>:user.
func NewRedisSessions(redisClient *redis.Client, prefix string) Sessions {
	return &redisSessions{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (r *redisSessions) Session(id string) Store {
	return NewRedisStore(r.redisClient, fmt.Sprintf("%s%s:", r.prefix, id))
}
