package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"skip-checkout/catalog"
	"skip-checkout/models"
)

// ErrNotFound is returned for an unknown session id
var ErrNotFound = errors.New("session: not found")

// StoreInterface defines the contract for session storage
type StoreInterface interface {
	Create(ctx context.Context, loc models.Location) (*Session, error)
	Get(id string) (*Session, error)
	Delete(id string)
}

// Store keeps sessions in memory, keyed by id
type Store struct {
	loader      catalog.Loader
	initialStep int

	sessions map[string]*Session
	mutex    sync.RWMutex
}

// Ensure Store implements StoreInterface
var _ StoreInterface = (*Store)(nil)

// NewStore creates a store whose sessions load from loader and start at initialStep
func NewStore(loader catalog.Loader, initialStep int) *Store {
	return &Store{
		loader:      loader,
		initialStep: initialStep,
		sessions:    make(map[string]*Session),
	}
}

// Create mounts a new session for loc
func (st *Store) Create(ctx context.Context, loc models.Location) (*Session, error) {
	s, err := Mount(ctx, uuid.NewString(), st.loader, loc, st.initialStep)
	if err != nil {
		return nil, err
	}

	st.mutex.Lock()
	st.sessions[s.ID] = s
	st.mutex.Unlock()
	return s, nil
}

// Get returns the session with id
func (st *Store) Get(id string) (*Session, error) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "id=%s", id)
	}
	return s, nil
}

// Delete forgets a session
func (st *Store) Delete(id string) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.sessions, id)
}
