// Package session tracks who is signed in and tells interested views when
// that changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrNoAuthProvider = errors.New("sign-in is not available for this backend")
)

type User struct {
	ID          uuid.UUID
	Email       string
	AccessToken string
}

type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

func (k EventKind) String() string {
	if k == SignedIn {
		return "signed_in"
	}

	return "signed_out"
}

type Event struct {
	Kind EventKind
	User User
}

// Authenticator exchanges credentials with the identity provider.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (User, error)
	SignOut(ctx context.Context) error
}

// Manager holds the current user. Subscribers are called synchronously, in
// subscription order, after the state has changed and outside the lock.
type Manager struct {
	auth Authenticator

	mu     sync.Mutex
	user   *User
	subs   map[int]func(Event)
	nextID int
}

// NewManager creates a Manager. auth may be nil when users are configured
// rather than signed in.
func NewManager(auth Authenticator) *Manager {
	return &Manager{
		auth: auth,
		subs: make(map[int]func(Event)),
	}
}

// CanSignIn reports whether credentials can be exchanged for a session.
func (m *Manager) CanSignIn() bool {
	return m.auth != nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (User, error) {
	if m.auth == nil {
		return User{}, ErrNoAuthProvider
	}

	u, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		return User{}, fmt.Errorf("signing in: %w", err)
	}

	m.set(&u, Event{Kind: SignedIn, User: u})

	return u, nil
}

// SignInAs installs a known user without talking to the identity provider.
func (m *Manager) SignInAs(u User) {
	m.set(&u, Event{Kind: SignedIn, User: u})
}

func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	prev := m.user
	m.mu.Unlock()

	if prev == nil {
		return nil
	}

	if m.auth != nil {
		if err := m.auth.SignOut(ctx); err != nil {
			return fmt.Errorf("signing out: %w", err)
		}
	}

	m.set(nil, Event{Kind: SignedOut, User: *prev})

	return nil
}

func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return User{}, false
	}

	return *m.user, true
}

func (m *Manager) UserID() (uuid.UUID, error) {
	u, ok := m.Current()
	if !ok {
		return uuid.Nil, ErrNotSignedIn
	}

	return u.ID, nil
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) set(u *User, ev Event) {
	m.mu.Lock()
	m.user = u

	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	fns := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.subs[id])
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

type ctxKey struct{}

// WithUserID returns a context carrying the authenticated user's id.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ctxKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
