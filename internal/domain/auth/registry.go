package auth

import (
	"errors"
	"sort"
	"sync"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidRole        = errors.New("unknown role")
)

// Account is the public view of a registered user; the digest never leaves
// the registry.
type Account struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type credential struct {
	passwordHash string
	role         string
}

// Registry maps usernames to credentials in memory. Accounts are append-only
// for the process lifetime: no update, no delete.
type Registry struct {
	mu       sync.RWMutex
	accounts map[string]credential
}

func NewRegistry() *Registry {
	return &Registry{accounts: make(map[string]credential)}
}

// SeedDefaultAdmin registers the built-in admin account. It only acts on an
// empty registry, so a restart never clobbers accounts added earlier in the
// same process.
func (r *Registry) SeedDefaultAdmin(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.accounts) > 0 {
		return nil
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	r.accounts[username] = credential{passwordHash: hash, role: RoleAdmin}
	return nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// failed verifications are indistinguishable to the caller.
func (r *Registry) Authenticate(username, password string) (Account, error) {
	r.mu.RLock()
	cred, ok := r.accounts[username]
	r.mu.RUnlock()
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if err := CheckPassword(cred.passwordHash, password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return Account{Username: username, Role: cred.role}, nil
}

// CreateAccount registers a new user with any of the three roles. The caller
// is responsible for the Admin check; the registry only enforces uniqueness
// and role validity.
func (r *Registry) CreateAccount(username, password, role string) error {
	if !ValidRole(role) {
		return ErrInvalidRole
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[username]; exists {
		return ErrDuplicateUsername
	}
	r.accounts[username] = credential{passwordHash: hash, role: role}
	return nil
}

// Accounts lists registered users sorted by username, digests excluded.
func (r *Registry) Accounts() []Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Account, 0, len(r.accounts))
	for username, cred := range r.accounts {
		out = append(out, Account{Username: username, Role: cred.role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}
