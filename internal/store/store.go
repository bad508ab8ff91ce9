// Package store keeps the registered users of a running process and the
// books they own. Nothing is persisted; a store lives as long as the process.
package store

import (
	"errors"                         // Sentinel errors
	"regexp"                         // Username character rule
	"savings_ledger/internal/domain" // Importing domain models
	"savings_ledger/internal/ledger" // Books owned by users
	"strings"                        // Identity normalization
	"sync"                           // Guards the user map
	"time"                           // Registration time
	"unicode/utf8"                   // Length in characters

	"golang.org/x/crypto/bcrypt" // Password hashing
)

var (
	ErrInvalidUsername    = errors.New("username must be 3-32 characters of letters, digits, spaces, _ or -")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserExists         = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

const (
	minUsernameLen = 3  // Shortest username
	maxUsernameLen = 32 // Longest username
	minPasswordLen = 6  // Shortest password
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_\-\s]+$`) // Letters, digits, spaces, _ and -

// record is one registered user with the book they own
type record struct {
	user domain.User  // Credentials and display name
	book *ledger.Book // Main balance and goals
}

// Store maps a user identity to its credential and book. Identities are
// the lowercase usernames.
type Store struct {
	mu    sync.RWMutex       // Guards users
	users map[string]*record // Users by identity
	cost  int                // bcrypt cost
	clock func() time.Time   // Registration clock
}

// New returns an empty store hashing passwords with the given bcrypt cost.
// A cost of 0 selects bcrypt.DefaultCost.
func New(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost // Default hashing cost
	}
	return &Store{users: make(map[string]*record), cost: cost, clock: time.Now}
}

// Identity returns the store key of a username
func Identity(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks the length and character set of a username
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username) // Length in characters
	if n < minUsernameLen || n > maxUsernameLen || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks the minimum password length
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a user with an empty book
func (s *Store) Register(username, password, confirm string) (domain.User, error) {
	username = strings.TrimSpace(username) // Display name without padding
	if err := ValidateUsername(username); err != nil {
		return domain.User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return domain.User{}, err
	}
	if password != confirm {
		return domain.User{}, ErrPasswordMismatch // Confirmation must repeat the password
	}
	id := Identity(username) // Case-insensitive identity

	// Check if the username is taken before paying for the hash
	s.mu.RLock()
	_, taken := s.users[id]
	s.mu.RUnlock()
	if taken {
		return domain.User{}, ErrUserExists
	}

	// Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{ID: id, Username: username, PasswordHash: string(hash), CreatedAt: s.clock()}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another registration may have won while hashing
	if _, taken := s.users[id]; taken {
		return domain.User{}, ErrUserExists
	}
	s.users[id] = &record{user: u, book: ledger.NewBook()} // Empty main balance, no goals
	return u, nil
}

// Authenticate returns the user when username and password match
func (s *Store) Authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	rec, ok := s.users[Identity(username)] // Find user by identity
	s.mu.RUnlock()
	if !ok {
		return domain.User{}, ErrInvalidCredentials // Unknown user looks like a wrong password
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(rec.user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return rec.user, nil
}

// User returns the user registered under userID
func (s *Store) User(userID string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID] // Find user by identity
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return rec.user, nil
}

// Book implements ledger.BookFinder
func (s *Store) Book(userID string) (*ledger.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID] // Find user by identity
	if !ok {
		return nil, ErrUserNotFound
	}
	return rec.book, nil
}

// Len is the number of registered users
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
