package store

import (
	"strings"
	"testing"

	"savings_ledger/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var _ ledger.BookFinder = (*Store)(nil)

func TestRegisterAndAuthenticate(t *testing.T) {
	s := New(bcrypt.MinCost)

	u, err := s.Register(" Ana Maria ", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana maria", u.ID)
	assert.Equal(t, "Ana Maria", u.Username)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := s.Authenticate("ANA MARIA", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Authenticate("ana maria", "wrong-pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate("nobody", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	s := New(bcrypt.MinCost)
	cases := []struct {
		name, user, pw, confirm string
		want                    error
	}{
		{"too short", "ab", "secret1", "secret1", ErrInvalidUsername},
		{"too long", strings.Repeat("a", 33), "secret1", "secret1", ErrInvalidUsername},
		{"bad chars", "ana!", "secret1", "secret1", ErrInvalidUsername},
		{"weak password", "ana", "12345", "12345", ErrWeakPassword},
		{"mismatch", "ana", "secret1", "secret2", ErrPasswordMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(tc.user, tc.pw, tc.confirm)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Zero(t, s.Len())
}

func TestRegisterDuplicateIsCaseInsensitive(t *testing.T) {
	s := New(bcrypt.MinCost)
	_, err := s.Register("ana_1", "secret1", "secret1")
	require.NoError(t, err)
	_, err = s.Register("ANA_1", "secret1", "secret1")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestBooksAreIsolated(t *testing.T) {
	s := New(bcrypt.MinCost)
	for _, n := range []string{"ana", "bob"} {
		_, err := s.Register(n, "secret1", "secret1")
		require.NoError(t, err)
	}
	e := ledger.NewEngine(s)
	_, err := e.Deposit(ledger.Main("ana"), 100, "")
	require.NoError(t, err)

	bob, err := s.Book("bob")
	require.NoError(t, err)
	assert.Zero(t, bob.Main().Balance())

	_, err = s.Book("carol")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = s.User("carol")
	require.ErrorIs(t, err, ErrUserNotFound)
}
