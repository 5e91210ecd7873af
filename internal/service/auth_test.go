package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/domain"
	internal_errors "github.com/inkwell-blog/inkwell/internal/errors"
)

type MockAuthStorage struct {
	MockSaveUser func(user domain.User) (domain.UserId, error)
	MockUser     func(email string) (domain.User, error)
	MockUserById func(id domain.UserId) (domain.User, error)
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.MockSaveUser != nil {
		return m.MockSaveUser(user)
	}
	return 1, nil
}

func (m *MockAuthStorage) User(email string) (domain.User, error) {
	if m.MockUser != nil {
		return m.MockUser(email)
	}
	return domain.User{}, notFound()
}

func (m *MockAuthStorage) UserById(id domain.UserId) (domain.User, error) {
	if m.MockUserById != nil {
		return m.MockUserById(id)
	}
	return domain.User{}, notFound()
}

type MockJwt struct {
	MockNewToken func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.MockNewToken != nil {
		return m.MockNewToken(user)
	}
	return "token", nil
}

func notFound() error {
	return &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
}

func TestRegisterHashesPassword(t *testing.T) {
	var saved domain.User
	storage := &MockAuthStorage{
		MockSaveUser: func(user domain.User) (domain.UserId, error) {
			saved = user
			return 7, nil
		},
	}
	auth := NewAuth(storage, &MockJwt{})

	user, token, err := auth.Register("Alice", "Alice@Mail.ru", "secretpass")
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.Id)
	assert.Equal(t, "alice@mail.ru", saved.Email, "email must be lowercased")
	assert.NotEqual(t, "secretpass", saved.PassHash, "plaintext must never be stored")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("secretpass")))
	assert.Equal(t, "token", token)
}

func TestRegisterDuplicateEmailCreatesNothing(t *testing.T) {
	saveCalled := false
	storage := &MockAuthStorage{
		MockUser: func(email string) (domain.User, error) {
			return domain.User{Id: 1, Email: email}, nil
		},
		MockSaveUser: func(user domain.User) (domain.UserId, error) {
			saveCalled = true
			return 0, nil
		},
	}
	auth := NewAuth(storage, &MockJwt{})

	_, _, err := auth.Register("Bob", "taken@mail.ru", "secretpass")
	require.Error(t, err)

	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, e.StatusCode)
	assert.False(t, saveCalled, "no second user may be created")
}

func TestLoginUnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storage := &MockAuthStorage{
		MockUser: func(email string) (domain.User, error) {
			if email == "known@mail.ru" {
				return domain.User{Id: 2, Email: email, PassHash: string(hash)}, nil
			}
			return domain.User{}, notFound()
		},
	}
	auth := NewAuth(storage, &MockJwt{})

	_, _, errUnknown := auth.Login("missing@mail.ru", "whatever")
	_, _, errWrongPass := auth.Login("known@mail.ru", "wrongpass")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error(), "error must not leak which emails exist")

	e, ok := errUnknown.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storage := &MockAuthStorage{
		MockUser: func(email string) (domain.User, error) {
			return domain.User{Id: 2, Email: email, PassHash: string(hash)}, nil
		},
	}
	auth := NewAuth(storage, &MockJwt{
		MockNewToken: func(user domain.User) (string, error) {
			assert.Equal(t, int64(2), user.Id)
			return "signed", nil
		},
	})

	user, token, err := auth.Login("Known@Mail.ru", "rightpass")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.Id)
	assert.Equal(t, "signed", token)
}
