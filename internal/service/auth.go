package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/errors"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

type AuthService interface {
	Register(name, email, password string) (domain.User, string, error)
	Login(email, password string) (domain.User, string, error)
	LoadUser(id domain.UserId) (domain.User, error)
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(email string) (domain.User, error)
	UserById(id domain.UserId) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage: storage, jwt: jwt}
}

// Register creates an account and returns the new user together with a
// session token, so a successful registration logs the user in without a
// separate login step. A duplicate email returns a 409 and never creates a
// second user.
func (a *Auth) Register(name, email, password string) (domain.User, string, error) {
	email = strings.ToLower(email)

	_, err := a.storage.User(email)
	if err == nil {
		return domain.User{}, "", &errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
	}
	if !errors.IsNotFound(err) {
		return domain.User{}, "", err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	user := domain.User{Name: name, Email: email, PassHash: string(passHash)}
	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, "", err
	}
	user.Id = id

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	return user, token, nil
}

// Login checks the credentials and returns the user and a session token.
// The error is identical whether the email is unknown or the password is
// wrong, so the endpoint leaks nothing about existing accounts.
func (a *Auth) Login(email, password string) (domain.User, string, error) {
	email = strings.ToLower(email)

	user, err := a.storage.User(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, "", invalidCredentials()
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return domain.User{}, "", invalidCredentials()
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return domain.User{}, "", err
	}

	return user, token, nil
}

// LoadUser rehydrates a user from a persisted session identifier.
func (a *Auth) LoadUser(id domain.UserId) (domain.User, error) {
	return a.storage.UserById(id)
}

func invalidCredentials() error {
	return &errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
}
