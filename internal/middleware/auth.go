package middleware

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-blog/inkwell/internal/domain"
	jwt_internal "github.com/inkwell-blog/inkwell/internal/jwt"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

const (
	accessTokenCookie = "accessToken"
	flashCookieError  = "flash_error"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// OptionalAuth populates the user context if a valid token exists but never
// rejects. Applied globally so templates can show the right navigation.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := a.extractUser(r)
			if user != nil {
				ctx := context.WithValue(r.Context(), UserClaimsKey, user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous browsers to the login page with a flash.
func (a *Auth) RequireAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// RequireAdmin requires an authenticated user whose id equals the fixed
// admin id. Authenticated non-admins get a hard 403, the wrapped handler is
// never invoked.
func (a *Auth) RequireAdmin() func(http.Handler) http.Handler {
	return a.auth(true)
}

// extractUser extracts and validates the user from the session cookie.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	accessCookie, err := r.Cookie(accessTokenCookie)
	if err != nil {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(accessCookie.Value)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return nil, errInvalidClaims
	}
	name, ok := claims["name"].(string)
	if !ok {
		return nil, errInvalidClaims
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.User{
		Id:    int64(uidFloat),
		Name:  name,
		Email: email,
	}, nil
}

// Sentinel errors for extractUser
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if err == errInvalidClaims {
					logger.Log.Error("invalid jwt claims")
				}
				a.redirectToLogin(w, r, "You need to login or register to continue.")
				return
			}

			if adminOnly && !user.IsAdmin() {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// redirectToLogin sets a one-time flash cookie and sends the browser to the
// login page. Flash values are base64 encoded for safe cookie storage.
func (a *Auth) redirectToLogin(w http.ResponseWriter, r *http.Request, errorMsg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieError,
		Value:    base64.StdEncoding.EncodeToString([]byte(errorMsg)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// GetUserFromContext retrieves the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
