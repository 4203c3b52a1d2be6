package devserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const userContextKey contextKey = "devserver.user"

// Authenticator mints and verifies the dev server's HS256 bearer tokens.
// This stands in for the external identity provider during development;
// it is not an identity provider.
type Authenticator struct {
	secret []byte
	store  *Store
}

func NewAuthenticator(secret []byte, store *Store) *Authenticator {
	return &Authenticator{secret: secret, store: store}
}

// IssueToken creates a token for the given user, valid for 24 hours.
func (a *Authenticator) IssueToken(user User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.UID,
		"name": user.Username,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) userFromRequest(r *http.Request) (User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return User{}, errors.New("missing bearer token")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return User{}, errors.New("malformed authorization header")
	}

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return User{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("invalid claims")
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return User{}, errors.New("token has no subject")
	}
	username, _ := claims["name"].(string)
	if username == "" {
		username = uid
	}

	// Resolve-or-create mirrors how the production backend provisions a
	// local user row on first authenticated request.
	return a.store.EnsureUser(r.Context(), uid, username)
}

// Require rejects unauthenticated requests with 401.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.userFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// Optional attaches the user when a valid token is present and lets
// anonymous requests through.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.userFromRequest(r); err == nil {
			r = r.WithContext(withUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func userFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKey).(User)
	return user, ok
}
