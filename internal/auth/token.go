// ABOUTME: JWT credential issue and verification for the admin area
// ABOUTME: Uses HS256 signing with configurable secret and validity window

package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// Identity is a fully verified credential: structure, signature, expiry and
// required claims have all been checked. Only an Identity authorizes
// state-mutating operations.
type Identity struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// ProvisionalIdentity is the result of a structure-and-expiry check only.
// The signature has NOT been verified. It exists as a distinct type so a
// provisional pass cannot be handed to code expecting an Identity.
type ProvisionalIdentity struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// Authenticator issues and verifies signed session credentials.
type Authenticator struct {
	secret        []byte
	ttl           time.Duration
	secureCookies bool
}

// NewAuthenticator creates an authenticator with the given signing secret
// and credential validity window. secureCookies marks issued cookies
// Secure; it must match the deployment's TLS posture.
func NewAuthenticator(secret []byte, ttl time.Duration, secureCookies bool) *Authenticator {
	return &Authenticator{secret: secret, ttl: ttl, secureCookies: secureCookies}
}

// TTL returns the credential validity window.
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// Issue creates a signed token embedding the identity, valid for the
// configured window from now.
func (a *Authenticator) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    id.ID,
		"email": id.Email,
		"name":  id.Name,
		"role":  id.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(a.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify validates the token fully: structure, signature, expiry and
// required claims, in that order. Every failure mode returns an error
// wrapping one of the package sentinels; it never panics.
func (a *Authenticator) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return identityFromClaims(claims)
}

// Inspect performs the degraded structure-only check: it decodes the
// payload and checks expiry WITHOUT verifying the signature. The result
// must be re-verified with Verify before any state-mutating operation.
func Inspect(tokenString string) (*ProvisionalIdentity, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var claims map[string]any
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if exp, ok := claims["exp"].(float64); ok {
		if time.Now().Unix() >= int64(exp) {
			return nil, ErrExpiredToken
		}
	}

	id, err := identityFromClaims(claims)
	if err != nil {
		return nil, err
	}

	return &ProvisionalIdentity{
		ID:    id.ID,
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
	}, nil
}

// identityFromClaims extracts the required claims, failing on any absence.
// JSON numbers decode as float64.
func identityFromClaims(claims map[string]any) (*Identity, error) {
	idNum, ok := claims["id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: id", ErrMissingClaim)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingClaim)
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("%w: role", ErrMissingClaim)
	}

	name, _ := claims["name"].(string)
	if name == "" {
		name = email
	}

	return &Identity{
		ID:    int64(idNum),
		Email: email,
		Name:  name,
		Role:  role,
	}, nil
}
