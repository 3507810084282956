package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type Credential struct {
	Email    string
	Password string
	Role     string
	Name     string
}

// CredentialStore looks up a credential by email. It is injected into the
// auth service so the backing source (config seed, directory, DB) can change
// without touching the login flow.
type CredentialStore interface {
	Lookup(email string) (Credential, bool)
}

type StaticCredentialStore struct {
	byEmail map[string]Credential
}

func NewStaticCredentialStore(creds []Credential) *StaticCredentialStore {
	byEmail := make(map[string]Credential, len(creds))
	for _, c := range creds {
		byEmail[strings.ToLower(c.Email)] = c
	}
	return &StaticCredentialStore{byEmail: byEmail}
}

func (s *StaticCredentialStore) Lookup(email string) (Credential, bool) {
	c, ok := s.byEmail[strings.ToLower(email)]
	return c, ok
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (m *TokenManager) Issue(c Credential) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: strings.ToLower(c.Email),
		Role:  c.Role,
		Name:  c.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(c.Email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

type Service struct {
	store  CredentialStore
	tokens *TokenManager
}

func NewService(store CredentialStore, tokens *TokenManager) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

// Login verifies the credential and issues a bearer token. Lookup failures
// and password mismatches are indistinguishable to the caller.
func (s *Service) Login(email, password string) (string, Credential, error) {
	cred, ok := s.store.Lookup(email)
	if !ok {
		return "", Credential{}, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return "", Credential{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(cred)
	if err != nil {
		return "", Credential{}, err
	}

	return token, cred, nil
}
