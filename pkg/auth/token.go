package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "admin"
	issuer    = "interest-waitlist"

	DefaultTokenTTL = 12 * time.Hour
)

var (
	ErrMissingSecret = errors.New("auth: signing secret is empty")
	ErrInvalidToken  = errors.New("auth: invalid token")
	ErrForbiddenRole = errors.New("auth: token does not carry the admin role")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminTokens issues and verifies HS256 tokens for the administrative endpoints.
type AdminTokens struct {
	secret []byte
	now    func() time.Time
}

func NewAdminTokens(secret string) (*AdminTokens, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	return &AdminTokens{secret: []byte(secret), now: time.Now}, nil
}

func (a *AdminTokens) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := a.now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}

	return signed, nil
}

func (a *AdminTokens) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role != RoleAdmin {
		return nil, ErrForbiddenRole
	}

	return claims, nil
}

// Verify satisfies router.TokenVerifier.
func (a *AdminTokens) Verify(tokenStr string) (string, error) {
	claims, err := a.Parse(tokenStr)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}
