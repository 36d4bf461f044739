package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/gym-service/internal/domain"
)

// ErrTokenInvalid covers malformed, badly signed, expired or incomplete tokens.
var ErrTokenInvalid = errors.New("invalid token")

// TokenIssuer mints and verifies signed, time-boxed identity assertions.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer builds a new issuer. An empty secret or non-positive TTL is a
// configuration error.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Claims describes JWT payload. Field names match the tokens the web front-end decodes.
type Claims struct {
	SubjectID int64       `json:"id"`
	UserName  string      `json:"userName"`
	Role      domain.Role `json:"perfil"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject.
func (ti *TokenIssuer) Issue(subjectID int64, userName string, role domain.Role) (string, time.Time, error) {
	issuedAt := ti.now()
	expiresAt := issuedAt.Add(ti.ttl)
	claims := &Claims{
		SubjectID: subjectID,
		UserName:  userName,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates the token and returns its claims.
func (ti *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return ti.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.SubjectID <= 0 || claims.UserName == "" || !claims.Role.Valid() {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TTL returns the validity window applied to new tokens.
func (ti *TokenIssuer) TTL() time.Duration {
	return ti.ttl
}
