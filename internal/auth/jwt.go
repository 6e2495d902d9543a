package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, expired, malformed, or wrong token type. Callers must not
// distinguish the causes when reporting to clients.
var ErrInvalidToken = errors.New("invalid token")

// Token type discriminator values embedded in claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Token lifetimes. These are fixed: the short access window bounds the blast
// radius of a leaked bearer token, and there is no server-side revocation to
// compensate for longer ones.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the JWT claims carried by both token kinds. TokenType
// discriminates access from refresh so one can never stand in for the other.
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SubjectID parses the subject claim as a UUID and returns it as a string.
func (c *Claims) SubjectID() (string, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return "", fmt.Errorf("%w: parse subject: %v", ErrInvalidToken, err)
	}
	return id.String(), nil
}

// TokenService issues and verifies signed session tokens. The signing secret
// is injected once at construction and never read from the environment here.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the given symmetric secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateAccessToken creates a signed access token for the given user.
func (s *TokenService) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, TokenTypeAccess, AccessTokenTTL)
}

// GenerateRefreshToken creates a signed refresh token for the given user.
func (s *TokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.generate(userID, TokenTypeRefresh, RefreshTokenTTL)
}

func (s *TokenService) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}

	return signed, nil
}

// VerifyAccessToken validates signature, expiry, and token type, returning
// the claims of a valid access token.
func (s *TokenService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeAccess)
}

// VerifyRefreshToken validates signature, expiry, and token type, returning
// the claims of a valid refresh token.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return s.verify(tokenString, TokenTypeRefresh)
}

func (s *TokenService) verify(tokenString, wantType string) (*Claims, error) {
	// Expiry timestamps have second granularity; the one-second leeway keeps a
	// token valid through the exact second it expires in.
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithLeeway(time.Second))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		return nil, fmt.Errorf("%w: token type mismatch", ErrInvalidToken)
	}

	return claims, nil
}
