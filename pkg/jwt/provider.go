package jwt

import (
	"errors"
	"time"

	"merchex/user"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidTokenType = errors.New("invalid token type")
)

type JWTProvider struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	now        func() time.Time
}

func NewJWTProvider(secret string, accessTTL, refreshTTL time.Duration) *JWTProvider {
	return &JWTProvider{
		Secret:     secret,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (p *JWTProvider) GenerateAccessToken(u user.User) (string, error) {
	return p.sign(u, tokenTypeAccess, p.AccessTTL)
}

func (p *JWTProvider) GenerateRefreshToken(u user.User) (string, error) {
	return p.sign(u, tokenTypeRefresh, p.RefreshTTL)
}

// ParseAccessToken verifies signature, expiry and token type of a bearer
// token and returns its claims.
func (p *JWTProvider) ParseAccessToken(accessToken string) (jwt.MapClaims, error) {
	return p.parse(accessToken, tokenTypeAccess)
}

// ParseRefreshToken verifies signature, expiry and token type and returns
// the user id the token was issued for.
func (p *JWTProvider) ParseRefreshToken(refreshToken string) (int64, error) {
	claims, err := p.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return 0, err
	}

	// JSON numbers decode as float64.
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return 0, errors.New("invalid user id")
	}
	return int64(userID), nil
}

func (p *JWTProvider) parse(token, tokenType string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(p.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claimType, ok := claims["type"].(string); !ok || claimType != tokenType {
		return nil, ErrInvalidTokenType
	}
	return claims, nil
}

func (p *JWTProvider) sign(u user.User, tokenType string, ttl time.Duration) (string, error) {
	now := p.now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"type":     tokenType,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(p.Secret))
}
