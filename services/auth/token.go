package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"vegholic-api/models"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer mints session tokens for verified users.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
	// Accepts reports whether a previously issued token is still usable.
	Accepts(token string) bool
}

// JWTIssuer signs HS256 tokens carrying the user id and phone.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWTIssuer) Issue(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID.Hex(),
		"phone": user.Phone,
		"jti":   uuid.NewString(),
	}
	if j.ttl > 0 {
		claims["exp"] = j.now().Add(j.ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTIssuer) Accepts(token string) bool {
	_, err := j.Parse(token)
	return err == nil
}

// Parse validates the token and returns the user id it was issued for.
func (j *JWTIssuer) Parse(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}

// PhoneTokenIssuer hands out the demo "<phone>-token" credential.
type PhoneTokenIssuer struct{}

func (PhoneTokenIssuer) Issue(user models.User) (string, error) {
	return user.Phone + "-token", nil
}

func (PhoneTokenIssuer) Accepts(token string) bool {
	return strings.HasSuffix(token, "-token")
}
