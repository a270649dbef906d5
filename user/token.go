package user

import (
	"fmt"
	"time"

	"github.com/bhavishkl/NoQue/config"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "noque"
	tokenLifetime = 7 * 24 * time.Hour
)

// GetJWT mints a session token for the user, valid for a week.
func (u *User) GetJWT() (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(tokenLifetime)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":   tokenIssuer,
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   expiry.Unix(),
	}).SignedString(config.GetSigningSecret())
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiry, nil
}

// GetTokenID validates a session token and returns the user id it carries.
func GetTokenID(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return config.GetSigningSecret(), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid token")
	}

	return id, nil
}
