package utils // package utils provides helper functions for session token handling

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/citywave/table-reservation/internal/model"
)

// SessionToken represents a signed JWT session token along with its
// expiry. The Token field contains the JWT string. Exp stores the
// expiration timestamp. A session token is the only session state there
// is: logging out simply discards it client-side, and the identity it
// names is re-resolved against the admin store on every request.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for an admin. The JWT
// carries the account id (sub), the username, the is_main flag and the
// standard exp/iat claims. ttlMin controls the lifetime in minutes.
func NewSessionToken(secret string, admin *model.AdminAccount, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"is_main":  admin.IsMain,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a signed session token and returns the
// account id it names. Only HMAC-signed tokens are accepted.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing subject")
	}
	return sub, nil
}
