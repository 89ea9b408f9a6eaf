package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer signs HS256 tokens carrying {id, role, exp}.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(p Principal) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}

	id := p.RestaurantID
	if p.IsAdmin() {
		id = AdminID
	}

	claims := jwt.MapClaims{
		"id":   id,
		"role": string(p.Role),
		"exp":  i.now().Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
