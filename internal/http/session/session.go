package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid session cookie")

// Session is what the frontend knows about a signed-in user: the backend API
// token plus enough profile to render the header. The backend stays the
// authority; nothing here is stored server side.
type Session struct {
	ID        string    `json:"id"` // keys per-session state (console registry)
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsStaff   bool      `json:"is_staff"`
	ExpiresAt time.Time `json:"expires_at"`
}

func New(token, email, name string, isStaff bool, ttl time.Duration) Session {
	return Session{
		ID:        uuid.New().String(),
		Token:     token,
		Email:     email,
		Name:      name,
		IsStaff:   isStaff,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func (s Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Codec signs sessions into a cookie value: base64(json).base64(hmac).
type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	TTL        time.Duration
}

func NewCodec(secret []byte, cookieName string, secure bool, ttl time.Duration) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, TTL: ttl}
}

func (c *Codec) Encode(s Session) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*Session, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok {
		return nil, ErrInvalid
	}
	if !verify(c.Secret, payload, sig) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ErrInvalid
	}
	if s.Token == "" || s.Expired() {
		return nil, ErrInvalid
	}
	return &s, nil
}

func (c *Codec) CookieMaxAge() int {
	return int(c.TTL.Seconds())
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verify(secret []byte, payload, sig string) bool {
	expected := sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(sig))
}
