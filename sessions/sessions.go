// Package sessions issues and verifies the signed session cookie.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/meinhoongagan/tutor-booking/models"
	"go.uber.org/zap"
)

const (
	CookieName = "session"
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrRevoked      = errors.New("session revoked")
)

// Claims is the JWT payload of a session token.
type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is the verified identity behind a request.
type Session struct {
	UserID    string      `json:"userId"`
	Role      models.Role `json:"role"`
	IssuedAt  time.Time   `json:"issuedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
	TokenID   string      `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == models.RoleAdmin
}

// Revoker remembers logged-out token ids until they would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Options struct {
	Secret  []byte
	TTL     time.Duration
	Secure  bool
	Revoker Revoker
	Logger  *zap.Logger
	// Now overrides the clock used when issuing tokens.
	Now func() time.Time
}

type Manager struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoker Revoker
	logger  *zap.Logger
	now     func() time.Time
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		secret:  opts.Secret,
		ttl:     opts.TTL,
		secure:  opts.Secure,
		revoker: opts.Revoker,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Key returns the HMAC signing key.
func (m *Manager) Key() []byte {
	return m.secret
}

// Issue signs a new token for the user.
func (m *Manager) Issue(userID string, role models.Role) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return m.secret, nil
}

// Parse verifies the signature, expiry and revocation of a raw token.
func (m *Manager) Parse(ctx context.Context, raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, m.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return m.FromToken(ctx, token)
}

// FromToken converts an already verified token into a Session, rejecting
// tokens without an identity and tokens that were revoked.
func (m *Manager) FromToken(ctx context.Context, token *jwt.Token) (*Session, error) {
	if token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" || !claims.Role.Valid() || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	if m.revoker != nil && claims.ID != "" {
		revoked, err := m.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}

	s := &Session{
		UserID:    claims.UserID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	return s, nil
}

// CreateSession issues a token and writes it as the session cookie.
func (m *Manager) CreateSession(c *fiber.Ctx, userID string, role models.Role) (*Session, error) {
	token, claims, err := m.Issue(userID, role)
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return &Session{
		UserID:    userID,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		TokenID:   claims.ID,
	}, nil
}

// GetSession returns the session of the request or nil. Every failure reads
// as "not logged in".
func (m *Manager) GetSession(c *fiber.Ctx) *Session {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return nil
	}
	s, err := m.Parse(c.UserContext(), raw)
	if err != nil {
		m.logger.Debug("Ignoring session cookie", zap.Error(err))
		return nil
	}
	return s
}

// DestroySession revokes the current token, if any, and clears the cookie.
func (m *Manager) DestroySession(c *fiber.Ctx) {
	if s := m.GetSession(c); s != nil && m.revoker != nil && s.TokenID != "" {
		if err := m.revoker.Revoke(c.UserContext(), s.TokenID, s.ExpiresAt); err != nil {
			m.logger.Warn("Failed to revoke session", zap.String("user_id", s.UserID), zap.Error(err))
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
