// Package auth issues and verifies device and admin tokens. A device token
// is an HS256 JWT whose subject is the device id; it carries no user
// identity. Admin tokens carry the admin role and are only issued offline.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ozcitizen/backend/internal/id"
)

const issuer = "ozcitizen"

const (
	RoleDevice = "device"
	RoleAdmin  = "admin"
)

var (
	ErrMissingSecret = errors.New("token secret is empty")
	ErrInvalidToken  = errors.New("invalid device token")
	ErrNotAdmin      = errors.New("token lacks the admin role")
)

type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	hmac []byte
	ttl  time.Duration
	now  func() time.Time
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Service{hmac: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// IssueDevice creates a new device id and a token for it.
func (s *Service) IssueDevice() (device, token string, err error) {
	device = id.NewDeviceID()
	token, err = s.Issue(device)
	return device, token, err
}

func (s *Service) Issue(device string) (string, error) {
	return s.sign(device, RoleDevice, s.ttl)
}

// IssueAdmin creates a token allowed to change data shared by all devices.
func (s *Service) IssueAdmin(name string, ttl time.Duration) (string, error) {
	if name == "" {
		return "", errors.New("admin name is empty")
	}
	return s.sign("admin:"+name, RoleAdmin, ttl)
}

func (s *Service) sign(subject, role string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

// Parse verifies a device token and returns the device id it was issued for.
// Admin tokens are not device tokens and are rejected.
func (s *Service) Parse(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Role != RoleDevice && claims.Role != "" {
		return "", fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	return claims.Subject, nil
}

// ParseAdmin verifies token and requires the admin role. A valid token
// without it yields ErrNotAdmin.
func (s *Service) ParseAdmin(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Role != RoleAdmin {
		return "", ErrNotAdmin
	}
	return claims.Subject, nil
}

func (s *Service) parse(token string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !t.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
