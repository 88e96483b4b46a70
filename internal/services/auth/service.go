package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mveale/worddragon/internal/dependencies/clock"
	"github.com/mveale/worddragon/internal/model"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims identifies the player a token was issued to
type Claims struct {
	GameID   model.GameID
	PlayerID model.PlayerID
	Expiry   time.Time
}

// Service issues and verifies stateless player tokens. Tokens are signed
// with HMAC-SHA256 so the server keeps no session state; a token is only
// valid for the game it was issued for.
type Service struct {
	secret []byte
	clock  clock.Clock

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	Secret        string
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		secret:        []byte(cfg.Secret),
		clock:         clock,
		tokenDuration: cfg.TokenDuration,
	}
}

// IssueToken creates a signed token binding a player to a game
func (s *Service) IssueToken(gameID model.GameID, playerID model.PlayerID) string {
	expiry := s.clock.Now().Add(s.tokenDuration)
	payload := fmt.Sprintf("%s:%s:%d", gameID, playerID, expiry.Unix())
	return payload + "." + s.sign(payload)
}

// VerifyToken checks a token's signature and expiry and returns its claims
func (s *Service) VerifyToken(token string) (*Claims, error) {
	payload, signature, found := strings.Cut(token, ".")
	if !found {
		return nil, ErrInvalidToken
	}

	expected := s.sign(payload)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, ErrInvalidToken
	}

	parts := strings.Split(payload, ":")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}

	expiryUnix, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	expiry := time.Unix(expiryUnix, 0)

	if s.clock.Now().After(expiry) {
		return nil, ErrTokenExpired
	}

	return &Claims{
		GameID:   model.GameID(parts[0]),
		PlayerID: model.PlayerID(parts[1]),
		Expiry:   expiry,
	}, nil
}

// VerifyTokenForGame verifies a token and checks it was issued for the given game
func (s *Service) VerifyTokenForGame(token string, gameID model.GameID) (*Claims, error) {
	claims, err := s.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	if claims.GameID != gameID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// sign computes the URL-safe signature for a payload
func (s *Service) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Interface for dependency injection
type ServiceInterface interface {
	IssueToken(gameID model.GameID, playerID model.PlayerID) string
	VerifyToken(token string) (*Claims, error)
	VerifyTokenForGame(token string, gameID model.GameID) (*Claims, error)
}

var _ ServiceInterface = (*Service)(nil)
