package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mveale/worddragon/internal/dependencies/mocks"
	"github.com/mveale/worddragon/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock, Config{Secret: "test-secret"})
}

func (s *ServiceSuite) TestIssueAndVerifyToken() {
	token := s.service.IssueToken("GAME12345678", "player-1")
	s.NotEmpty(token)

	claims, err := s.service.VerifyToken(token)
	s.Require().NoError(err)
	s.Equal(model.GameID("GAME12345678"), claims.GameID)
	s.Equal(model.PlayerID("player-1"), claims.PlayerID)
	s.Equal(s.clock.Now().Add(24*time.Hour).Unix(), claims.Expiry.Unix())
}

func (s *ServiceSuite) TestVerifyTokenForGame() {
	token := s.service.IssueToken("GAME12345678", "player-1")

	claims, err := s.service.VerifyTokenForGame(token, "GAME12345678")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), claims.PlayerID)

	_, err = s.service.VerifyTokenForGame(token, "OTHERGAME999")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsTamperedToken() {
	token := s.service.IssueToken("GAME12345678", "player-1")

	tampered := strings.Replace(token, "player-1", "player-2", 1)
	_, err := s.service.VerifyToken(tampered)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsWrongSecret() {
	other := New(s.clock, Config{Secret: "other-secret"})
	token := other.IssueToken("GAME12345678", "player-1")

	_, err := s.service.VerifyToken(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyRejectsGarbage() {
	for _, token := range []string{"", "nodot", "a.b", "a:b:c.badsig"} {
		_, err := s.service.VerifyToken(token)
		s.ErrorIs(err, ErrInvalidToken, "token %q", token)
	}
}

func (s *ServiceSuite) TestVerifyRejectsExpiredToken() {
	token := s.service.IssueToken("GAME12345678", "player-1")

	s.clock.Advance(24*time.Hour + time.Minute)

	_, err := s.service.VerifyToken(token)
	s.ErrorIs(err, ErrTokenExpired)
}

func (s *ServiceSuite) TestTokenIsValidJustBeforeExpiry() {
	token := s.service.IssueToken("GAME12345678", "player-1")

	s.clock.Advance(24*time.Hour - time.Second)

	_, err := s.service.VerifyToken(token)
	s.NoError(err)
}
