package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// ScorecardService issues signed share tokens for read-only scorecard links.
// Anyone holding a valid token can fetch the final scorecard of the named
// match without authenticating against the club server.
type ScorecardService struct {
	secret string
	issuer string
	ttl    time.Duration
}

const scorecardScope = "scorecard"

func NewScorecardService(secret, issuer string, ttl time.Duration) *ScorecardService {
	return &ScorecardService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateToken mints an HS256 share token for the given match, attributed to
// the requesting user.
func (s *ScorecardService) GenerateToken(userID, matchID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("scorecard service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("scorecard token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   userID,
		"exp":   time.Now().Add(s.ttl).Unix(),
		"match": matchID,
		"scope": scorecardScope,
		"jti":   fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken validates a share token and returns the match id it grants
// access to.
func (s *ScorecardService) VerifyToken(tokenString string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("scorecard service is nil")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid scorecard token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid scorecard token claims")
	}
	if claims["iss"] != s.issuer || claims["scope"] != scorecardScope {
		return "", fmt.Errorf("scorecard token not issued for this purpose")
	}
	matchID, _ := claims["match"].(string)
	if matchID == "" {
		return "", fmt.Errorf("scorecard token carries no match id")
	}
	return matchID, nil
}
