package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ballebaaz/internal/ports"
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// CareerRecordCreated reports whether a fresh career record was seeded.
	CareerRecordCreated bool
}

// Service handles post-auth onboarding for new club members.
type Service struct {
	accounts ports.AccountPort
	careers  ports.CareerBootstrapPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/careers must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, careers ports.CareerBootstrapPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		careers:  careers,
		rng:      rng,
	}
}

// OnboardNewPlayer initializes the profile and career record for a newly
// created account. Profile updates are best-effort; the career record seed is
// what later reconciliation runs depend on.
func (s *Service) OnboardNewPlayer(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.careers == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		result.ProfileUpdateErr = err
	}

	created, err := s.careers.EnsureCareerRecord(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("failed to seed career record: %w", err)
	}
	result.CareerRecordCreated = created

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Swift", "Fearless", "Steady", "Crafty", "Mighty", "Patient", "Fiery", "Classy", "Gritty", "Nimble"}
	nouns := []string{"Opener", "Finisher", "Spinner", "Quick", "Keeper", "Slogger", "Allrounder", "Skipper", "Nightwatchman", "Fielder"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
