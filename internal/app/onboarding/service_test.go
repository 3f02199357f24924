package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
}

func (f fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	return f.updateErr
}

type fakeCareerBootstrapPort struct {
	ensureErr error
	calls     []string
	created   bool
}

func (f *fakeCareerBootstrapPort) EnsureCareerRecord(ctx context.Context, playerID string) (bool, error) {
	f.calls = append(f.calls, playerID)
	if f.ensureErr != nil {
		return false, f.ensureErr
	}
	return f.created, nil
}

func TestOnboardNewPlayer_SeedsCareerRecord(t *testing.T) {
	careers := &fakeCareerBootstrapPort{created: true}
	service := NewService(fakeAccountPort{}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewPlayer(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewPlayer returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("Expected no profile update error, got %v", result.ProfileUpdateErr)
	}

	if len(careers.calls) != 1 || careers.calls[0] != "user-1" {
		t.Fatalf("Expected 1 career seed call for user-1, got %v", careers.calls)
	}
	if !result.CareerRecordCreated {
		t.Fatal("Expected career record to be marked as created")
	}
}

func TestOnboardNewPlayer_AccountUpdateFailureStillSeedsCareer(t *testing.T) {
	careers := &fakeCareerBootstrapPort{created: true}
	service := NewService(fakeAccountPort{updateErr: errors.New("update failed")}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewPlayer(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewPlayer returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("Expected profile update error to be captured")
	}
	if len(careers.calls) != 1 {
		t.Fatalf("Expected 1 career seed call, got %d", len(careers.calls))
	}
}

func TestOnboardNewPlayer_CareerSeedFailureReturnsError(t *testing.T) {
	service := NewService(fakeAccountPort{}, &fakeCareerBootstrapPort{ensureErr: errors.New("storage failed")}, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewPlayer(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when the career record cannot be seeded")
	}
}

func TestOnboardNewPlayer_CareerRecordAlreadyExists(t *testing.T) {
	careers := &fakeCareerBootstrapPort{created: false}
	service := NewService(fakeAccountPort{}, careers, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewPlayer(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewPlayer returned error: %v", err)
	}
	if result.CareerRecordCreated {
		t.Fatal("Expected an existing record to be left alone")
	}
}
