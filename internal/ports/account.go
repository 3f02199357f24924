package ports

import "context"

// AccountPort maintains club member account profiles.
type AccountPort interface {
	// UpdateProfile sets the member's username and display name. Both are
	// applied as given; callers generate defaults for brand-new accounts.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
