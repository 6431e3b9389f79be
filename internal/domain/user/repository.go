package user

import "context"

// Repository persists user profiles keyed by Telegram ID.
type Repository interface {
	Get(ctx context.Context, telegramID int64) (*Profile, error)
	Save(ctx context.Context, telegramID int64, profile *Profile) error
	// ListAll returns a snapshot of every profile for the polling worker.
	ListAll(ctx context.Context) (map[int64]*Profile, error)
}
