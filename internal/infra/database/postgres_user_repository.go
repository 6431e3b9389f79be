package database

import (
	"context"
	"database/sql"
	"fmt"

	"svitlo_notification_bot/internal/domain/user"

	"github.com/lib/pq"
)

// Custom errors
var ErrUserNotFound = fmt.Errorf("user profile not found")

// PostgresUserRepository persists user profiles in the user_profiles table:
// telegram_id BIGINT PRIMARY KEY, area TEXT, queues TEXT[],
// notifications_enabled BOOLEAN, reminder_offsets INT[], updated_at TIMESTAMPTZ.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Get(ctx context.Context, telegramID int64) (*user.Profile, error) {
	query := `SELECT area, queues, notifications_enabled, reminder_offsets
               FROM user_profiles WHERE telegram_id = $1`

	p := &user.Profile{}
	var queues pq.StringArray
	var offsets pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(&p.Area, &queues, &p.NotificationsEnabled, &offsets)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user profile: %w", err)
	}

	p.Queues = []string(queues)
	p.ReminderOffsets = make([]int, 0, len(offsets))
	for _, o := range offsets {
		p.ReminderOffsets = append(p.ReminderOffsets, int(o))
	}
	return p, nil
}

func (r *PostgresUserRepository) Save(ctx context.Context, telegramID int64, p *user.Profile) error {
	query := `INSERT INTO user_profiles (telegram_id, area, queues, notifications_enabled, reminder_offsets, updated_at)
               VALUES ($1, $2, $3, $4, $5, NOW())
               ON CONFLICT (telegram_id) DO UPDATE
               SET area = EXCLUDED.area,
                   queues = EXCLUDED.queues,
                   notifications_enabled = EXCLUDED.notifications_enabled,
                   reminder_offsets = EXCLUDED.reminder_offsets,
                   updated_at = NOW()`

	offsets := make(pq.Int64Array, 0, len(p.ReminderOffsets))
	for _, o := range p.ReminderOffsets {
		offsets = append(offsets, int64(o))
	}

	_, err := r.db.ExecContext(ctx, query, telegramID, p.Area, pq.StringArray(p.Queues), p.NotificationsEnabled, offsets)
	if err != nil {
		return fmt.Errorf("error saving user profile: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) ListAll(ctx context.Context) (map[int64]*user.Profile, error) {
	query := `SELECT telegram_id, area, queues, notifications_enabled, reminder_offsets
               FROM user_profiles`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing user profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(map[int64]*user.Profile)
	for rows.Next() {
		var telegramID int64
		p := &user.Profile{}
		var queues pq.StringArray
		var offsets pq.Int64Array
		if err := rows.Scan(&telegramID, &p.Area, &queues, &p.NotificationsEnabled, &offsets); err != nil {
			return nil, fmt.Errorf("error scanning user profile: %w", err)
		}
		p.Queues = []string(queues)
		p.ReminderOffsets = make([]int, 0, len(offsets))
		for _, o := range offsets {
			p.ReminderOffsets = append(p.ReminderOffsets, int(o))
		}
		profiles[telegramID] = p
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user profiles: %w", err)
	}
	return profiles, nil
}
