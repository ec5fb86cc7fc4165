package topics

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Subscriptions tracks who receives voting reminders.
type Subscriptions struct {
	conn *sql.DB
	now  func() time.Time
}

func NewSubscriptions(conn *sql.DB) *Subscriptions {
	return &Subscriptions{conn: conn, now: time.Now}
}

// Subscribe is a no-op for users already subscribed.
func (s *Subscriptions) Subscribe(ctx context.Context, userID string) error {
	res, err := s.conn.ExecContext(ctx, `
		INSERT INTO subscriber (user_id, subscribed_at)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.Info("user subscribed", "user_id", userID)
	}
	return nil
}

func (s *Subscriptions) Unsubscribe(ctx context.Context, userID string) error {
	if _, err := s.conn.ExecContext(ctx, `DELETE FROM subscriber WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	slog.Info("user unsubscribed", "user_id", userID)
	return nil
}

// ListSubscribers returns subscriber ids in subscription order.
func (s *Subscriptions) ListSubscribers(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT user_id FROM subscriber ORDER BY subscribed_at, user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	users := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		users = append(users, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subscribers: %w", err)
	}
	return users, nil
}
