package sqlite

import (
	"context"
	"fmt"

	"github.com/rkhatiwada/restro/internal/models"
)

// LoadUsers reads the full user collection, keyed by username.
func (s *SQLiteStore) LoadUsers(ctx context.Context) (map[string]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username, id, password, display_name, role FROM users",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make(map[string]*models.User)
	for rows.Next() {
		user := &models.User{}
		var role string
		if err := rows.Scan(&user.Username, &user.ID, &user.Password, &user.DisplayName, &role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = models.Role(role)
		users[user.Username] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// SaveUsers replaces the stored user collection with the given one.
func (s *SQLiteStore) SaveUsers(ctx context.Context, users map[string]*models.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for _, user := range users {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, id, password, display_name, role) VALUES (?, ?, ?, ?, ?)",
			user.Username, user.ID, user.Password, user.DisplayName, string(user.Role),
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %q: %w", user.Username, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit users: %w", err)
	}
	return nil
}
