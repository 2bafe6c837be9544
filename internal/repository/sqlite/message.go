package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/portfolio-server/internal/model"
	"github.com/sakif/portfolio-server/internal/repository"
)

var _ repository.MessageRepository = (*DB)(nil)

// Create appends a contact-form message. Messages are never updated or
// deleted by the application, so this and List are the whole surface.
func (db *DB) CreateMessage(ctx context.Context, message *model.Message) error {
	message.ID = xid.New().String()
	message.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (id, name, email, message, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		message.ID,
		message.Name,
		message.Email,
		message.Message,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating message: %w", err)
	}

	return nil
}

func (db *DB) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, message, created_at
		 FROM messages
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages: %w", err)
	}
	defer rows.Close()

	messages := []model.Message{}

	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}

	return messages, nil
}
