package sqlite

import (
	"context"
	"testing"

	"github.com/sakif/portfolio-server/internal/model"
)

func TestCreateMessage(t *testing.T) {
	db := newTestDB(t)

	msg := &model.Message{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Nice portfolio!",
	}

	if err := db.CreateMessage(context.Background(), msg); err != nil {
		t.Fatalf("CreateMessage() error = %v", err)
	}

	if msg.ID == "" {
		t.Error("CreateMessage() did not set message.ID")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("CreateMessage() did not set message.CreatedAt")
	}
}

func TestListMessages(t *testing.T) {
	db := newTestDB(t)

	if msgs, err := db.ListMessages(context.Background()); err != nil || len(msgs) != 0 {
		t.Fatalf("ListMessages() on empty db = %v, %v; want empty, nil", msgs, err)
	}

	for _, name := range []string{"a", "b"} {
		err := db.CreateMessage(context.Background(), &model.Message{
			Name:    name,
			Email:   name + "@example.com",
			Message: "hello",
		})
		if err != nil {
			t.Fatalf("CreateMessage() error = %v", err)
		}
	}

	msgs, err := db.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("ListMessages() returned %d messages, want 2", len(msgs))
	}
}
