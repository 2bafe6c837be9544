package model

import "time"

// Message is a contact-form submission.
//
// Messages are append-only: the application creates them and never updates
// or deletes them. There is no HTTP read surface either — the collection is
// read out-of-band by the site owner.
type Message struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Email     string    `json:"email"     db:"email"`
	Message   string    `json:"message"   db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
