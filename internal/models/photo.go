package models

import "time"

type Photo struct {
	ID         string    `db:"photo_id"`
	EntryID    string    `db:"entry_id"`
	URL        string    `db:"photo_url"`
	UserID     string    `db:"user_id"`
	UploadedAt time.Time `db:"uploaded_at"`
}
