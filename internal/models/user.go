package models

import "time"

type User struct {
	ID            string    `db:"user_id"`
	Email         string    `db:"email"`
	PasswordHash  string    `db:"password_hash"`
	FullName      string    `db:"full_name"`
	ProfilePicURL *string   `db:"profile_pic_url"`
	CreatedAt     time.Time `db:"created_at"`
}
