package models

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	Email        *string
	PhoneNumber  *string
	IsActive     bool
	IsStaff      bool
	MentorID     *string
	// MentorUsername is filled by queries that join the mentor row.
	MentorUsername *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
