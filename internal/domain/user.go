package domain

import "time"

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Created      time.Time  `json:"created"`
	Modified     *time.Time `json:"modified,omitempty"`
	LastLogin    time.Time  `json:"last_login"`
	Token        *string    `json:"token,omitempty"`
	IsActive     bool       `json:"isactive"`
	Phones       []Phone    `json:"phones"`
}
