package domain

import "time"

type User struct {
	ID        int64
	Name      string
	Phone     string // unique
	Email     string // unique
	CreatedAt time.Time
}
