package entity

import "time"

type User struct {
	ID          int64
	Email       string
	Username    string
	Password    string // hashed
	IsVerified  bool
	CreatedAt   time.Time
	LastLoginAt *time.Time
}
