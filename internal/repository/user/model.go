package user

import "time"

type UserDB struct {
	ID                  int64
	Email               string
	PasswordHash        string
	FullName            string
	Role                string
	CourierID           *int64
	Approval            string
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
}
