package user

import (
	"fmt"

	"dispatch/internal/entities"
)

func ToDomain(u *UserDB) (*entities.User, error) {
	if u == nil {
		return nil, nil
	}

	role := entities.RoleType(u.Role)
	if role != entities.RoleManager && role != entities.RoleCourier {
		return nil, fmt.Errorf("user %d: unknown role %q", u.ID, u.Role)
	}

	approval := entities.ApprovalType(u.Approval)
	switch approval {
	case entities.ApprovalPending, entities.ApprovalApproved, entities.ApprovalRejected:
	default:
		return nil, fmt.Errorf("user %d: unknown approval %q", u.ID, u.Approval)
	}

	return &entities.User{
		ID:                  u.ID,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		FullName:            u.FullName,
		Role:                role,
		CourierID:           u.CourierID,
		Approval:            approval,
		ResetToken:          u.ResetToken,
		ResetTokenExpiresAt: u.ResetTokenExpiresAt,
		CreatedAt:           u.CreatedAt,
	}, nil
}
