// Package profiles exposes the public-facing view of a user account.
package profiles

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type Profile struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatarUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Repo interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}
