// Package projects is the project CRUD service behind the gateway.
package projects

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("project not found")

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsOwner is the only authorization rule this service needs.
func (p *Project) IsOwner(userID string) bool {
	return p.OwnerID == userID
}

type Repo interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Project, error)
}
