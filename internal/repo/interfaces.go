// Package repo defines the storage interfaces the catalog consumes.
package repo

import (
	"context"
	"errors"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

var ErrNotFound = errors.New("metadata instance not found")

// EntityRepository manages entity records keyed by GUID.
type EntityRepository interface {
	Create(ctx context.Context, entity omr.EntityDetail) error
	Get(ctx context.Context, guid string) (omr.EntityDetail, error)
}

// RelationshipRepository manages relationship records and lookup by
// either end entity.
type RelationshipRepository interface {
	Create(ctx context.Context, relationship omr.Relationship) error
	Get(ctx context.Context, guid string) (omr.Relationship, error)
	ListByEntity(ctx context.Context, entityGUID string, limit int) ([]omr.Relationship, error)
}
