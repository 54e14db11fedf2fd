package content

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// Source is implemented by every reportable content kind.
type Source interface {
	// TargetType returns the report target tag this source owns.
	TargetType() models.TargetType

	// Models returns the GORM model pointers the source stores.
	Models() []interface{}

	// Exists reports whether the entity is still live.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes the entity. It returns apperrors.ErrNotFound when there
	// is nothing to delete.
	Delete(ctx context.Context, id int64) error
}
