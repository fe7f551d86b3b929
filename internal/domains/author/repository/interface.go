package repository

import (
	"context"

	"bookcatalog/internal/domains/author/model"
)

// RepositoryInterface is the persistence gateway for authors.
// All methods use the transaction bound to ctx when there is one.
type RepositoryInterface interface {
	// Insert stores a new author and returns it with its id and version 1.
	Insert(ctx context.Context, a model.NewAuthor) (*model.Author, error)

	// Update overwrites name and birth date and increments the version.
	// The version check and the write are a single statement:
	//   - *core.NotFoundError when the id does not exist
	//   - *core.OptimisticLockError when the stored version differs from ExpectedVersion
	Update(ctx context.Context, u model.AuthorUpdate) (*model.Author, error)

	// FindByID returns nil, nil when the author does not exist.
	FindByID(ctx context.Context, id model.AuthorID) (*model.Author, error)

	// FindByIDs returns the authors that exist among ids, ordered by id.
	// Missing ids are silently dropped; callers compare cardinalities.
	FindByIDs(ctx context.Context, ids []model.AuthorID) ([]model.Author, error)
}
