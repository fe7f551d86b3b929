package repository

import (
	"context"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
)

// RepositoryInterface is the persistence gateway for books and their authors.
// All methods use the transaction bound to ctx when there is one.
type RepositoryInterface interface {
	// Insert stores the book (version 1) and one association row per author.
	Insert(ctx context.Context, b model.NewBook) (*model.Book, error)

	// Update writes the scalar fields, increments the version and replaces
	// the whole author set. The version check and the write are one statement:
	//   - *core.NotFoundError when the id does not exist
	//   - *core.OptimisticLockError when the stored version differs
	Update(ctx context.Context, u model.BookUpdate) (*model.Book, error)

	// GetPublishStatusByID reads only the status column. The caller is
	// expected to have checked existence; a missing row is core.ErrDataIntegrity.
	GetPublishStatusByID(ctx context.Context, id model.BookID) (model.PublishStatus, error)
}

// QueryServiceInterface serves read models joining books and authors.
type QueryServiceInterface interface {
	// FindDetailByID returns nil, nil when the book does not exist.
	// Authors are ordered by id ascending.
	FindDetailByID(ctx context.Context, id model.BookID) (*model.BookDTO, error)

	// FindSummariesByAuthorID lists the books of an author ordered by book id.
	FindSummariesByAuthorID(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookSummaryDTO, error)
}
