package service

import (
	"context"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
)

// ServiceInterface holds the book use cases. Each call runs in a single
// transaction; writes read their result back inside the same transaction.
type ServiceInterface interface {
	// Create validates the command (title, price, non-empty unique existing
	// authors) and inserts the book with version 1.
	Create(ctx context.Context, cmd model.CreateBookCommand) (*model.BookDTO, error)

	// Update loads the current book (*core.NotFoundError when absent),
	// validates the command including the publish status transition,
	// writes the new state guarded by cmd.Version and replaces the author set.
	Update(ctx context.Context, cmd model.UpdateBookCommand) (*model.BookDTO, error)

	// GetByID returns the detail view or *core.NotFoundError.
	GetByID(ctx context.Context, id model.BookID) (*model.BookDTO, error)

	// ListByAuthor returns the summaries of an author's books ordered by
	// book id, or *core.NotFoundError when the author does not exist.
	ListByAuthor(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookSummaryDTO, error)
}
