package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/shared/core"
	"bookcatalog/pkg/database"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// PostgresRepository implements RepositoryInterface on pgx
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new book repository instance
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert creates the book row with version 1, then its author associations
func (r *PostgresRepository) Insert(ctx context.Context, b model.NewBook) (*model.Book, error) {
	if len(b.AuthorIDs) == 0 {
		return nil, model.ErrNoAuthors
	}

	query := `
        INSERT INTO book (title, price, status, version)
        VALUES ($1, $2::numeric, $3, 1)
        RETURNING id, version
    `

	var (
		id      int64
		version int
	)
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, query, b.Title, b.Price.String(), int(b.Status)).
		Scan(&id, &version)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}

	bookID := core.MustID[model.Book](id)
	if err := r.ReplaceAuthors(ctx, bookID, b.AuthorIDs); err != nil {
		return nil, err
	}

	return &model.Book{
		ID:        bookID,
		Title:     b.Title,
		Price:     b.Price,
		Status:    b.Status,
		AuthorIDs: b.AuthorIDs,
		Version:   version,
	}, nil
}

// Update updates book with optimistic locking, then replaces its authors
func (r *PostgresRepository) Update(ctx context.Context, u model.BookUpdate) (*model.Book, error) {
	if len(u.Book.AuthorIDs) == 0 {
		return nil, model.ErrNoAuthors
	}

	// Critical: WHERE clause includes version check
	query := `
        UPDATE book
        SET
            title = $1,
            price = $2::numeric,
            status = $3,
            version = version + 1
        WHERE id = $4 AND version = $5
        RETURNING version
    `

	var version int
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		u.Book.Title,
		u.Book.Price.String(),
		int(u.Book.Status),
		u.ID.Value(),
		u.ExpectedVersion,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			exists, checkErr := r.existsByID(ctx, u.ID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, &core.NotFoundError{Resource: model.ResourceBook, ID: u.ID.Value()}
			}
			return nil, &core.OptimisticLockError{
				Resource:        model.ResourceBook,
				ID:              u.ID.Value(),
				ExpectedVersion: u.ExpectedVersion,
			}
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	if err := r.ReplaceAuthors(ctx, u.ID, u.Book.AuthorIDs); err != nil {
		return nil, err
	}

	return &model.Book{
		ID:        u.ID,
		Title:     u.Book.Title,
		Price:     u.Book.Price,
		Status:    u.Book.Status,
		AuthorIDs: u.Book.AuthorIDs,
		Version:   version,
	}, nil
}

// ReplaceAuthors makes authorIDs the complete author set of the book:
// every existing association is deleted, then the new list is inserted.
// It must run inside the caller's transaction to be all-or-nothing.
func (r *PostgresRepository) ReplaceAuthors(ctx context.Context, bookID model.BookID, authorIDs []authormodel.AuthorID) error {
	if len(authorIDs) == 0 {
		return model.ErrNoAuthors
	}

	conn := database.Conn(ctx, r.pool)

	if _, err := conn.Exec(ctx, `DELETE FROM book_author WHERE book_id = $1`, bookID.Value()); err != nil {
		return fmt.Errorf("failed to delete book authors: %w", err)
	}

	insert := `
        INSERT INTO book_author (book_id, author_id)
        SELECT $1, author_id FROM unnest($2::bigint[]) AS author_id
    `
	if _, err := conn.Exec(ctx, insert, bookID.Value(), core.Int64s(authorIDs)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolation:
				// An author vanished after validation
				return core.NewValidationError(core.Violation{Field: "authorIds", Message: "nonexistent author specified"})
			case pgUniqueViolation:
				return core.NewValidationError(core.Violation{Field: "authorIds", Message: "duplicate elements in list"})
			}
		}
		return fmt.Errorf("failed to insert book authors: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetPublishStatusByID(ctx context.Context, id model.BookID) (model.PublishStatus, error) {
	var raw int
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT status FROM book WHERE id = $1`, id.Value()).
		Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: status requested for missing book %d", core.ErrDataIntegrity, id.Value())
		}
		return 0, fmt.Errorf("failed to get book status: %w", err)
	}

	status, err := model.PublishStatusOf(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: book %d: %v", core.ErrDataIntegrity, id.Value(), err)
	}

	return status, nil
}

func (r *PostgresRepository) existsByID(ctx context.Context, id model.BookID) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM book WHERE id = $1)`, id.Value()).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}
