package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/shared/core"
	"bookcatalog/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgx
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const authorColumns = `id, name, birth_date, version`

// Insert creates the author row with version 1
func (r *postgresRepository) Insert(ctx context.Context, a model.NewAuthor) (*model.Author, error) {
	query := `
        INSERT INTO author (name, birth_date, version)
        VALUES ($1, $2, 1)
        RETURNING ` + authorColumns

	row := database.Conn(ctx, r.pool).QueryRow(ctx, query, a.Name, birthDateArg(a.BirthDate))

	created, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert author: %w", err)
	}

	return created, nil
}

// Update updates author with optimistic locking
func (r *postgresRepository) Update(ctx context.Context, u model.AuthorUpdate) (*model.Author, error) {
	// Critical: WHERE clause includes version check
	query := `
        UPDATE author
        SET
            name = $1,
            birth_date = $2,
            version = version + 1
        WHERE id = $3 AND version = $4
        RETURNING ` + authorColumns

	row := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		u.Name,
		birthDateArg(u.BirthDate),
		u.ID.Value(),
		u.ExpectedVersion,
	)

	updated, err := scanAuthor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the author is gone or the version moved on
			exists, checkErr := r.existsByID(ctx, u.ID)
			if checkErr != nil {
				return nil, checkErr
			}
			if !exists {
				return nil, &core.NotFoundError{Resource: model.ResourceAuthor, ID: u.ID.Value()}
			}
			return nil, &core.OptimisticLockError{
				Resource:        model.ResourceAuthor,
				ID:              u.ID.Value(),
				ExpectedVersion: u.ExpectedVersion,
			}
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id model.AuthorID) (*model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM author WHERE id = $1`

	a, err := scanAuthor(database.Conn(ctx, r.pool).QueryRow(ctx, query, id.Value()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) FindByIDs(ctx context.Context, ids []model.AuthorID) ([]model.Author, error) {
	if len(ids) == 0 {
		return []model.Author{}, nil
	}

	query := `SELECT ` + authorColumns + ` FROM author WHERE id = ANY($1) ORDER BY id`

	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, core.Int64s(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, len(ids))
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

// existsByID checks if author exists (lightweight query)
func (r *postgresRepository) existsByID(ctx context.Context, id model.AuthorID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM author WHERE id = $1)`

	var exists bool
	if err := database.Conn(ctx, r.pool).QueryRow(ctx, query, id.Value()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}

	return exists, nil
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var (
		id        int64
		a         model.Author
		birthDate *time.Time
	)
	if err := row.Scan(&id, &a.Name, &birthDate, &a.Version); err != nil {
		return nil, err
	}

	a.ID = core.MustID[model.Author](id)
	if birthDate != nil {
		bd := model.RestoreBirthDate(*birthDate)
		a.BirthDate = &bd
	}

	return &a, nil
}

func birthDateArg(b *model.BirthDate) *time.Time {
	if b == nil {
		return nil
	}
	t := b.Time()
	return &t
}
