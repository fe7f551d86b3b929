package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/shared/core"
	"bookcatalog/pkg/database"
)

const dialectPostgres = "postgres"

const (
	tableBook       = "book"
	tableAuthor     = "author"
	tableBookAuthor = "book_author"
)

// queryService implements QueryServiceInterface with goqu-built SQL executed on pgx
type queryService struct {
	pool *pgxpool.Pool
}

func NewQueryService(pool *pgxpool.Pool) QueryServiceInterface {
	return &queryService{pool: pool}
}

// buildDetailQuery joins book -> book_author -> author; a book without
// authors yields no rows.
func buildDetailQuery(id model.BookID) (string, []interface{}, error) {
	return goqu.Dialect(dialectPostgres).
		From(tableBook).
		InnerJoin(goqu.T(tableBookAuthor), goqu.On(goqu.I("book_author.book_id").Eq(goqu.I("book.id")))).
		InnerJoin(goqu.T(tableAuthor), goqu.On(goqu.I("author.id").Eq(goqu.I("book_author.author_id")))).
		Select(
			goqu.I("book.id"),
			goqu.I("book.title"),
			goqu.Cast(goqu.I("book.price"), "TEXT"),
			goqu.I("book.status"),
			goqu.I("book.version"),
			goqu.I("author.id"),
			goqu.I("author.name"),
			goqu.I("author.birth_date"),
			goqu.I("author.version"),
		).
		Where(goqu.I("book.id").Eq(id.Value())).
		Order(goqu.I("author.id").Asc()).
		Prepared(true).
		ToSQL()
}

func buildSummaryQuery(authorID authormodel.AuthorID) (string, []interface{}, error) {
	return goqu.Dialect(dialectPostgres).
		From(tableBook).
		InnerJoin(goqu.T(tableBookAuthor), goqu.On(goqu.I("book_author.book_id").Eq(goqu.I("book.id")))).
		Select(
			goqu.I("book.id"),
			goqu.I("book.title"),
			goqu.Cast(goqu.I("book.price"), "TEXT"),
			goqu.I("book.status"),
		).
		Distinct().
		Where(goqu.I("book_author.author_id").Eq(authorID.Value())).
		Order(goqu.I("book.id").Asc()).
		Prepared(true).
		ToSQL()
}

func buildBookExistsQuery(id model.BookID) (string, []interface{}, error) {
	return goqu.Dialect(dialectPostgres).
		From(tableBook).
		Select(goqu.I("id")).
		Where(goqu.I("id").Eq(id.Value())).
		Prepared(true).
		ToSQL()
}

func (q *queryService) FindDetailByID(ctx context.Context, id model.BookID) (*model.BookDTO, error) {
	query, args, err := buildDetailQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build book detail query: %w", err)
	}

	conn := database.Conn(ctx, q.pool)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query book detail: %w", err)
	}
	defer rows.Close()

	var detail *model.BookDTO
	for rows.Next() {
		var (
			bookID, authorID int64
			title, price     string
			status           int
			bookVersion      int
			authorName       string
			birthDate        *time.Time
			authorVersion    int
		)
		if err := rows.Scan(&bookID, &title, &price, &status, &bookVersion, &authorID, &authorName, &birthDate, &authorVersion); err != nil {
			return nil, fmt.Errorf("failed to scan book detail: %w", err)
		}

		if detail == nil {
			detail, err = newDetail(bookID, title, price, status, bookVersion)
			if err != nil {
				return nil, err
			}
		}

		author := authormodel.AuthorDTO{
			ID:      core.MustID[authormodel.Author](authorID),
			Name:    authorName,
			Version: authorVersion,
		}
		if birthDate != nil {
			bd := authormodel.RestoreBirthDate(*birthDate)
			author.BirthDate = &bd
		}
		detail.Authors = append(detail.Authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book detail: %w", err)
	}

	if detail != nil {
		return detail, nil
	}

	// No joined rows: either the book is absent or it lost all of its authors
	existsQuery, existsArgs, err := buildBookExistsQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build book exists query: %w", err)
	}
	existsRows, err := conn.Query(ctx, existsQuery, existsArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to check book existence: %w", err)
	}
	defer existsRows.Close()

	if existsRows.Next() {
		return nil, fmt.Errorf("%w: book %d has no authors", core.ErrDataIntegrity, id.Value())
	}
	if err := existsRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to check book existence: %w", err)
	}

	return nil, nil
}

func (q *queryService) FindSummariesByAuthorID(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookSummaryDTO, error) {
	query, args, err := buildSummaryQuery(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to build book summary query: %w", err)
	}

	rows, err := database.Conn(ctx, q.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books by author: %w", err)
	}
	defer rows.Close()

	summaries := []model.BookSummaryDTO{}
	for rows.Next() {
		var (
			id     int64
			title  string
			price  string
			status int
		)
		if err := rows.Scan(&id, &title, &price, &status); err != nil {
			return nil, fmt.Errorf("failed to scan book summary: %w", err)
		}

		bookPrice, err := model.ParseBookPrice(price)
		if err != nil {
			return nil, fmt.Errorf("%w: book %d: %v", core.ErrDataIntegrity, id, err)
		}
		bookStatus, err := model.PublishStatusOf(status)
		if err != nil {
			return nil, fmt.Errorf("%w: book %d: %v", core.ErrDataIntegrity, id, err)
		}

		summaries = append(summaries, model.BookSummaryDTO{
			ID:     core.MustID[model.Book](id),
			Title:  title,
			Price:  bookPrice,
			Status: bookStatus,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books by author: %w", err)
	}

	return summaries, nil
}

func newDetail(id int64, title, price string, status, version int) (*model.BookDTO, error) {
	bookPrice, err := model.ParseBookPrice(price)
	if err != nil {
		return nil, fmt.Errorf("%w: book %d: %v", core.ErrDataIntegrity, id, err)
	}
	bookStatus, err := model.PublishStatusOf(status)
	if err != nil {
		return nil, fmt.Errorf("%w: book %d: %v", core.ErrDataIntegrity, id, err)
	}
	return &model.BookDTO{
		ID:      core.MustID[model.Book](id),
		Title:   title,
		Price:   bookPrice,
		Status:  bookStatus,
		Version: version,
	}, nil
}
