package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/domains/book/validator"
	"bookcatalog/internal/shared/core"
)

type fixture struct {
	store   *memStore
	tx      *memTx
	service ServiceInterface
}

func newFixture(authorNames ...string) *fixture {
	store := newMemStore()
	for _, name := range authorNames {
		store.addAuthor(name)
	}
	tx := &memTx{store: store}
	return &fixture{
		store: store,
		tx:    tx,
		service: NewService(
			&memBookRepo{store: store},
			&memQuery{store: store},
			&memAuthorRepo{store: store},
			tx,
		),
	}
}

func aids(values ...int64) []authormodel.AuthorID {
	out := make([]authormodel.AuthorID, len(values))
	for i, v := range values {
		out[i] = core.MustID[authormodel.Author](v)
	}
	return out
}

func authorIDsOf(dto *model.BookDTO) []int64 {
	out := make([]int64, len(dto.Authors))
	for i, a := range dto.Authors {
		out[i] = a.ID.Value()
	}
	return out
}

func violations(t *testing.T, err error) []core.Violation {
	t.Helper()
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Violations
}

func (f *fixture) create(t *testing.T, title string, price int64, status model.PublishStatus, authors ...int64) *model.BookDTO {
	t.Helper()
	dto, err := f.service.Create(context.Background(), model.CreateBookCommand{
		Title: title, Price: price, AuthorIDs: aids(authors...), Status: status,
	})
	require.NoError(t, err)
	return dto
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("should fail: whitespace title is a validation error", func(t *testing.T) {
		for _, title := range []string{"\u3000", "\u00a0\u00a0", "\v"} {
			f := newFixture("Author 1")

			_, err := f.service.Create(ctx, model.CreateBookCommand{
				Title: title, Price: 1, AuthorIDs: aids(1), Status: model.StatusUnpublished,
			})
			assert.Equal(t, []core.Violation{{Field: "title", Message: "cannot be blank"}}, violations(t, err), "%q", title)
		}
	})

	t.Run("should pass: new book starts at version 1", func(t *testing.T) {
		f := newFixture("Author 1")

		dto := f.create(t, "Book A", 1000, model.StatusUnpublished, 1)

		assert.Equal(t, 1, dto.Version)
		assert.Equal(t, model.StatusUnpublished, dto.Status)
		assert.Equal(t, int64(1000), dto.Price.Int64())
		assert.Equal(t, []int64{1}, authorIDsOf(dto))
		assert.Equal(t, "Author 1", dto.Authors[0].Name)
	})

	t.Run("should return authors ordered by id", func(t *testing.T) {
		f := newFixture("a", "b", "c")

		dto := f.create(t, "Ordered", 1, model.StatusPublished, 3, 1, 2)
		assert.Equal(t, []int64{1, 2, 3}, authorIDsOf(dto))
	})

	t.Run("should fail: duplicate author ids", func(t *testing.T) {
		f := newFixture("Author 1")

		_, err := f.service.Create(ctx, model.CreateBookCommand{
			Title: "Dup", Price: 1, AuthorIDs: aids(1, 1), Status: model.StatusUnpublished,
		})
		assert.Contains(t, violations(t, err), core.Violation{Field: "authorIds", Message: validator.MsgDuplicateElements})
		assert.Empty(t, f.store.books)
	})

	t.Run("should fail: nonexistent author", func(t *testing.T) {
		f := newFixture("Author 1")

		_, err := f.service.Create(ctx, model.CreateBookCommand{
			Title: "Ghost", Price: 1, AuthorIDs: aids(999), Status: model.StatusUnpublished,
		})
		assert.Equal(t, []core.Violation{{Field: "authorIds", Message: validator.MsgNonexistentAuthor}}, violations(t, err))
		assert.Empty(t, f.store.books)
	})

	t.Run("should fail: empty author list", func(t *testing.T) {
		f := newFixture("Author 1")

		_, err := f.service.Create(ctx, model.CreateBookCommand{
			Title: "Alone", Price: 1, AuthorIDs: []authormodel.AuthorID{}, Status: model.StatusUnpublished,
		})
		assert.Equal(t, []core.Violation{{Field: "authorIds", Message: validator.MsgNoAuthors}}, violations(t, err))
		assert.Empty(t, f.store.books)
	})

	t.Run("should roll back insert when read back fails", func(t *testing.T) {
		f := newFixture("Author 1")
		f.store.failReadBack = true

		_, err := f.service.Create(ctx, model.CreateBookCommand{
			Title: "Lost", Price: 1, AuthorIDs: aids(1), Status: model.StatusUnpublished,
		})
		require.Error(t, err)
		assert.Empty(t, f.store.books)
		assert.Equal(t, 1, f.tx.rolled)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()

	update := func(f *fixture, id model.BookID, version int, status model.PublishStatus, authors ...int64) (*model.BookDTO, error) {
		return f.service.Update(ctx, model.UpdateBookCommand{
			ID: id, Title: "Book A", Price: 1000, AuthorIDs: aids(authors...), Status: status, Version: version,
		})
	}

	t.Run("should publish, then refuse to unpublish", func(t *testing.T) {
		f := newFixture("Author 1")
		created := f.create(t, "Book A", 1000, model.StatusUnpublished, 1)

		published, err := update(f, created.ID, 1, model.StatusPublished, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, published.Version)
		assert.Equal(t, model.StatusPublished, published.Status)

		_, err = update(f, created.ID, 2, model.StatusUnpublished, 1)
		assert.Equal(t, []core.Violation{{Field: "status", Message: validator.MsgStatusUnpublish}}, violations(t, err))

		stored := f.store.books[created.ID.Value()]
		assert.Equal(t, 2, stored.version)
		assert.Equal(t, model.StatusPublished, stored.status)
	})

	t.Run("should fail: stale version", func(t *testing.T) {
		f := newFixture("Author 1")
		created := f.create(t, "Book A", 1000, model.StatusUnpublished, 1)

		_, err := update(f, created.ID, 1, model.StatusPublished, 1)
		require.NoError(t, err)

		_, err = f.service.Update(ctx, model.UpdateBookCommand{
			ID: created.ID, Title: "Changed", Price: 5, AuthorIDs: aids(1), Status: model.StatusPublished, Version: 1,
		})
		assert.True(t, core.IsOptimisticLock(err))

		stored := f.store.books[created.ID.Value()]
		assert.Equal(t, 2, stored.version)
		assert.Equal(t, "Book A", stored.title)
	})

	t.Run("should replace the whole author set", func(t *testing.T) {
		f := newFixture("a", "b", "c")
		f.create(t, "First", 1, model.StatusUnpublished, 1)
		second := f.create(t, "Second", 1, model.StatusUnpublished, 1, 2, 3)

		updated, err := update(f, second.ID, 1, model.StatusUnpublished, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, authorIDsOf(updated))

		detail, err := f.service.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, authorIDsOf(detail))
	})

	t.Run("should reflect submitted fields on read", func(t *testing.T) {
		f := newFixture("a", "b")
		created := f.create(t, "Draft", 10, model.StatusUnpublished, 1)

		_, err := f.service.Update(ctx, model.UpdateBookCommand{
			ID: created.ID, Title: "Final", Price: 42, AuthorIDs: aids(2, 1), Status: model.StatusPublished, Version: 1,
		})
		require.NoError(t, err)

		detail, err := f.service.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", detail.Title)
		assert.Equal(t, int64(42), detail.Price.Int64())
		assert.Equal(t, model.StatusPublished, detail.Status)
		assert.Equal(t, []int64{1, 2}, authorIDsOf(detail))
		assert.Equal(t, 2, detail.Version)
	})

	t.Run("should fail: empty author list leaves row unchanged", func(t *testing.T) {
		f := newFixture("a")
		created := f.create(t, "Book", 10, model.StatusUnpublished, 1)

		_, err := update(f, created.ID, 1, model.StatusUnpublished)
		assert.True(t, core.IsValidation(err))
		assert.Equal(t, []int64{1}, core.Int64s(f.store.books[created.ID.Value()].authorIDs))
		assert.Equal(t, 1, f.store.books[created.ID.Value()].version)
	})

	t.Run("should fail: duplicate or unknown authors leave row unchanged", func(t *testing.T) {
		f := newFixture("a", "b")
		created := f.create(t, "Book", 10, model.StatusUnpublished, 1)

		_, err := update(f, created.ID, 1, model.StatusUnpublished, 2, 2)
		assert.True(t, core.IsValidation(err))

		_, err = update(f, created.ID, 1, model.StatusUnpublished, 2, 77)
		assert.True(t, core.IsValidation(err))

		assert.Equal(t, []int64{1}, core.Int64s(f.store.books[created.ID.Value()].authorIDs))
		assert.Equal(t, 1, f.store.books[created.ID.Value()].version)
	})

	t.Run("should fail: book not found", func(t *testing.T) {
		f := newFixture("a")

		_, err := update(f, core.MustID[model.Book](404), 1, model.StatusUnpublished, 1)
		var nf *core.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, model.ResourceBook, nf.Resource)
		assert.Equal(t, int64(404), nf.ID)
	})

	t.Run("should advance version by exactly one per update", func(t *testing.T) {
		f := newFixture("a")
		created := f.create(t, "Book", 10, model.StatusUnpublished, 1)

		version := created.Version
		for i := 0; i < 3; i++ {
			dto, err := update(f, created.ID, version, model.StatusUnpublished, 1)
			require.NoError(t, err)
			assert.Equal(t, version+1, dto.Version)
			version = dto.Version
		}
	})
}

func TestGetBookByID(t *testing.T) {
	f := newFixture("a")

	_, err := f.service.GetByID(context.Background(), core.MustID[model.Book](1))
	assert.True(t, core.IsNotFound(err))

	created := f.create(t, "Book", 10, model.StatusUnpublished, 1)
	dto, err := f.service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, dto)
}

func TestGetBookByIDReportsIntegrityFault(t *testing.T) {
	f := newFixture("a")
	created := f.create(t, "Book", 10, model.StatusUnpublished, 1)

	broken := f.store.books[created.ID.Value()]
	broken.authorIDs = nil
	f.store.books[created.ID.Value()] = broken

	_, err := f.service.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, core.ErrDataIntegrity)
}

func TestListBooksByAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture("a", "b")

	f.create(t, "One", 1, model.StatusUnpublished, 1)
	f.create(t, "Two", 2, model.StatusPublished, 2)
	f.create(t, "Three", 3, model.StatusUnpublished, 1, 2)

	list, err := f.service.ListByAuthor(ctx, core.MustID[authormodel.Author](1))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "One", list[0].Title)
	assert.Equal(t, "Three", list[1].Title)

	_, err = f.service.ListByAuthor(ctx, core.MustID[authormodel.Author](99))
	assert.True(t, core.IsNotFound(err))
}
