package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/shared/core"
)

// memStore backs the fakes below. memTx snapshots it before a unit of work
// and restores it when the work fails, so rollbacks are observable.
type memStore struct {
	authors    map[int64]authormodel.Author
	books      map[int64]storedBook
	nextAuthor int64
	nextBook   int64

	failReadBack bool
}

type storedBook struct {
	title     string
	price     model.BookPrice
	status    model.PublishStatus
	authorIDs []authormodel.AuthorID
	version   int
}

func newMemStore() *memStore {
	return &memStore{
		authors: map[int64]authormodel.Author{},
		books:   map[int64]storedBook{},
	}
}

func (s *memStore) addAuthor(name string) authormodel.AuthorID {
	s.nextAuthor++
	id := core.MustID[authormodel.Author](s.nextAuthor)
	s.authors[s.nextAuthor] = authormodel.Author{ID: id, Name: name, Version: 1}
	return id
}

func (s *memStore) snapshot() *memStore {
	c := &memStore{
		authors:      make(map[int64]authormodel.Author, len(s.authors)),
		books:        make(map[int64]storedBook, len(s.books)),
		nextAuthor:   s.nextAuthor,
		nextBook:     s.nextBook,
		failReadBack: s.failReadBack,
	}
	for k, v := range s.authors {
		c.authors[k] = v
	}
	for k, v := range s.books {
		v.authorIDs = append([]authormodel.AuthorID(nil), v.authorIDs...)
		c.books[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.authors = from.authors
	s.books = from.books
	s.nextAuthor = from.nextAuthor
	s.nextBook = from.nextBook
}

// ════════════════════════════════════════════════════════════════
// TRANSACTIONS
// ════════════════════════════════════════════════════════════════

type memTx struct {
	store     *memStore
	committed int
	rolled    int
}

func (m *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(before)
		m.rolled++
		return err
	}
	m.committed++
	return nil
}

func (m *memTx) WithinReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.WithinTx(ctx, fn)
}

// ════════════════════════════════════════════════════════════════
// BOOK REPOSITORY
// ════════════════════════════════════════════════════════════════

type memBookRepo struct{ store *memStore }

func (r *memBookRepo) Insert(_ context.Context, b model.NewBook) (*model.Book, error) {
	if len(b.AuthorIDs) == 0 {
		return nil, model.ErrNoAuthors
	}
	r.store.nextBook++
	id := r.store.nextBook
	r.store.books[id] = storedBook{
		title:     b.Title,
		price:     b.Price,
		status:    b.Status,
		authorIDs: append([]authormodel.AuthorID(nil), b.AuthorIDs...),
		version:   1,
	}
	return &model.Book{ID: core.MustID[model.Book](id), Title: b.Title, Price: b.Price, Status: b.Status, AuthorIDs: b.AuthorIDs, Version: 1}, nil
}

func (r *memBookRepo) Update(_ context.Context, u model.BookUpdate) (*model.Book, error) {
	if len(u.Book.AuthorIDs) == 0 {
		return nil, model.ErrNoAuthors
	}
	current, ok := r.store.books[u.ID.Value()]
	if !ok {
		return nil, &core.NotFoundError{Resource: model.ResourceBook, ID: u.ID.Value()}
	}
	if current.version != u.ExpectedVersion {
		return nil, &core.OptimisticLockError{Resource: model.ResourceBook, ID: u.ID.Value(), ExpectedVersion: u.ExpectedVersion}
	}
	next := storedBook{
		title:     u.Book.Title,
		price:     u.Book.Price,
		status:    u.Book.Status,
		authorIDs: append([]authormodel.AuthorID(nil), u.Book.AuthorIDs...),
		version:   current.version + 1,
	}
	r.store.books[u.ID.Value()] = next
	return &model.Book{ID: u.ID, Title: next.title, Price: next.price, Status: next.status, AuthorIDs: next.authorIDs, Version: next.version}, nil
}

func (r *memBookRepo) GetPublishStatusByID(_ context.Context, id model.BookID) (model.PublishStatus, error) {
	b, ok := r.store.books[id.Value()]
	if !ok {
		return 0, fmt.Errorf("%w: missing book %d", core.ErrDataIntegrity, id.Value())
	}
	return b.status, nil
}

// ════════════════════════════════════════════════════════════════
// QUERY SERVICE
// ════════════════════════════════════════════════════════════════

type memQuery struct{ store *memStore }

func (q *memQuery) FindDetailByID(_ context.Context, id model.BookID) (*model.BookDTO, error) {
	b, ok := q.store.books[id.Value()]
	if !ok {
		return nil, nil
	}
	if q.store.failReadBack {
		return nil, errors.New("read back failed")
	}
	if len(b.authorIDs) == 0 {
		return nil, fmt.Errorf("%w: book %d has no authors", core.ErrDataIntegrity, id.Value())
	}

	authorIDs := core.Int64s(b.authorIDs)
	sort.Slice(authorIDs, func(i, j int) bool { return authorIDs[i] < authorIDs[j] })

	authors := make([]authormodel.AuthorDTO, 0, len(authorIDs))
	for _, aid := range authorIDs {
		a := q.store.authors[aid]
		authors = append(authors, a.ToDTO())
	}

	return &model.BookDTO{ID: id, Title: b.title, Price: b.price, Status: b.status, Authors: authors, Version: b.version}, nil
}

func (q *memQuery) FindSummariesByAuthorID(_ context.Context, authorID authormodel.AuthorID) ([]model.BookSummaryDTO, error) {
	var bookIDs []int64
	for id, b := range q.store.books {
		for _, aid := range b.authorIDs {
			if aid == authorID {
				bookIDs = append(bookIDs, id)
				break
			}
		}
	}
	sort.Slice(bookIDs, func(i, j int) bool { return bookIDs[i] < bookIDs[j] })

	out := []model.BookSummaryDTO{}
	for _, id := range bookIDs {
		b := q.store.books[id]
		out = append(out, model.BookSummaryDTO{ID: core.MustID[model.Book](id), Title: b.title, Price: b.price, Status: b.status})
	}
	return out, nil
}

// ════════════════════════════════════════════════════════════════
// AUTHOR REPOSITORY
// ════════════════════════════════════════════════════════════════

type memAuthorRepo struct{ store *memStore }

func (r *memAuthorRepo) Insert(_ context.Context, a authormodel.NewAuthor) (*authormodel.Author, error) {
	id := r.store.addAuthor(a.Name)
	stored := r.store.authors[id.Value()]
	stored.BirthDate = a.BirthDate
	r.store.authors[id.Value()] = stored
	return &stored, nil
}

func (r *memAuthorRepo) Update(_ context.Context, u authormodel.AuthorUpdate) (*authormodel.Author, error) {
	a, ok := r.store.authors[u.ID.Value()]
	if !ok {
		return nil, &core.NotFoundError{Resource: authormodel.ResourceAuthor, ID: u.ID.Value()}
	}
	if a.Version != u.ExpectedVersion {
		return nil, &core.OptimisticLockError{Resource: authormodel.ResourceAuthor, ID: u.ID.Value(), ExpectedVersion: u.ExpectedVersion}
	}
	a.Name = u.Name
	a.BirthDate = u.BirthDate
	a.Version++
	r.store.authors[u.ID.Value()] = a
	return &a, nil
}

func (r *memAuthorRepo) FindByID(_ context.Context, id authormodel.AuthorID) (*authormodel.Author, error) {
	a, ok := r.store.authors[id.Value()]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memAuthorRepo) FindByIDs(_ context.Context, ids []authormodel.AuthorID) ([]authormodel.Author, error) {
	out := []authormodel.Author{}
	for _, id := range ids {
		if a, ok := r.store.authors[id.Value()]; ok {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Value() < out[j].ID.Value() })
	return out, nil
}
