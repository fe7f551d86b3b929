package model

import (
	"errors"
	"strings"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/shared/core"
)

const ResourceBook = "book"

var (
	ErrEmptyTitle = errors.New("book title must not be empty")
	ErrNoAuthors  = errors.New("book must have at least one author")
)

type BookID = core.ID[Book]

// Book is a persisted book. AuthorIDs is never empty.
type Book struct {
	ID        BookID
	Title     string
	Price     BookPrice
	Status    PublishStatus
	AuthorIDs []authormodel.AuthorID
	Version   int
}

// NewBook is a book that has not been inserted yet.
type NewBook struct {
	Title     string
	Price     BookPrice
	Status    PublishStatus
	AuthorIDs []authormodel.AuthorID
}

func NewBookOf(title string, price BookPrice, status PublishStatus, authorIDs []authormodel.AuthorID) (NewBook, error) {
	if strings.TrimSpace(title) == "" {
		return NewBook{}, ErrEmptyTitle
	}
	if len(authorIDs) == 0 {
		return NewBook{}, ErrNoAuthors
	}
	ids := make([]authormodel.AuthorID, len(authorIDs))
	copy(ids, authorIDs)
	return NewBook{Title: title, Price: price, Status: status, AuthorIDs: ids}, nil
}

// BookUpdate replaces every mutable field of a book, including the full
// author list, guarded by the version the caller last read.
type BookUpdate struct {
	ID              BookID
	Book            NewBook
	ExpectedVersion int
}
