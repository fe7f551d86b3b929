package model

import (
	"errors"
	"strings"

	"bookcatalog/internal/shared/core"
)

const ResourceAuthor = "author"

var ErrEmptyName = errors.New("author name must not be empty")

type AuthorID = core.ID[Author]

// Author is a persisted author. Version starts at 1 and grows by one on every update.
type Author struct {
	ID        AuthorID
	Name      string
	BirthDate *BirthDate
	Version   int
}

// NewAuthor is an author that has not been inserted yet: no id, no version.
type NewAuthor struct {
	Name      string
	BirthDate *BirthDate
}

func NewAuthorOf(name string, birthDate *BirthDate) (NewAuthor, error) {
	if strings.TrimSpace(name) == "" {
		return NewAuthor{}, ErrEmptyName
	}
	return NewAuthor{Name: name, BirthDate: birthDate}, nil
}

// AuthorUpdate replaces the mutable fields of an existing author,
// guarded by the version the caller last read.
type AuthorUpdate struct {
	ID              AuthorID
	Name            string
	BirthDate       *BirthDate
	ExpectedVersion int
}

func (a *Author) ToDTO() AuthorDTO {
	dto := AuthorDTO{
		ID:      a.ID,
		Name:    a.Name,
		Version: a.Version,
	}
	if a.BirthDate != nil {
		d := *a.BirthDate
		dto.BirthDate = &d
	}
	return dto
}
