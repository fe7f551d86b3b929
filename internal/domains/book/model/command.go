package model

import authormodel "bookcatalog/internal/domains/author/model"

// CreateBookCommand is the input of the create-book use case. Scalars are
// kept raw so that the validation layer can report on them.
type CreateBookCommand struct {
	Title     string
	Price     int64
	AuthorIDs []authormodel.AuthorID
	Status    PublishStatus
}

// UpdateBookCommand is the input of the update-book use case.
type UpdateBookCommand struct {
	ID        BookID
	Title     string
	Price     int64
	AuthorIDs []authormodel.AuthorID
	Status    PublishStatus
	Version   int
}

// BookFields is the part shared by create and update commands.
type BookFields struct {
	Title     string
	Price     int64
	AuthorIDs []authormodel.AuthorID
	Status    PublishStatus
}

func (c CreateBookCommand) Fields() BookFields {
	return BookFields{Title: c.Title, Price: c.Price, AuthorIDs: c.AuthorIDs, Status: c.Status}
}

func (c UpdateBookCommand) Fields() BookFields {
	return BookFields{Title: c.Title, Price: c.Price, AuthorIDs: c.AuthorIDs, Status: c.Status}
}

// ToNewBook builds the domain value once validation has passed.
func (f BookFields) ToNewBook() (NewBook, error) {
	price, err := NewBookPrice(f.Price)
	if err != nil {
		return NewBook{}, err
	}
	return NewBookOf(f.Title, price, f.Status, f.AuthorIDs)
}
