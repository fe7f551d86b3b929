package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/shared/violation"
)

const MaxTitleLength = 255

// BookDTO is the detail view: the book with its resolved authors ordered by id.
type BookDTO struct {
	ID      BookID
	Title   string
	Price   BookPrice
	Status  PublishStatus
	Authors []authormodel.AuthorDTO
	Version int
}

// BookSummaryDTO is the list view used when browsing by author: no authors, no version.
type BookSummaryDTO struct {
	ID     BookID
	Title  string
	Price  BookPrice
	Status PublishStatus
}

// TitleRules are the scalar constraints on a book title.
func TitleRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		violation.NotBlank,
		validation.RuneLength(1, MaxTitleLength),
	}
}

// PriceRules bound the integer price.
func PriceRules() []validation.Rule {
	return []validation.Rule{
		validation.Min(int64(0)),
		validation.Max(MaxBookPrice),
	}
}

// ════════════════════════════════════════════════════════════════
// HTTP REQUESTS / RESPONSES
// ════════════════════════════════════════════════════════════════

type CreateBookRequest struct {
	Title     *string `json:"title"`
	Price     *int64  `json:"price"`
	AuthorIDs []int64 `json:"authorIds"`
	Status    *string `json:"status"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil),
		validation.Field(&r.Price, validation.NotNil),
		validation.Field(&r.AuthorIDs, validation.NotNil, validation.Each(violation.Positive)),
		validation.Field(&r.Status, validation.NotNil, validation.In(StatusNames()...)),
	)
}

type UpdateBookRequest struct {
	Title     *string `json:"title"`
	Price     *int64  `json:"price"`
	AuthorIDs []int64 `json:"authorIds"`
	Status    *string `json:"status"`
	Version   *int    `json:"version"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NotNil),
		validation.Field(&r.Price, validation.NotNil),
		validation.Field(&r.AuthorIDs, validation.NotNil, validation.Each(violation.Positive)),
		validation.Field(&r.Status, validation.NotNil, validation.In(StatusNames()...)),
		validation.Field(&r.Version, validation.NotNil, violation.Positive),
	)
}

type BookResponse struct {
	ID      int64                        `json:"id"`
	Title   string                       `json:"title"`
	Price   int64                        `json:"price"`
	Status  string                       `json:"status"`
	Authors []authormodel.AuthorResponse `json:"authors"`
	Version int                          `json:"version"`
}

type BookSummaryResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Price  int64  `json:"price"`
	Status string `json:"status"`
}

func (d BookDTO) ToResponse() BookResponse {
	authors := make([]authormodel.AuthorResponse, len(d.Authors))
	for i, a := range d.Authors {
		authors[i] = a.ToResponse()
	}
	return BookResponse{
		ID:      d.ID.Value(),
		Title:   d.Title,
		Price:   d.Price.Int64(),
		Status:  d.Status.String(),
		Authors: authors,
		Version: d.Version,
	}
}

func (d BookSummaryDTO) ToResponse() BookSummaryResponse {
	return BookSummaryResponse{
		ID:     d.ID.Value(),
		Title:  d.Title,
		Price:  d.Price.Int64(),
		Status: d.Status.String(),
	}
}
