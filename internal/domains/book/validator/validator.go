// Package validator holds the cross-field and cross-aggregate checks that
// gate every book write. Rules never stop at the first failure.
package validator

import (
	"context"
	"fmt"
	"strconv"

	authormodel "bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/violation"
)

const (
	fieldTitle     = "title"
	fieldPrice     = "price"
	fieldAuthorIDs = "authorIds"
	fieldStatus    = "status"

	MsgNoAuthors         = "must contain at least one author"
	MsgDuplicateElements = "duplicate elements in list"
	MsgNonexistentAuthor = "nonexistent author specified"
	MsgStatusUnpublish   = "publish status cannot change from PUBLISHED to UNPUBLISHED"
)

// AuthorFinder resolves which of the given ids exist.
type AuthorFinder interface {
	FindByIDs(ctx context.Context, ids []authormodel.AuthorID) ([]authormodel.Author, error)
}

// StatusReader reads the currently persisted status of a book.
type StatusReader interface {
	GetPublishStatusByID(ctx context.Context, id model.BookID) (model.PublishStatus, error)
}

// NewCreateValidator checks scalar fields, author uniqueness and author existence.
func NewCreateValidator(authors AuthorFinder) *violation.Validator[model.CreateBookCommand] {
	return violation.New(
		onFields[model.CreateBookCommand](ScalarFields),
		onFields[model.CreateBookCommand](UniqueAuthorIDs),
		onFields[model.CreateBookCommand](AuthorsExist(authors)),
	)
}

// NewUpdateValidator adds the publish status transition check to the create rules.
func NewUpdateValidator(authors AuthorFinder, statuses StatusReader) *violation.Validator[model.UpdateBookCommand] {
	return violation.New(
		onFields[model.UpdateBookCommand](ScalarFields),
		onFields[model.UpdateBookCommand](UniqueAuthorIDs),
		onFields[model.UpdateBookCommand](AuthorsExist(authors)),
		StatusTransition(statuses),
	)
}

type fieldsCommand interface {
	Fields() model.BookFields
}

func onFields[C fieldsCommand](rule violation.Rule[model.BookFields]) violation.Rule[C] {
	return func(ctx context.Context, cmd C) ([]core.Violation, error) {
		return rule(ctx, cmd.Fields())
	}
}

// ScalarFields checks title, price and that at least one author is given.
func ScalarFields(_ context.Context, f model.BookFields) ([]core.Violation, error) {
	var out []core.Violation

	vs, err := violation.Field(fieldTitle, f.Title, model.TitleRules()...)
	if err != nil {
		return nil, err
	}
	out = append(out, vs...)

	vs, err = violation.Field(fieldPrice, f.Price, model.PriceRules()...)
	if err != nil {
		return nil, err
	}
	out = append(out, vs...)

	if len(f.AuthorIDs) == 0 {
		out = append(out, core.Violation{Field: fieldAuthorIDs, Message: MsgNoAuthors})
	}
	for i, id := range f.AuthorIDs {
		if id.IsZero() {
			out = append(out, core.Violation{
				Field:   fieldAuthorIDs + "[" + strconv.Itoa(i) + "]",
				Message: "must be a positive integer",
			})
		}
	}

	return out, nil
}

// UniqueAuthorIDs rejects lists whose set size differs from their length.
func UniqueAuthorIDs(_ context.Context, f model.BookFields) ([]core.Violation, error) {
	if len(distinct(f.AuthorIDs)) != len(f.AuthorIDs) {
		return []core.Violation{{Field: fieldAuthorIDs, Message: MsgDuplicateElements}}, nil
	}
	return nil, nil
}

// AuthorsExist compares the number of distinct requested ids with the number
// of authors found. An empty list passes; ScalarFields reports it.
func AuthorsExist(authors AuthorFinder) violation.Rule[model.BookFields] {
	return func(ctx context.Context, f model.BookFields) ([]core.Violation, error) {
		ids := make([]authormodel.AuthorID, 0, len(f.AuthorIDs))
		for _, id := range distinct(f.AuthorIDs) {
			if !id.IsZero() {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return nil, nil
		}

		found, err := authors.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to look up authors: %w", err)
		}
		if len(found) != len(ids) {
			return []core.Violation{{Field: fieldAuthorIDs, Message: MsgNonexistentAuthor}}, nil
		}
		return nil, nil
	}
}

// StatusTransition rejects moving a published book back to unpublished.
func StatusTransition(statuses StatusReader) violation.Rule[model.UpdateBookCommand] {
	return func(ctx context.Context, cmd model.UpdateBookCommand) ([]core.Violation, error) {
		current, err := statuses.GetPublishStatusByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		if !current.CanChangeTo(cmd.Status) {
			return []core.Violation{{Field: fieldStatus, Message: MsgStatusUnpublish}}, nil
		}
		return nil, nil
	}
}

// distinct keeps the first occurrence of each id.
func distinct(ids []authormodel.AuthorID) []authormodel.AuthorID {
	seen := make(map[authormodel.AuthorID]struct{}, len(ids))
	out := make([]authormodel.AuthorID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
