package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/violation"
)

const MaxNameLength = 255

// AuthorDTO is the read projection of an author.
type AuthorDTO struct {
	ID        AuthorID
	Name      string
	BirthDate *BirthDate
	Version   int
}

// NameRules are the scalar constraints on an author name.
func NameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		violation.NotBlank,
		validation.RuneLength(1, MaxNameLength),
	}
}

// ════════════════════════════════════════════════════════════════
// HTTP REQUESTS / RESPONSES
// ════════════════════════════════════════════════════════════════

type CreateAuthorRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil),
		validation.Field(&r.BirthDate, validation.Date(core.DateLayout)),
	)
}

type UpdateAuthorRequest struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birthDate"`
	Version   *int    `json:"version"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NotNil),
		validation.Field(&r.BirthDate, validation.Date(core.DateLayout)),
		validation.Field(&r.Version, validation.NotNil, violation.Positive),
	)
}

type AuthorResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birthDate,omitempty"`
	Version   int     `json:"version"`
}

func (d AuthorDTO) ToResponse() AuthorResponse {
	resp := AuthorResponse{
		ID:      d.ID.Value(),
		Name:    d.Name,
		Version: d.Version,
	}
	if d.BirthDate != nil {
		s := d.BirthDate.String()
		resp.BirthDate = &s
	}
	return resp
}
