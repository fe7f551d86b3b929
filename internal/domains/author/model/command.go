package model

import "time"

// CreateAuthorCommand is the input of the create-author use case.
type CreateAuthorCommand struct {
	Name      string
	BirthDate *time.Time
}

// UpdateAuthorCommand is the input of the update-author use case.
type UpdateAuthorCommand struct {
	ID        AuthorID
	Name      string
	BirthDate *time.Time
	Version   int
}
