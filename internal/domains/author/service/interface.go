package service

import (
	"context"

	"bookcatalog/internal/domains/author/model"
)

// ServiceInterface holds the author use cases. Every call runs in one transaction.
type ServiceInterface interface {
	// Create validates name and birth date, then inserts the author (version 1).
	// Returns *core.ValidationError listing every violated constraint.
	Create(ctx context.Context, cmd model.CreateAuthorCommand) (*model.AuthorDTO, error)

	// Update validates the command, loads the author (*core.NotFoundError when
	// absent) and writes the new values guarded by cmd.Version
	// (*core.OptimisticLockError on mismatch). The result carries cmd.Version+1.
	Update(ctx context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error)
}
