package service

import (
	"context"
	"time"

	"bookcatalog/internal/domains/author/model"
	"bookcatalog/internal/domains/author/repository"
	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/violation"
	"bookcatalog/pkg/database"
	"bookcatalog/pkg/logger"
)

// authorService implements ServiceInterface
type authorService struct {
	repo  repository.RepositoryInterface
	tx    database.TxManager
	clock core.Clock

	createValidator *violation.Validator[model.CreateAuthorCommand]
	updateValidator *violation.Validator[model.UpdateAuthorCommand]
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface, tx database.TxManager, clock core.Clock) ServiceInterface {
	s := &authorService{
		repo:  repo,
		tx:    tx,
		clock: clock,
	}

	s.createValidator = violation.New(
		func(_ context.Context, cmd model.CreateAuthorCommand) ([]core.Violation, error) {
			return violation.Field("name", cmd.Name, model.NameRules()...)
		},
		func(_ context.Context, cmd model.CreateAuthorCommand) ([]core.Violation, error) {
			return s.checkBirthDate(cmd.BirthDate), nil
		},
	)
	s.updateValidator = violation.New(
		func(_ context.Context, cmd model.UpdateAuthorCommand) ([]core.Violation, error) {
			return violation.Field("name", cmd.Name, model.NameRules()...)
		},
		func(_ context.Context, cmd model.UpdateAuthorCommand) ([]core.Violation, error) {
			return s.checkBirthDate(cmd.BirthDate), nil
		},
	)

	return s
}

func (s *authorService) Create(ctx context.Context, cmd model.CreateAuthorCommand) (*model.AuthorDTO, error) {
	if err := s.createValidator.Validate(ctx, cmd); err != nil {
		return nil, err
	}

	birthDate, err := s.birthDate(cmd.BirthDate)
	if err != nil {
		return nil, err
	}
	newAuthor, err := model.NewAuthorOf(cmd.Name, birthDate)
	if err != nil {
		return nil, core.NewValidationError(core.Violation{Field: "name", Message: err.Error()})
	}

	var created *model.Author
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Insert(ctx, newAuthor)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Author created", map[string]interface{}{
		"author_id": created.ID.Value(),
		"version":   created.Version,
	})

	dto := created.ToDTO()
	return &dto, nil
}

func (s *authorService) Update(ctx context.Context, cmd model.UpdateAuthorCommand) (*model.AuthorDTO, error) {
	if err := s.updateValidator.Validate(ctx, cmd); err != nil {
		return nil, err
	}

	birthDate, err := s.birthDate(cmd.BirthDate)
	if err != nil {
		return nil, err
	}

	var updated *model.Author
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// ═══════════════════════════════════════════════════════════
		// STEP 1: FETCH CURRENT AUTHOR
		// ═══════════════════════════════════════════════════════════
		current, err := s.repo.FindByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return &core.NotFoundError{Resource: model.ResourceAuthor, ID: cmd.ID.Value()}
		}

		// ═══════════════════════════════════════════════════════════
		// STEP 2: VERSION-GUARDED WRITE
		// ═══════════════════════════════════════════════════════════
		updated, err = s.repo.Update(ctx, model.AuthorUpdate{
			ID:              cmd.ID,
			Name:            cmd.Name,
			BirthDate:       birthDate,
			ExpectedVersion: cmd.Version,
		})
		return err
	})
	if err != nil {
		if core.IsOptimisticLock(err) {
			logger.Warn("Author update lost optimistic lock", map[string]interface{}{
				"author_id": cmd.ID.Value(),
				"version":   cmd.Version,
			})
		}
		return nil, err
	}

	logger.Info("Author updated", map[string]interface{}{
		"author_id": updated.ID.Value(),
		"version":   updated.Version,
	})

	dto := updated.ToDTO()
	return &dto, nil
}

func (s *authorService) checkBirthDate(date *time.Time) []core.Violation {
	if date == nil {
		return nil
	}
	if _, err := model.NewBirthDate(*date, core.Today(s.clock)); err != nil {
		return []core.Violation{{Field: "birthDate", Message: model.ErrBirthDateNotPast.Error()}}
	}
	return nil
}

func (s *authorService) birthDate(date *time.Time) (*model.BirthDate, error) {
	if date == nil {
		return nil, nil
	}
	bd, err := model.NewBirthDate(*date, core.Today(s.clock))
	if err != nil {
		return nil, core.NewValidationError(core.Violation{Field: "birthDate", Message: model.ErrBirthDateNotPast.Error()})
	}
	return &bd, nil
}
