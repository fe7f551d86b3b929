package service

import (
	"context"
	"fmt"

	authormodel "bookcatalog/internal/domains/author/model"
	authorRepo "bookcatalog/internal/domains/author/repository"
	"bookcatalog/internal/domains/book/model"
	"bookcatalog/internal/domains/book/repository"
	"bookcatalog/internal/domains/book/validator"
	"bookcatalog/internal/shared/core"
	"bookcatalog/internal/shared/violation"
	"bookcatalog/pkg/database"
	"bookcatalog/pkg/logger"
)

type BookService struct {
	repo    repository.RepositoryInterface
	query   repository.QueryServiceInterface
	authors authorRepo.RepositoryInterface
	tx      database.TxManager

	createValidator *violation.Validator[model.CreateBookCommand]
	updateValidator *violation.Validator[model.UpdateBookCommand]
}

func NewService(
	repo repository.RepositoryInterface,
	query repository.QueryServiceInterface,
	authors authorRepo.RepositoryInterface,
	tx database.TxManager,
) ServiceInterface {
	return &BookService{
		repo:            repo,
		query:           query,
		authors:         authors,
		tx:              tx,
		createValidator: validator.NewCreateValidator(authors),
		updateValidator: validator.NewUpdateValidator(authors, repo),
	}
}

func (s *BookService) Create(ctx context.Context, cmd model.CreateBookCommand) (*model.BookDTO, error) {
	var result *model.BookDTO

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// ═══════════════════════════════════════════════════════════
		// STEP 1: VALIDATE (nothing is written on failure)
		// ═══════════════════════════════════════════════════════════
		if err := s.createValidator.Validate(ctx, cmd); err != nil {
			return err
		}

		newBook, err := cmd.Fields().ToNewBook()
		if err != nil {
			return fmt.Errorf("failed to build book from validated command: %w", err)
		}

		// ═══════════════════════════════════════════════════════════
		// STEP 2: INSERT + READ BACK
		// ═══════════════════════════════════════════════════════════
		created, err := s.repo.Insert(ctx, newBook)
		if err != nil {
			return err
		}

		result, err = s.readBack(ctx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Book created", map[string]interface{}{
		"book_id": result.ID.Value(),
		"version": result.Version,
		"authors": len(result.Authors),
	})

	return result, nil
}

func (s *BookService) Update(ctx context.Context, cmd model.UpdateBookCommand) (*model.BookDTO, error) {
	var result *model.BookDTO

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// ═══════════════════════════════════════════════════════════
		// STEP 1: FETCH CURRENT BOOK
		// ═══════════════════════════════════════════════════════════
		current, err := s.query.FindDetailByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if current == nil {
			return &core.NotFoundError{Resource: model.ResourceBook, ID: cmd.ID.Value()}
		}

		// ═══════════════════════════════════════════════════════════
		// STEP 2: VALIDATE (status transition against persisted state)
		// ═══════════════════════════════════════════════════════════
		if err := s.updateValidator.Validate(ctx, cmd); err != nil {
			return err
		}

		newBook, err := cmd.Fields().ToNewBook()
		if err != nil {
			return fmt.Errorf("failed to build book from validated command: %w", err)
		}

		// ═══════════════════════════════════════════════════════════
		// STEP 3: VERSION-GUARDED WRITE + READ BACK
		// ═══════════════════════════════════════════════════════════
		updated, err := s.repo.Update(ctx, model.BookUpdate{
			ID:              cmd.ID,
			Book:            newBook,
			ExpectedVersion: cmd.Version,
		})
		if err != nil {
			return err
		}

		result, err = s.readBack(ctx, updated.ID)
		return err
	})
	if err != nil {
		if core.IsOptimisticLock(err) {
			logger.Warn("Book update lost optimistic lock", map[string]interface{}{
				"book_id": cmd.ID.Value(),
				"version": cmd.Version,
			})
		}
		return nil, err
	}

	logger.Info("Book updated", map[string]interface{}{
		"book_id": result.ID.Value(),
		"version": result.Version,
		"status":  result.Status.String(),
	})

	return result, nil
}

func (s *BookService) GetByID(ctx context.Context, id model.BookID) (*model.BookDTO, error) {
	var result *model.BookDTO

	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		detail, err := s.query.FindDetailByID(ctx, id)
		if err != nil {
			return err
		}
		if detail == nil {
			return &core.NotFoundError{Resource: model.ResourceBook, ID: id.Value()}
		}
		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *BookService) ListByAuthor(ctx context.Context, authorID authormodel.AuthorID) ([]model.BookSummaryDTO, error) {
	var result []model.BookSummaryDTO

	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		author, err := s.authors.FindByID(ctx, authorID)
		if err != nil {
			return err
		}
		if author == nil {
			return &core.NotFoundError{Resource: authormodel.ResourceAuthor, ID: authorID.Value()}
		}

		result, err = s.query.FindSummariesByAuthorID(ctx, authorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// readBack returns the committed view of a book just written in this transaction.
func (s *BookService) readBack(ctx context.Context, id model.BookID) (*model.BookDTO, error) {
	detail, err := s.query.FindDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: book %d not readable after write", core.ErrDataIntegrity, id.Value())
	}
	return detail, nil
}
