package service

import (
	"context"

	"oneflex/internal/model"
	"oneflex/internal/repository"
)

type AccountService interface {
	Register(ctx context.Context, a *model.Account) (*model.Account, error)
	Get(ctx context.Context, accountID string) (*model.Account, error)
}

type accountService struct {
	repo repository.AccountRepository
}

func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

// Register creates the account profile or refreshes its name and email.
func (s *accountService) Register(ctx context.Context, a *model.Account) (*model.Account, error) {
	if a.AccountID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *accountService) Get(ctx context.Context, accountID string) (*model.Account, error) {
	a, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAccountNotFound
	}
	return a, nil
}
