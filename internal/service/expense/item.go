package expense

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
)

func (s *ExpenseServiceImpl) CreateItem(ctx context.Context, req expense.CreateItemRequest) (expense.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ItemResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ItemResponse{}, err
	}

	created, err := s.itemRepo.Create(ctx, req.ToEntity(principal.BusinessID))
	if err != nil {
		if !errors.Is(err, expense.ErrItemNameExists) {
			logger.LogError(s.log, module, "CreateItem", "insert expense item", req, err)
		}
		return expense.ItemResponse{}, err
	}
	return expense.ToItemResponse(created), nil
}

func (s *ExpenseServiceImpl) UpdateItem(ctx context.Context, req expense.UpdateItemRequest) (expense.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ItemResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ItemResponse{}, err
	}

	existing, err := s.itemRepo.GetByID(ctx, req.ID, principal.BusinessID)
	if err != nil {
		return expense.ItemResponse{}, err
	}

	updated, err := s.itemRepo.Update(ctx, req.Apply(existing))
	if err != nil {
		if !errors.Is(err, expense.ErrItemNotFound) && !errors.Is(err, expense.ErrItemNameExists) {
			logger.LogError(s.log, module, "UpdateItem", "update expense item", req.ID, err)
		}
		return expense.ItemResponse{}, err
	}
	return expense.ToItemResponse(updated), nil
}

func (s *ExpenseServiceImpl) ListItems(ctx context.Context, filter expense.ItemFilter) ([]expense.ItemResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "ListItems", "list expense items", filter, err)
		return nil, err
	}
	responses := make([]expense.ItemResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, expense.ToItemResponse(it))
	}
	return responses, nil
}

func (s *ExpenseServiceImpl) ToggleItemStatus(ctx context.Context, id string) (expense.ItemResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ItemResponse{}, err
	}
	it, err := s.itemRepo.ToggleStatus(ctx, id, principal.BusinessID)
	if err != nil {
		return expense.ItemResponse{}, err
	}
	return expense.ToItemResponse(it), nil
}
