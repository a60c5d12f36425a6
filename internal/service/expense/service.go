package expense

import (
	"context"
	"errors"
	"math"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/expense"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/supplier"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const module = "expense"

type ExpenseServiceImpl struct {
	expenseRepo  expense.ExpenseRepository
	itemRepo     expense.ItemRepository
	supplierRepo supplier.SupplierRepository
	tx           database.Transactor
	log          *logrus.Logger
	newGroupKey  func() string
}

func NewExpenseService(
	expenseRepo expense.ExpenseRepository,
	itemRepo expense.ItemRepository,
	supplierRepo supplier.SupplierRepository,
	tx database.Transactor,
	log *logrus.Logger,
) expense.ExpenseService {
	return &ExpenseServiceImpl{
		expenseRepo:  expenseRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
		tx:           tx,
		log:          log,
		newGroupKey:  uuid.NewString,
	}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) ([]expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var supplierName string
	if expense.Type(req.Type) == expense.TypeSupplier {
		sup, err := s.supplierRepo.GetByID(ctx, req.SupplierID, principal.BusinessID)
		if err != nil {
			return nil, err
		}
		supplierName = sup.Name
	}

	items := req.ToEntities(principal.BusinessID, s.newGroupKey(), supplierName)
	responses := make([]expense.ExpenseResponse, 0, len(items))
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, item := range items {
			created, err := s.expenseRepo.Create(ctx, item)
			if err != nil {
				return err
			}
			responses = append(responses, expense.ToResponse(created))
		}
		return nil
	})
	if err != nil {
		logger.LogError(s.log, module, "Create", "insert expense items", req, err)
		return nil, err
	}
	return responses, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, req expense.UpdateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	existing, err := s.expenseRepo.GetByID(ctx, req.ID, principal.BusinessID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}

	updated, err := s.expenseRepo.Update(ctx, req.Apply(existing))
	if err != nil {
		if !errors.Is(err, expense.ErrExpenseNotFound) {
			logger.LogError(s.log, module, "Update", "update expense", req.ID, err)
		}
		return expense.ExpenseResponse{}, err
	}
	return expense.ToResponse(updated), nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *ExpenseServiceImpl) GetByID(ctx context.Context, id string) (expense.ExpenseResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	e, err := s.expenseRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return expense.ExpenseResponse{}, err
	}
	return expense.ToResponse(e), nil
}

func (s *ExpenseServiceImpl) List(ctx context.Context, filter expense.Filter) (expense.ListExpenseResponse, error) {
	if err := filter.Validate(); err != nil {
		return expense.ListExpenseResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.ListExpenseResponse{}, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 30
	}

	list, total, err := s.expenseRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "List", "list expenses", filter, err)
		return expense.ListExpenseResponse{}, err
	}
	responses := make([]expense.ExpenseResponse, 0, len(list))
	for _, e := range list {
		responses = append(responses, expense.ToResponse(e))
	}
	return expense.ListExpenseResponse{
		Expenses:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *ExpenseServiceImpl) Stats(ctx context.Context, filter expense.Filter) (expense.Stats, error) {
	if err := filter.Validate(); err != nil {
		return expense.Stats{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return expense.Stats{}, err
	}
	stats, err := s.expenseRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "Stats", "aggregate expenses", filter, err)
		return expense.Stats{}, err
	}
	return stats, nil
}
