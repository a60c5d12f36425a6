package invoice

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/invoice"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const module = "invoice"

type InvoiceServiceImpl struct {
	invoiceRepo  invoice.InvoiceRepository
	orderRepo    order.OrderRepository
	customerRepo customer.CustomerRepository
	tx           database.Transactor
	locker       lock.Locker
	log          *logrus.Logger
	now          func() time.Time
}

func NewInvoiceService(
	invoiceRepo invoice.InvoiceRepository,
	orderRepo order.OrderRepository,
	customerRepo customer.CustomerRepository,
	tx database.Transactor,
	locker lock.Locker,
	log *logrus.Logger,
) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		tx:           tx,
		locker:       locker,
		log:          log,
		now:          time.Now,
	}
}

// Create bills the selected orders. Creation is serialized per customer by a
// lock, and the orders are claimed with an invoice_id IS NULL guard inside
// the same transaction as the invoice row.
func (s *InvoiceServiceImpl) Create(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID, principal.BusinessID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	lk, err := s.locker.Obtain(ctx, lock.Key("invoice", cust.ID), lock.DefaultTTL)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	defer func() {
		if err := lk.Release(context.WithoutCancel(ctx)); err != nil {
			logger.LogError(s.log, module, "Create", "release invoice lock", cust.ID, err)
		}
	}()

	orders, err := s.orderRepo.GetByIDs(ctx, req.OrderIDs, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "Create", "load orders", req.OrderIDs, err)
		return invoice.InvoiceResponse{}, err
	}
	if len(orders) != len(req.OrderIDs) {
		return invoice.InvoiceResponse{}, invoice.ErrOrdersUnavailable
	}
	total := decimal.Zero
	for _, o := range orders {
		if o.CustomerID != cust.ID || o.IsInvoiced() {
			return invoice.InvoiceResponse{}, invoice.ErrOrdersUnavailable
		}
		total = total.Add(o.TotalAmount)
	}

	invoiceDate := s.now().UTC().Truncate(24 * time.Hour)
	if req.InvoiceDate != "" {
		invoiceDate, _ = validator.IsValidDate(req.InvoiceDate)
	}

	inv := invoice.Invoice{
		BusinessID:     principal.BusinessID,
		CustomerID:     cust.ID,
		CustomerName:   cust.Name,
		CustomerPerson: cust.Person,
		OrderIDs:       req.OrderIDs,
		OrderCount:     len(req.OrderIDs),
		TotalAmount:    total,
		InvoiceDate:    invoiceDate,
		Note:           req.Note,
	}

	var created invoice.Invoice
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		seq, err := s.invoiceRepo.NextSequence(txCtx, principal.BusinessID, invoiceDate.Year())
		if err != nil {
			return err
		}
		inv.Number = invoice.FormatNumber(invoiceDate.Year(), seq)

		created, err = s.invoiceRepo.Create(txCtx, inv)
		if err != nil {
			return err
		}

		claimed, err := s.invoiceRepo.AttachOrders(txCtx, created)
		if err != nil {
			return err
		}
		if claimed != int64(len(req.OrderIDs)) {
			return invoice.ErrOrdersUnavailable
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, invoice.ErrOrdersUnavailable) {
			logger.LogError(s.log, module, "Create", "create invoice", req, err)
		}
		return invoice.InvoiceResponse{}, err
	}
	return invoice.ToResponse(created), nil
}

func (s *InvoiceServiceImpl) GetByID(ctx context.Context, id string) (invoice.InvoiceDetailResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return invoice.InvoiceDetailResponse{}, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return invoice.InvoiceDetailResponse{}, err
	}

	orders, err := s.orderRepo.GetByIDs(ctx, inv.OrderIDs, principal.BusinessID)
	if err != nil {
		logger.LogError(s.log, module, "GetByID", "load invoice orders", id, err)
		return invoice.InvoiceDetailResponse{}, err
	}

	opening := decimal.Zero
	cust, err := s.customerRepo.GetByID(ctx, inv.CustomerID, principal.BusinessID)
	switch {
	case err == nil:
		opening = cust.OpeningBalance
	case !errors.Is(err, customer.ErrCustomerNotFound):
		return invoice.InvoiceDetailResponse{}, err
	}

	prior, err := s.invoiceRepo.PriorTotals(ctx, inv)
	if err != nil {
		logger.LogError(s.log, module, "GetByID", "sum prior ledger", id, err)
		return invoice.InvoiceDetailResponse{}, err
	}

	outstanding := opening.Add(prior.Invoiced).Sub(prior.Paid)
	orderResponses := make([]order.OrderResponse, 0, len(orders))
	for _, o := range orders {
		orderResponses = append(orderResponses, order.ToResponse(o))
	}
	return invoice.InvoiceDetailResponse{
		InvoiceResponse:    invoice.ToResponse(inv),
		Orders:             orderResponses,
		OpeningBalance:     opening,
		PreviousInvoiced:   prior.Invoiced,
		PaidBeforeInvoice:  prior.Paid,
		OutstandingBalance: outstanding,
		NewBalance:         outstanding.Add(inv.TotalAmount),
	}, nil
}

func (s *InvoiceServiceImpl) List(ctx context.Context, filter invoice.Filter) (invoice.ListInvoiceResponse, error) {
	if err := filter.Validate(); err != nil {
		return invoice.ListInvoiceResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return invoice.ListInvoiceResponse{}, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 30
	}

	invoices, total, err := s.invoiceRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "List", "list invoices", filter, err)
		return invoice.ListInvoiceResponse{}, err
	}

	responses := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, invoice.ToResponse(inv))
	}
	return invoice.ListInvoiceResponse{
		Invoices:   responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// Delete removes the invoice and returns its orders to the open pool.
func (s *InvoiceServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.invoiceRepo.ReleaseOrders(txCtx, id, principal.BusinessID); err != nil {
			return err
		}
		return s.invoiceRepo.Delete(txCtx, id, principal.BusinessID)
	})
	if err != nil && !errors.Is(err, invoice.ErrInvoiceNotFound) {
		logger.LogError(s.log, module, "Delete", "delete invoice", id, err)
	}
	return err
}

func (s *InvoiceServiceImpl) OrderGroups(ctx context.Context, customerName string) ([]invoice.OrderGroup, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListUninvoiced(ctx, principal.BusinessID, customerName)
	if err != nil {
		logger.LogError(s.log, module, "OrderGroups", "list uninvoiced orders", customerName, err)
		return nil, err
	}
	return GroupOrders(orders), nil
}

// GroupOrders buckets orders by customer. Groups keep the order of their
// first appearance, so newest-first input yields groups by latest order.
func GroupOrders(orders []order.Order) []invoice.OrderGroup {
	groups := []invoice.OrderGroup{}
	index := map[string]int{}
	for _, o := range orders {
		i, ok := index[o.CustomerID]
		if !ok {
			i = len(groups)
			index[o.CustomerID] = i
			groups = append(groups, invoice.OrderGroup{
				CustomerID:      o.CustomerID,
				CustomerName:    o.CustomerName,
				LatestOrderDate: o.Date.Format(validator.DateLayout),
			})
		}
		g := &groups[i]
		g.TotalOrders++
		g.TotalAmount = g.TotalAmount.Add(o.TotalAmount)
		g.Orders = append(g.Orders, order.ToResponse(o))
	}
	return groups
}
