package order

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/master/customer"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/order"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/productionconfig"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/formula"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/validator"
	"github.com/sirupsen/logrus"
)

const module = "order"

type OrderServiceImpl struct {
	orderRepo    order.OrderRepository
	customerRepo customer.CustomerRepository
	resolver     productionconfig.Resolver
	log          *logrus.Logger
}

func NewOrderService(
	orderRepo order.OrderRepository,
	customerRepo customer.CustomerRepository,
	resolver productionconfig.Resolver,
	log *logrus.Logger,
) order.OrderService {
	return &OrderServiceImpl{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		resolver:     resolver,
		log:          log,
	}
}

// rulesFor returns the design stitch curve in effect on date, falling back
// to the built-in curve for businesses without any config.
func (s *OrderServiceImpl) rulesFor(ctx context.Context, businessID string, date time.Time) (formula.Rules, error) {
	cfg, err := s.resolver.ResolveForDate(ctx, businessID, date)
	if err != nil {
		if errors.Is(err, productionconfig.ErrNoConfigForBusiness) {
			return formula.DefaultRules(), nil
		}
		return nil, err
	}
	return cfg.DesignStitchRules(), nil
}

func (s *OrderServiceImpl) price(ctx context.Context, o order.Order) (order.Order, error) {
	rules, err := s.rulesFor(ctx, o.BusinessID, o.Date)
	if err != nil {
		logger.LogError(s.log, module, "price", "resolve stitch rules", o.Date, err)
		return order.Order{}, err
	}
	o.Inputs = Normalize(o.Inputs)
	o.Pricing = Price(o.Inputs, rules)
	return o, nil
}

func (s *OrderServiceImpl) Create(ctx context.Context, req order.CreateOrderRequest) (order.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return order.OrderResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.OrderResponse{}, err
	}

	cust, err := s.customerRepo.GetByID(ctx, req.CustomerID, principal.BusinessID)
	if err != nil {
		return order.OrderResponse{}, err
	}
	if !cust.IsActive {
		return order.OrderResponse{}, customer.ErrCustomerInactive
	}

	date, _ := validator.IsValidDate(req.Date)
	o, err := s.price(ctx, order.Order{
		BusinessID:   principal.BusinessID,
		CustomerID:   cust.ID,
		CustomerName: cust.Name,
		Description:  req.Description,
		Date:         date,
		MachineNo:    req.MachineNo,
		LotNo:        req.LotNo,
		Inputs:       req.PricingInput.Inputs(cust.Rate),
	})
	if err != nil {
		return order.OrderResponse{}, err
	}

	created, err := s.orderRepo.Create(ctx, o)
	if err != nil {
		logger.LogError(s.log, module, "Create", "insert order", req, err)
		return order.OrderResponse{}, err
	}
	return order.ToResponse(created), nil
}

// Update merges the patch and reprices. The customer base rate is refreshed
// only when the order moves to another customer.
func (s *OrderServiceImpl) Update(ctx context.Context, req order.UpdateOrderRequest) (order.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return order.OrderResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.OrderResponse{}, err
	}

	existing, err := s.orderRepo.GetByID(ctx, req.ID, principal.BusinessID)
	if err != nil {
		return order.OrderResponse{}, err
	}
	if existing.IsInvoiced() {
		return order.OrderResponse{}, order.ErrOrderInvoiced
	}

	merged := req.Apply(existing)
	if merged.CustomerID != existing.CustomerID {
		cust, err := s.customerRepo.GetByID(ctx, merged.CustomerID, principal.BusinessID)
		if err != nil {
			return order.OrderResponse{}, err
		}
		merged.CustomerName = cust.Name
		merged.CustomerBaseRate = cust.Rate
	}

	merged, err = s.price(ctx, merged)
	if err != nil {
		return order.OrderResponse{}, err
	}

	updated, err := s.orderRepo.Update(ctx, merged)
	if err != nil {
		if !errors.Is(err, order.ErrOrderNotFound) && !errors.Is(err, order.ErrOrderInvoiced) {
			logger.LogError(s.log, module, "Update", "update order", req.ID, err)
		}
		return order.OrderResponse{}, err
	}
	return order.ToResponse(updated), nil
}

func (s *OrderServiceImpl) Delete(ctx context.Context, id string) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id, principal.BusinessID)
}

func (s *OrderServiceImpl) GetByID(ctx context.Context, id string) (order.OrderResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.OrderResponse{}, err
	}
	o, err := s.orderRepo.GetByID(ctx, id, principal.BusinessID)
	if err != nil {
		return order.OrderResponse{}, err
	}
	return order.ToResponse(o), nil
}

func (s *OrderServiceImpl) List(ctx context.Context, filter order.Filter) (order.ListOrderResponse, error) {
	if err := filter.Validate(); err != nil {
		return order.ListOrderResponse{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.ListOrderResponse{}, err
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 30
	}

	orders, total, err := s.orderRepo.List(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "List", "list orders", filter, err)
		return order.ListOrderResponse{}, err
	}

	responses := make([]order.OrderResponse, 0, len(orders))
	for _, o := range orders {
		responses = append(responses, order.ToResponse(o))
	}
	return order.ListOrderResponse{
		Orders:     responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

func (s *OrderServiceImpl) Stats(ctx context.Context, filter order.Filter) (order.Stats, error) {
	if err := filter.Validate(); err != nil {
		return order.Stats{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.Stats{}, err
	}
	stats, err := s.orderRepo.Stats(ctx, principal.BusinessID, filter)
	if err != nil {
		logger.LogError(s.log, module, "Stats", "aggregate orders", filter, err)
		return order.Stats{}, err
	}
	return stats, nil
}

func (s *OrderServiceImpl) Preview(ctx context.Context, req order.PreviewRequest) (order.Pricing, error) {
	if err := req.Validate(); err != nil {
		return order.Pricing{}, err
	}
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return order.Pricing{}, err
	}

	baseRate := req.CustomerBaseRate
	if baseRate == nil {
		cust, err := s.customerRepo.GetByID(ctx, req.CustomerID, principal.BusinessID)
		if err != nil {
			return order.Pricing{}, err
		}
		baseRate = &cust.Rate
	}

	date := time.Now().UTC()
	if req.Date != "" {
		date, _ = validator.IsValidDate(req.Date)
	}
	rules, err := s.rulesFor(ctx, principal.BusinessID, date)
	if err != nil {
		return order.Pricing{}, err
	}
	return Price(req.PricingInput.Inputs(*baseRate), rules), nil
}
