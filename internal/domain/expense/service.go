package expense

import "context"

type ExpenseService interface {
	// Create stores every valid item of the request and returns them in
	// request order.
	Create(ctx context.Context, req CreateExpenseRequest) ([]ExpenseResponse, error)
	Update(ctx context.Context, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	List(ctx context.Context, filter Filter) (ListExpenseResponse, error)
	Stats(ctx context.Context, filter Filter) (Stats, error)

	CreateItem(ctx context.Context, req CreateItemRequest) (ItemResponse, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (ItemResponse, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]ItemResponse, error)
	ToggleItemStatus(ctx context.Context, id string) (ItemResponse, error)
}
