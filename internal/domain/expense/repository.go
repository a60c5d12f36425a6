package expense

import "context"

type ExpenseRepository interface {
	Create(ctx context.Context, e Expense) (Expense, error)
	Update(ctx context.Context, e Expense) (Expense, error)
	Delete(ctx context.Context, id string, businessID string) error
	GetByID(ctx context.Context, id string, businessID string) (Expense, error)
	List(ctx context.Context, businessID string, filter Filter) ([]Expense, int64, error)
	Stats(ctx context.Context, businessID string, filter Filter) (Stats, error)
}

type ItemRepository interface {
	Create(ctx context.Context, it Item) (Item, error)
	Update(ctx context.Context, it Item) (Item, error)
	GetByID(ctx context.Context, id string, businessID string) (Item, error)
	// List returns items ordered by expense type, then name.
	List(ctx context.Context, businessID string, filter ItemFilter) ([]Item, error)
	ToggleStatus(ctx context.Context, id string, businessID string) (Item, error)
}
