package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// ClassificationRepository defines persistence operations for classifications.
type ClassificationRepository interface {
	List(ctx context.Context) ([]domain.Classification, error)
	FindByID(ctx context.Context, id int64) (*domain.Classification, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) (*domain.Classification, error)
}

// InventoryRepository defines persistence operations for inventory items.
// Returned items carry their classification name.
type InventoryRepository interface {
	ListByClassification(ctx context.Context, classificationID int64) ([]domain.InventoryItem, error)
	FindByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	Create(ctx context.Context, spec domain.VehicleSpec) (*domain.InventoryItem, error)
	Update(ctx context.Context, id int64, spec domain.VehicleSpec) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}
