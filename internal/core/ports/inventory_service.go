package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// InventoryService defines the classification and vehicle use cases.
type InventoryService interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	Classification(ctx context.Context, id int64) (*domain.Classification, error)
	AddClassification(ctx context.Context, name string) (*domain.Classification, error)

	ItemsByClassification(ctx context.Context, classificationID int64) ([]domain.InventoryItem, error)
	Item(ctx context.Context, id int64) (*domain.InventoryItem, error)
	AddItem(ctx context.Context, spec domain.VehicleSpec) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, id int64, spec domain.VehicleSpec) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
}
