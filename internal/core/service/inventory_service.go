package service

import (
	"context"
	"fmt"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// InventoryService implements the classification and vehicle use cases.
type InventoryService struct {
	classes ports.ClassificationRepository
	items   ports.InventoryRepository
}

func NewInventoryService(classes ports.ClassificationRepository, items ports.InventoryRepository) *InventoryService {
	return &InventoryService{classes: classes, items: items}
}

// Classifications returns every classification ordered by name.
func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	list, err := s.classes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	return list, nil
}

func (s *InventoryService) Classification(ctx context.Context, id int64) (*domain.Classification, error) {
	c, err := s.classes.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get classification %d: %w", id, err)
	}
	return c, nil
}

func (s *InventoryService) AddClassification(ctx context.Context, name string) (*domain.Classification, error) {
	c, err := s.classes.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("add classification %q: %w", name, err)
	}
	return c, nil
}

// ItemsByClassification returns the vehicles of an existing classification.
// An existing classification without vehicles yields an empty, non-nil slice.
func (s *InventoryService) ItemsByClassification(ctx context.Context, classificationID int64) ([]domain.InventoryItem, error) {
	if _, err := s.classes.FindByID(ctx, classificationID); err != nil {
		return nil, fmt.Errorf("list inventory for classification %d: %w", classificationID, err)
	}
	items, err := s.items.ListByClassification(ctx, classificationID)
	if err != nil {
		return nil, fmt.Errorf("list inventory for classification %d: %w", classificationID, err)
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	return items, nil
}

func (s *InventoryService) Item(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get inventory item %d: %w", id, err)
	}
	return item, nil
}

func (s *InventoryService) AddItem(ctx context.Context, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	item, err := s.items.Create(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("add inventory item: %w", err)
	}
	return item, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, id int64, spec domain.VehicleSpec) (*domain.InventoryItem, error) {
	item, err := s.items.Update(ctx, id, spec)
	if err != nil {
		return nil, fmt.Errorf("update inventory item %d: %w", id, err)
	}
	return item, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete inventory item %d: %w", id, err)
	}
	return nil
}
