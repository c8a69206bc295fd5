package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cse-motors/dealership/internal/core/domain"
)

func sampleSpec(classificationID int64) domain.VehicleSpec {
	return domain.VehicleSpec{
		ClassificationID: classificationID,
		Make:             "Jeep",
		Model:            "Wrangler",
		Year:             2019,
		Description:      "The Jeep Wrangler is small and compact with enough power to get you where you want to go.",
		ImagePath:        "/images/vehicles/wrangler.jpg",
		ThumbnailPath:    "/images/vehicles/wrangler-tn.jpg",
		Price:            2899900,
		Miles:            41205,
		Color:            "Yellow",
	}
}

func TestInventoryService_ItemsByClassification(t *testing.T) {
	items := newStubItemRepo()
	svc := NewInventoryService(newStubClassRepo("Custom", "SUV"), items)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, sampleSpec(2)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	got, err := svc.ItemsByClassification(ctx, 2)
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one SUV, got %v (%v)", got, err)
	}

	empty, err := svc.ItemsByClassification(ctx, 1)
	if err != nil {
		t.Fatalf("empty classification must not be an error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}

	if _, err := svc.ItemsByClassification(ctx, 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown classification, got %v", err)
	}
}

func TestInventoryService_UpdateAndDelete(t *testing.T) {
	items := newStubItemRepo()
	svc := NewInventoryService(newStubClassRepo("SUV"), items)
	ctx := context.Background()

	added, _ := svc.AddItem(ctx, sampleSpec(1))
	spec := sampleSpec(1)
	spec.Color = "Green"
	updated, err := svc.UpdateItem(ctx, added.ID, spec)
	if err != nil || updated.Color != "Green" {
		t.Fatalf("UpdateItem: %+v (%v)", updated, err)
	}

	if err := svc.DeleteItem(ctx, added.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := svc.DeleteItem(ctx, added.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdateItem(ctx, added.ID, spec); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInventoryService_AddClassification_Duplicate(t *testing.T) {
	svc := NewInventoryService(newStubClassRepo("SUV"), newStubItemRepo())

	if _, err := svc.AddClassification(context.Background(), "SUV"); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	c, err := svc.AddClassification(context.Background(), "Truck")
	if err != nil || c.Name != "Truck" {
		t.Fatalf("AddClassification: %+v (%v)", c, err)
	}
}
