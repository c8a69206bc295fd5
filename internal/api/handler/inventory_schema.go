package handler

import (
	"strings"

	"github.com/cse-motors/dealership/internal/api/validation"
)

// --- Inventory forms ---

type classificationForm struct {
	Name string `form:"classification_name" validate:"required,alpha,classification_available"`
}

func (f *classificationForm) Normalize() {
	f.Name = validation.Clean(f.Name)
}

type vehicleForm struct {
	ClassificationID string `form:"classification_id" validate:"required,digits,known_classification"`
	Make             string `form:"inv_make"          validate:"required,alpha,min=3"`
	Model            string `form:"inv_model"         validate:"required,vehiclemodel"`
	Description      string `form:"inv_description"   validate:"required,min=3"`
	Image            string `form:"inv_image"         validate:"required,vehicleimage"`
	Thumbnail        string `form:"inv_thumbnail"     validate:"required,vehicleimage"`
	Price            string `form:"inv_price"         validate:"required,price"`
	Year             string `form:"inv_year"          validate:"required,len=4,digits"`
	Miles            string `form:"inv_miles"         validate:"required,mileage"`
	Color            string `form:"inv_color"         validate:"required,alpha,min=3"`
}

func (f *vehicleForm) Normalize() {
	f.ClassificationID = strings.TrimSpace(f.ClassificationID)
	f.Make = validation.Clean(f.Make)
	f.Model = validation.Clean(f.Model)
	f.Description = validation.Clean(f.Description)
	f.Image = strings.TrimSpace(f.Image)
	f.Thumbnail = strings.TrimSpace(f.Thumbnail)
	f.Price = strings.TrimSpace(f.Price)
	f.Year = strings.TrimSpace(f.Year)
	f.Miles = strings.TrimSpace(f.Miles)
	f.Color = validation.Clean(f.Color)
}

type updateVehicleForm struct {
	Vehicle vehicleForm
	ID      string `form:"inv_id" validate:"required,digits"`
}

func (f *updateVehicleForm) Normalize() {
	f.Vehicle.Normalize()
	f.ID = strings.TrimSpace(f.ID)
}

// deleteVehicleForm only needs the id; the rest is echoed back on failure.
type deleteVehicleForm struct {
	ID    string `form:"inv_id" validate:"required,digits"`
	Make  string `form:"inv_make"`
	Model string `form:"inv_model"`
	Year  string `form:"inv_year"`
	Price string `form:"inv_price"`
}

func (f *deleteVehicleForm) Normalize() {
	f.ID = strings.TrimSpace(f.ID)
	f.Make = validation.Clean(f.Make)
	f.Model = validation.Clean(f.Model)
	f.Year = strings.TrimSpace(f.Year)
	f.Price = strings.TrimSpace(f.Price)
}
