package handler

import (
	"fmt"
	"strconv"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// --- Form → domain record ---

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func toRegistration(f *registerForm) domain.Registration {
	return domain.Registration{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
	}
}

func toProfileUpdate(f *updateAccountForm) (domain.ProfileUpdate, error) {
	id, err := parseID(f.AccountID)
	if err != nil {
		return domain.ProfileUpdate{}, err
	}
	return domain.ProfileUpdate{
		AccountID: id,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}, nil
}

func toPasswordChange(f *changePasswordForm) (domain.PasswordChange, error) {
	id, err := parseID(f.AccountID)
	if err != nil {
		return domain.PasswordChange{}, err
	}
	return domain.PasswordChange{AccountID: id, Password: f.Password}, nil
}

func toVehicleSpec(f *vehicleForm) (domain.VehicleSpec, error) {
	classID, err := parseID(f.ClassificationID)
	if err != nil {
		return domain.VehicleSpec{}, err
	}
	price, err := domain.ParsePrice(f.Price)
	if err != nil {
		return domain.VehicleSpec{}, err
	}
	year, err := strconv.Atoi(f.Year)
	if err != nil {
		return domain.VehicleSpec{}, fmt.Errorf("invalid year %q: %w", f.Year, err)
	}
	miles, err := strconv.ParseInt(f.Miles, 10, 64)
	if err != nil {
		return domain.VehicleSpec{}, fmt.Errorf("invalid miles %q: %w", f.Miles, err)
	}
	return domain.VehicleSpec{
		ClassificationID: classID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		ImagePath:        f.Image,
		ThumbnailPath:    f.Thumbnail,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
	}, nil
}

// --- Values echoed into forms ---

func accountFields(a *domain.Account) map[string]string {
	return map[string]string{
		"account_id":        strconv.FormatInt(a.ID, 10),
		"account_firstname": a.FirstName,
		"account_lastname":  a.LastName,
		"account_email":     a.Email,
	}
}

func vehicleFields(f *vehicleForm) map[string]string {
	return map[string]string{
		"classification_id": f.ClassificationID,
		"inv_make":          f.Make,
		"inv_model":         f.Model,
		"inv_description":   f.Description,
		"inv_image":         f.Image,
		"inv_thumbnail":     f.Thumbnail,
		"inv_price":         f.Price,
		"inv_year":          f.Year,
		"inv_miles":         f.Miles,
		"inv_color":         f.Color,
	}
}

func itemFields(item *domain.InventoryItem) map[string]string {
	return map[string]string{
		"inv_id":            strconv.FormatInt(item.ID, 10),
		"classification_id": strconv.FormatInt(item.ClassificationID, 10),
		"inv_make":          item.Make,
		"inv_model":         item.Model,
		"inv_description":   item.Description,
		"inv_image":         item.ImagePath,
		"inv_thumbnail":     item.ThumbnailPath,
		"inv_price":         item.Price.String(),
		"inv_year":          strconv.Itoa(item.Year),
		"inv_miles":         strconv.FormatInt(item.Miles, 10),
		"inv_color":         item.Color,
	}
}
