package domain

// The record types below are built by handlers only from submissions that
// passed validation; services accept nothing else.

// Registration is a validated sign-up submission.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfileUpdate replaces the name and email of an account.
type ProfileUpdate struct {
	AccountID int64
	FirstName string
	LastName  string
	Email     string
}

// PasswordChange replaces the password of an account.
type PasswordChange struct {
	AccountID int64
	Password  string
}

// VehicleSpec carries every editable field of an inventory item.
type VehicleSpec struct {
	ClassificationID int64
	Make             string
	Model            string
	Year             int
	Description      string
	ImagePath        string
	ThumbnailPath    string
	Price            Price
	Miles            int64
	Color            string
}

// Item builds the inventory item with the given id from these fields.
func (s VehicleSpec) Item(id int64) InventoryItem {
	return InventoryItem{
		ID:               id,
		ClassificationID: s.ClassificationID,
		Make:             s.Make,
		Model:            s.Model,
		Year:             s.Year,
		Description:      s.Description,
		ImagePath:        s.ImagePath,
		ThumbnailPath:    s.ThumbnailPath,
		Price:            s.Price,
		Miles:            s.Miles,
		Color:            s.Color,
	}
}
