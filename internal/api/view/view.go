// Package view renders the server-side pages: an echo.Renderer over embedded
// html/template files, the navigation builder and the one-shot notice cookie.
package view

import (
	"html/template"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// Data is the bag every page template receives.
type Data struct {
	Title    string
	Nav      template.HTML
	Notice   string
	Errors   []domain.FieldError
	Fields   map[string]string
	Identity domain.Identity

	// ClassificationList is the <select> of the inventory forms.
	ClassificationList template.HTML
	Classification     *domain.Classification
	Items              []domain.InventoryItem
	Item               *domain.InventoryItem
	Account            *domain.Account
}

// Field returns the echoed value of a submitted field.
func (d Data) Field(name string) string {
	return d.Fields[name]
}

// HasErrors is used by the layout to show the error list.
func (d Data) HasErrors() bool {
	return len(d.Errors) > 0
}

// Page names, one per file under templates/.
const (
	PageHome              = "home"
	PageError             = "error"
	PageLogin             = "login"
	PageRegister          = "register"
	PageAccount           = "account"
	PageAccountEdit       = "account-edit"
	PageAccountDelete     = "account-delete"
	PageClassification    = "classification"
	PageDetail            = "detail"
	PageInventory         = "inventory"
	PageAddClassification = "add-classification"
	PageAddInventory      = "add-inventory"
	PageEditInventory     = "edit-inventory"
	PageDeleteInventory   = "delete-inventory"
)
