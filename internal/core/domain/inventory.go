package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Classification groups inventory items (Sedan, SUV, Truck, ...).
type Classification struct {
	ID   int64  `json:"classification_id"`
	Name string `json:"classification_name"`
}

// InventoryItem is a single vehicle offered for sale.
type InventoryItem struct {
	ID                 int64  `json:"inv_id"`
	ClassificationID   int64  `json:"classification_id"`
	ClassificationName string `json:"classification_name,omitempty"`
	Make               string `json:"inv_make"`
	Model              string `json:"inv_model"`
	Year               int    `json:"inv_year"`
	Description        string `json:"inv_description"`
	ImagePath          string `json:"inv_image"`
	ThumbnailPath      string `json:"inv_thumbnail"`
	Price              Price  `json:"inv_price"`
	Miles              int64  `json:"inv_miles"`
	Color              string `json:"inv_color"`
}

// Name is the human label used in titles and notices.
func (i InventoryItem) Name() string {
	return i.Make + " " + i.Model
}

// Price is a non-negative amount in cents.
type Price int64

// maxWholePrice keeps the amount in cents within int64.
const maxWholePrice = (math.MaxInt64 - 99) / 100

// ParsePrice accepts whole numbers or numbers with exactly two decimals.
func ParsePrice(s string) (Price, error) {
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" || (hasFrac && len(frac) != 2) {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	w, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if w > maxWholePrice {
		return 0, fmt.Errorf("price %q out of range", s)
	}
	var f uint64
	if hasFrac {
		if f, err = strconv.ParseUint(frac, 10, 8); err != nil {
			return 0, fmt.Errorf("invalid price %q: %w", s, err)
		}
	}
	return Price(w*100 + f), nil
}

// String renders the price with two decimals, e.g. "25999.00".
func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON emits the price as a decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}
