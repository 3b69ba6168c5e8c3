package sheetpos

import (
	"fmt"
	"hash/fnv"
)

// Product is one row of the products table. ID is not stored in the sheet;
// it is a content hash of (Name, Volume), so the same product keeps the same
// id across reads even when rows above it are deleted.
type Product struct {
	ID       string
	Name     string
	Volume   string // optional; "" when absent
	Price    *float64
	ImageURL string
	AIHint   string
}

// Key returns the composite uniqueness key of the product.
func (p Product) Key() string {
	return compositeKey(p.Name, p.Volume)
}

// User is one row of the users table. Rows are pre-provisioned; this module
// never deletes them.
type User struct {
	ID           string
	Login        string
	PasswordHash string // bcrypt hash or a legacy plaintext value
	FirstName    string
	MiddleName   string
	LastName     string
	Position     string
	IconColor    string // "#RGB".."#RRGGBBAA" when valid
}

// Order is one row of the sales history table. ID is generated client-side
// before the row is appended and never re-derived from position.
type Order struct {
	ID            string
	Items         []OrderItem
	TotalPrice    float64
	Timestamp     string // "dd.MM.yyyy HH:mm:ss"; raw value kept when unparseable
	PaymentMethod string
	Employee      string
}

// Quantity returns the total number of units across all order items.
func (o Order) Quantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

// OrderItem is a single line of an order. The items cell stores only name,
// volume and quantity, so Price is zero on decoded orders.
type OrderItem struct {
	ID       string
	Name     string
	Volume   string // optional; "" when absent
	Price    float64
	Quantity int
}

// compositeKey joins a name and an optional volume into the uniqueness key.
// Absent volumes normalize to the empty string so "x" and "x|" compare equal.
func compositeKey(name, volume string) string {
	return name + "|" + volume
}

// contentID derives a stable id from the identifying fields of an entity.
func contentID(name, volume string) string {
	h := fnv.New32a()
	h.Write([]byte(compositeKey(name, volume)))
	return fmt.Sprintf("%08x", h.Sum32())
}
