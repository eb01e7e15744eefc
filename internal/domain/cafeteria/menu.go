// Package cafeteria contains the cafeteria menu catalogue and the payload
// carried by order workflow items. Order status itself lives in the workflow
// transition tables; this package only knows what an order is made of.
package cafeteria

import (
	"fmt"
	"strings"
	"time"

	"github.com/campusconnect/campus-api/internal/domain"
)

// KindMenuItem is the document kind for menu items.
const KindMenuItem = "menu_item"

// MenuItem is one orderable cafeteria item. ImageURL arrives pre-uploaded
// from the external blob storage collaborator.
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	Available   bool
	CreatedAt   time.Time
}

// Validate checks business rules for the menu item.
func (m *MenuItem) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(m.Name) == "" {
		fields["name"] = domain.MsgRequired
	}
	if m.Price <= 0 {
		fields["price"] = fmt.Sprintf("must be positive, got %v", m.Price)
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Fields flattens the menu item for the document store.
func (m *MenuItem) Fields() map[string]any {
	return map[string]any{
		"name":        m.Name,
		"description": m.Description,
		"category":    m.Category,
		"price":       m.Price,
		"image_url":   m.ImageURL,
		"available":   m.Available,
	}
}

// MenuItemFromFields rebuilds a menu item from a stored field map.
func MenuItemFromFields(id string, createdAt time.Time, fields map[string]any) *MenuItem {
	available, _ := fields["available"].(bool)
	return &MenuItem{
		ID:          id,
		Name:        str(fields, "name"),
		Description: str(fields, "description"),
		Category:    str(fields, "category"),
		Price:       num(fields, "price"),
		ImageURL:    str(fields, "image_url"),
		Available:   available,
		CreatedAt:   createdAt,
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
