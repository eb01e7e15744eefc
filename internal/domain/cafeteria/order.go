package cafeteria

import (
	"fmt"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
)

// CartLine is one menu item and its quantity in a student's cart.
type CartLine struct {
	Item     MenuItem
	Quantity int
}

// OrderDetails is the payload of an order workflow item: the rendered line
// items, the computed total, and the display name shown to staff.
type OrderDetails struct {
	UserName   string
	Lines      []string
	TotalPrice float64
}

// BuildOrder turns a cart into order details: one "Name xN" line per cart
// entry and the summed total price. An empty cart is a validation error.
func BuildOrder(userName string, cart []CartLine) (*OrderDetails, error) {
	if len(cart) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"cart": "must not be empty"}}
	}

	details := &OrderDetails{UserName: userName}
	for _, line := range cart {
		if line.Quantity < 1 {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"cart": fmt.Sprintf("quantity for %q must be >= 1, got %d", line.Item.Name, line.Quantity),
			}}
		}
		details.Lines = append(details.Lines, fmt.Sprintf("%s x%d", line.Item.Name, line.Quantity))
		details.TotalPrice += line.Item.Price * float64(line.Quantity)
	}
	return details, nil
}

// Payload flattens the order details into the workflow item payload map.
func (o *OrderDetails) Payload() map[string]any {
	lines := make([]any, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, l)
	}
	return map[string]any{
		"user_name":   o.UserName,
		"items":       lines,
		"total_price": o.TotalPrice,
	}
}

// OrderFromItem reads order details back out of a workflow item payload.
func OrderFromItem(item *workflow.Item) *OrderDetails {
	details := &OrderDetails{
		UserName:   str(item.Payload, "user_name"),
		TotalPrice: num(item.Payload, "total_price"),
	}
	switch lines := item.Payload["items"].(type) {
	case []string:
		details.Lines = lines
	case []any:
		for _, l := range lines {
			if s, ok := l.(string); ok {
				details.Lines = append(details.Lines, s)
			}
		}
	}
	return details
}
