package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/cafeteria"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that CafeteriaService implements ports.CafeteriaService.
var _ ports.CafeteriaService = (*CafeteriaService)(nil)

// CafeteriaService manages the menu catalogue directly against the document
// store and routes orders through the workflow coordinator. Menu items are
// plain documents with no lifecycle; orders are workflow items.
type CafeteriaService struct {
	store  ports.DocumentStore
	coord  ports.Coordinator
	logger *slog.Logger
}

// NewCafeteriaService creates a CafeteriaService.
func NewCafeteriaService(store ports.DocumentStore, coord ports.Coordinator, logger *slog.Logger) *CafeteriaService {
	return &CafeteriaService{
		store:  store,
		coord:  coord,
		logger: logger,
	}
}

// ListMenu returns the menu, optionally narrowed to one category and to
// currently available items.
func (s *CafeteriaService) ListMenu(ctx context.Context, category string, availableOnly bool) ([]cafeteria.MenuItem, error) {
	filter := ports.Filter{Equals: map[string]any{}}
	if category != "" {
		filter.Equals["category"] = category
	}
	if availableOnly {
		filter.Equals["available"] = true
	}

	docs, err := s.store.List(ctx, cafeteria.KindMenuItem, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list menu",
			slog.String("operation", "ListMenu"),
			slog.Any("error", err),
		)
		return nil, err
	}

	items := make([]cafeteria.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *cafeteria.MenuItemFromFields(doc.ID, doc.CreatedAt, doc.Fields))
	}
	return items, nil
}

// GetMenuItem returns a single menu entry.
func (s *CafeteriaService) GetMenuItem(ctx context.Context, id string) (*cafeteria.MenuItem, error) {
	doc, err := s.store.Get(ctx, cafeteria.KindMenuItem, id)
	if err != nil {
		return nil, err
	}
	return cafeteria.MenuItemFromFields(doc.ID, doc.CreatedAt, doc.Fields), nil
}

// AddMenuItem creates a menu entry. Staff only.
func (s *CafeteriaService) AddMenuItem(ctx context.Context, actor domain.Actor, item cafeteria.MenuItem) (*cafeteria.MenuItem, error) {
	if err := requireRole(actor, domain.RoleStaff); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	item.CreatedAt = time.Now().UTC()

	doc := &ports.Document{
		ID:        item.ID,
		Kind:      cafeteria.KindMenuItem,
		Fields:    item.Fields(),
		CreatedAt: item.CreatedAt,
	}
	if err := s.store.Create(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "failed to add menu item",
			slog.String("operation", "AddMenuItem"),
			slog.String("item_id", item.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "menu item added",
		slog.String("item_id", item.ID),
		slog.String("name", item.Name),
	)
	return &item, nil
}

// SetAvailability toggles a menu entry's availability. Staff only.
func (s *CafeteriaService) SetAvailability(ctx context.Context, actor domain.Actor, id string, available bool) error {
	if err := requireRole(actor, domain.RoleStaff); err != nil {
		return err
	}

	delta := workflow.Delta{}.Set("available", available)
	if err := s.store.UpdateFields(ctx, cafeteria.KindMenuItem, id, delta); err != nil {
		s.logger.ErrorContext(ctx, "failed to set menu item availability",
			slog.String("operation", "SetAvailability"),
			slog.String("item_id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// RemoveMenuItem deletes a menu entry. Staff only.
func (s *CafeteriaService) RemoveMenuItem(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireRole(actor, domain.RoleStaff); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, cafeteria.KindMenuItem, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to remove menu item",
			slog.String("operation", "RemoveMenuItem"),
			slog.String("item_id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// PlaceOrder turns the actor's cart into a placed order.
func (s *CafeteriaService) PlaceOrder(ctx context.Context, actor domain.Actor, userName string, cart []cafeteria.CartLine) (*workflow.Item, error) {
	details, err := cafeteria.BuildOrder(userName, cart)
	if err != nil {
		return nil, err
	}

	item, err := s.coord.Create(ctx, workflow.KindOrder, actor, details.Payload())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", item.ID),
		slog.String("user_id", actor.ID),
		slog.Float64("total_price", details.TotalPrice),
	)
	return item, nil
}

// ListOrders returns orders visible to the actor: their own for students,
// every order for staff.
func (s *CafeteriaService) ListOrders(ctx context.Context, actor domain.Actor, status workflow.State) ([]workflow.Item, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	items, err := s.coord.List(ctx, workflow.KindOrder, ports.ItemFilter{Status: status})
	if err != nil {
		return nil, err
	}
	if isPrivileged(actor) {
		return items, nil
	}
	return filterItems(items, func(it workflow.Item) bool { return it.OwnerID == actor.ID }), nil
}

// WatchOrders subscribes to the same view ListOrders returns.
func (s *CafeteriaService) WatchOrders(ctx context.Context, actor domain.Actor, status workflow.State) (<-chan ports.ItemSnapshot, error) {
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	snaps, err := s.coord.Watch(ctx, workflow.KindOrder, ports.ItemFilter{Status: status})
	if err != nil {
		return nil, err
	}
	if isPrivileged(actor) {
		return snaps, nil
	}
	return filterSnapshots(ctx, snaps, func(it workflow.Item) bool { return it.OwnerID == actor.ID }), nil
}

// AdvanceOrder moves an order one step along its lifecycle. The transition
// table enforces staff-only access and strict step ordering.
func (s *CafeteriaService) AdvanceOrder(ctx context.Context, actor domain.Actor, id, transition string) (*workflow.Item, error) {
	return s.coord.RequestTransition(ctx, workflow.KindOrder, id, transition, actor, nil)
}
