// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/campusconnect/campus-api/internal/app/fanout"
	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/platform/telemetry"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time check that Coordinator implements ports.Coordinator.
var _ ports.Coordinator = (*Coordinator)(nil)

// lockStripes is the size of the keyed-mutex stripe array. Transitions on
// the same item always hash to the same stripe, so per-item mutual exclusion
// holds; unrelated items rarely contend.
const lockStripes = 64

// hookWorkers bounds the concurrency of post-commit hook dispatch.
const hookWorkers = 4

// CoordinatorConfig carries the coordinator tuning knobs.
type CoordinatorConfig struct {
	// RetryDelay is the pause before the single retry after a transient
	// store failure mid-transition.
	RetryDelay time.Duration

	// HookTimeout bounds each post-commit hook batch.
	HookTimeout time.Duration
}

// Coordinator is the single write path for workflow items. Every status
// mutation funnels through RequestTransition, which serializes per item,
// validates against the item's state machine definition, commits the
// resulting field delta, and fans the committed event out to hooks.
type Coordinator struct {
	store   ports.DocumentStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
	cfg     CoordinatorConfig

	locks [lockStripes]sync.Mutex

	hookMu sync.RWMutex
	hooks  []ports.Hook
}

// NewCoordinator creates a Coordinator on the given document store.
// If metrics is nil, metric recording is skipped.
func NewCoordinator(store ports.DocumentStore, cfg CoordinatorConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Coordinator {
	if cfg.HookTimeout <= 0 {
		cfg.HookTimeout = 10 * time.Second
	}
	return &Coordinator{
		store:   store,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
	}
}

// RegisterHook attaches a post-commit hook. Not safe to call after the
// coordinator starts serving requests.
func (c *Coordinator) RegisterHook(hook ports.Hook) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Dispatch fans a committed event out to the registered hooks without
// waiting for them. The coordinator calls this for its own commits; services
// that mutate documents outside the workflow lifecycle call it so their
// events ride the same bus.
func (c *Coordinator) Dispatch(event ports.Event) {
	c.dispatchHooks(event)
}

// Create persists a new item of the kind in its definition's initial state.
func (c *Coordinator) Create(ctx context.Context, kind workflow.Kind, owner domain.Actor, payload map[string]any) (*workflow.Item, error) {
	def, ok := workflow.DefinitionFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	item := &workflow.Item{
		ID:        uuid.NewString(),
		Kind:      kind,
		Status:    def.Initial,
		OwnerID:   owner.ID,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	doc := &ports.Document{
		ID:        item.ID,
		Kind:      string(kind),
		Fields:    item.Fields(),
		CreatedAt: item.CreatedAt,
	}
	if err := c.store.Create(ctx, doc); err != nil {
		c.logger.ErrorContext(ctx, "failed to create item",
			slog.String("operation", "Coordinator.Create"),
			slog.String("kind", string(kind)),
			slog.String("item_id", item.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	c.logger.InfoContext(ctx, "item created",
		slog.String("kind", string(kind)),
		slog.String("item_id", item.ID),
		slog.String("status", string(item.Status)),
	)

	c.dispatchHooks(ports.Event{
		Type:   ports.EventCreated,
		Kind:   string(kind),
		ID:     item.ID,
		Fields: doc.Fields,
		Actor:  owner,
	})

	return item, nil
}

// Get returns a single item.
func (c *Coordinator) Get(ctx context.Context, kind workflow.Kind, id string) (*workflow.Item, error) {
	doc, err := c.store.Get(ctx, string(kind), id)
	if err != nil {
		return nil, err
	}
	return workflow.ItemFromFields(doc.ID, kind, doc.CreatedAt, doc.Fields), nil
}

// List returns items of the kind matching the filter.
func (c *Coordinator) List(ctx context.Context, kind workflow.Kind, filter ports.ItemFilter) ([]workflow.Item, error) {
	docs, err := c.store.List(ctx, string(kind), storeFilter(filter))
	if err != nil {
		return nil, err
	}
	return itemsFromDocs(kind, docs), nil
}

// Watch subscribes to items of the kind. Each delivery is the full matching
// list. A snapshot with Err set is terminal; the caller must resubscribe.
func (c *Coordinator) Watch(ctx context.Context, kind workflow.Kind, filter ports.ItemFilter) (<-chan ports.ItemSnapshot, error) {
	snaps, err := c.store.Watch(ctx, string(kind), storeFilter(filter))
	if err != nil {
		return nil, err
	}

	out := make(chan ports.ItemSnapshot, cap(snaps))
	go func() {
		defer close(out)
		for snap := range snaps {
			if snap.Err != nil {
				select {
				case out <- ports.ItemSnapshot{Err: snap.Err}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case out <- ports.ItemSnapshot{Items: itemsFromDocs(kind, snap.Docs)}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RequestTransition validates the named transition for the actor against the
// item's current state and, if legal, commits the resulting delta. Concurrent
// transitions on the same item are serialized; a transient store failure
// during commit is retried once.
func (c *Coordinator) RequestTransition(ctx context.Context, kind workflow.Kind, id, transition string, actor domain.Actor, offer *workflow.Offer) (*workflow.Item, error) {
	def, ok := workflow.DefinitionFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown item kind %q", domain.ErrValidation, kind)
	}
	if err := actor.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	lock := c.lockFor(string(kind), id)
	lock.Lock()
	defer lock.Unlock()

	item, err := c.transitionLocked(ctx, def, kind, id, transition, actor, offer)
	c.recordTransition(ctx, kind, transition, start, err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Coordinator) transitionLocked(ctx context.Context, def workflow.Definition, kind workflow.Kind, id, transition string, actor domain.Actor, offer *workflow.Offer) (*workflow.Item, error) {
	doc, err := c.store.Get(ctx, string(kind), id)
	if err != nil {
		return nil, err
	}
	item := workflow.ItemFromFields(doc.ID, kind, doc.CreatedAt, doc.Fields)

	delta, err := workflow.Validate(def, item, transition, actor, offer)
	if err != nil {
		c.logger.WarnContext(ctx, "transition rejected",
			slog.String("operation", "Coordinator.RequestTransition"),
			slog.String("kind", string(kind)),
			slog.String("item_id", id),
			slog.String("transition", transition),
			slog.String("status", string(item.Status)),
			slog.String("actor_id", actor.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := c.commitDelta(ctx, kind, id, delta); err != nil {
		c.logger.ErrorContext(ctx, "failed to commit transition",
			slog.String("operation", "Coordinator.RequestTransition"),
			slog.String("kind", string(kind)),
			slog.String("item_id", id),
			slog.String("transition", transition),
			slog.Any("error", err),
		)
		return nil, err
	}

	committed := workflow.ApplyDelta(doc.Fields, delta)
	result := workflow.ItemFromFields(doc.ID, kind, doc.CreatedAt, committed)

	c.logger.InfoContext(ctx, "transition committed",
		slog.String("kind", string(kind)),
		slog.String("item_id", id),
		slog.String("transition", transition),
		slog.String("status", string(result.Status)),
		slog.String("actor_id", actor.ID),
	)

	c.dispatchHooks(ports.Event{
		Type:       ports.EventTransition,
		Kind:       string(kind),
		ID:         id,
		Transition: transition,
		Fields:     committed,
		Actor:      actor,
	})

	return result, nil
}

// commitDelta writes the delta, retrying once after a short pause when the
// store reports a transient failure.
func (c *Coordinator) commitDelta(ctx context.Context, kind workflow.Kind, id string, delta workflow.Delta) error {
	err := c.store.UpdateFields(ctx, string(kind), id, delta)
	if err == nil || !errors.Is(err, domain.ErrUnavailable) {
		return err
	}

	c.logger.WarnContext(ctx, "retrying transition commit",
		slog.String("operation", "Coordinator.RequestTransition"),
		slog.String("kind", string(kind)),
		slog.String("item_id", id),
		slog.Duration("backoff", c.cfg.RetryDelay),
		slog.Any("error", err),
	)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.cfg.RetryDelay):
	}
	return c.store.UpdateFields(ctx, string(kind), id, delta)
}

// Delete removes an item. Only the owner, staff, or a moderator may delete.
func (c *Coordinator) Delete(ctx context.Context, kind workflow.Kind, id string, actor domain.Actor) error {
	doc, err := c.store.Get(ctx, string(kind), id)
	if err != nil {
		return err
	}
	item := workflow.ItemFromFields(doc.ID, kind, doc.CreatedAt, doc.Fields)

	if actor.ID != item.OwnerID && actor.Role != domain.RoleStaff && actor.Role != domain.RoleModerator {
		return fmt.Errorf("actor %s may not delete %s/%s: %w", actor.ID, kind, id, domain.ErrForbidden)
	}

	if err := c.store.Delete(ctx, string(kind), id); err != nil {
		c.logger.ErrorContext(ctx, "failed to delete item",
			slog.String("operation", "Coordinator.Delete"),
			slog.String("kind", string(kind)),
			slog.String("item_id", id),
			slog.Any("error", err),
		)
		return err
	}

	c.dispatchHooks(ports.Event{
		Type:   ports.EventDeleted,
		Kind:   string(kind),
		ID:     id,
		Fields: doc.Fields,
		Actor:  actor,
	})

	return nil
}

// dispatchHooks runs every registered hook for the event, detached from the
// request that caused it. Failures are logged and never propagated; hooks
// are best-effort by contract.
func (c *Coordinator) dispatchHooks(event ports.Event) {
	c.hookMu.RLock()
	hooks := make([]ports.Hook, len(c.hooks))
	copy(hooks, c.hooks)
	c.hookMu.RUnlock()

	if len(hooks) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.HookTimeout)
		defer cancel()

		errs := fanout.Each(ctx, hookWorkers, hooks, func(ctx context.Context, h ports.Hook) error {
			return h.AfterCommit(ctx, event)
		})
		for i, err := range errs {
			if err != nil {
				c.logger.Error("hook failed",
					slog.String("operation", "Coordinator.dispatchHooks"),
					slog.String("hook", hooks[i].Name()),
					slog.String("event", string(event.Type)),
					slog.String("kind", event.Kind),
					slog.String("item_id", event.ID),
					slog.Any("error", err),
				)
			}
		}
	}()
}

func (c *Coordinator) lockFor(kind, id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(id))
	return &c.locks[h.Sum32()%lockStripes]
}

func (c *Coordinator) recordTransition(ctx context.Context, kind workflow.Kind, transition string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}

	result := "success"
	switch {
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	case errors.Is(err, domain.ErrConflict):
		result = "rejected"
	case err != nil:
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrKind.String(string(kind)),
		telemetry.AttrTransition.String(transition),
		telemetry.AttrResult.String(result),
	)
	c.metrics.TransitionDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	c.metrics.TransitionTotal.Add(ctx, 1, attrs)
}

func storeFilter(filter ports.ItemFilter) ports.Filter {
	f := ports.Filter{Ascending: filter.Ascending}
	if filter.Status != "" {
		f.Equals = map[string]any{workflow.FieldStatus: string(filter.Status)}
	}
	return f
}

func itemsFromDocs(kind workflow.Kind, docs []ports.Document) []workflow.Item {
	items := make([]workflow.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *workflow.ItemFromFields(doc.ID, kind, doc.CreatedAt, doc.Fields))
	}
	return items
}
