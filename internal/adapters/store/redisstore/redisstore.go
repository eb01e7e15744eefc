// Package redisstore implements the document store port on Redis.
//
// Layout: each document is one JSON value at "doc:{kind}:{id}", with a set
// "docs:{kind}" indexing the IDs of that kind. Every committed mutation
// publishes the document ID on "docs:changed:{kind}"; watchers re-list the
// kind on each message, which gives the full-snapshot re-delivery the watch
// contract promises.
//
// Failure classification happens at this boundary: redis.Nil becomes
// domain.ErrNotFound and everything transient (timeouts, connection faults)
// becomes domain.ErrUnavailable. Raw driver errors never escape.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel/metric"

	"github.com/campusconnect/campus-api/internal/domain"
	"github.com/campusconnect/campus-api/internal/domain/workflow"
	"github.com/campusconnect/campus-api/internal/platform/telemetry"
	"github.com/campusconnect/campus-api/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.DocumentStore = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// updateAttempts bounds the optimistic-transaction retries in UpdateFields
// before the contention is reported as transient.
const updateAttempts = 3

// Store is a Redis-backed implementation of [ports.DocumentStore].
type Store struct {
	client      *redis.Client
	opTimeout   time.Duration
	watchBuffer int
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// storedDoc is the JSON shape persisted per document.
type storedDoc struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
}

// New creates a Store on an existing Redis client. opTimeout bounds each
// store call; watchBuffer sets the per-subscriber snapshot channel capacity.
// If metrics is nil, operation timing is not recorded.
func New(client *redis.Client, opTimeout time.Duration, watchBuffer int, metrics *telemetry.Metrics, logger *slog.Logger) *Store {
	if watchBuffer < 1 {
		watchBuffer = 1
	}
	return &Store{
		client:      client,
		opTimeout:   opTimeout,
		watchBuffer: watchBuffer,
		metrics:     metrics,
		logger:      logger,
	}
}

// Name identifies the store in health reports.
func (s *Store) Name() string {
	return "redis"
}

// HealthCheck pings the Redis server.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: %v", err)
	}
	return nil
}

// Create persists a new document. Returns domain.ErrConflict if a document
// with the same kind and ID already exists.
func (s *Store) Create(ctx context.Context, doc *ports.Document) (err error) {
	start := time.Now()
	defer func() { s.recordOp(ctx, "create", start, err) }()
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := json.Marshal(storedDoc{
		ID:        doc.ID,
		Kind:      doc.Kind,
		Fields:    doc.Fields,
		CreatedAt: doc.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding document %s/%s: %w", doc.Kind, doc.ID, err)
	}

	ok, err := s.client.SetNX(ctx, docKey(doc.Kind, doc.ID), data, 0).Result()
	if err != nil {
		return classify("create", err)
	}
	if !ok {
		return fmt.Errorf("document %s/%s already exists: %w", doc.Kind, doc.ID, domain.ErrConflict)
	}

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, indexKey(doc.Kind), doc.ID)
	pipe.Publish(ctx, changeChannel(doc.Kind), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return classify("create", err)
	}
	return nil
}

// Get returns a single document or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, kind, id string) (doc *ports.Document, err error) {
	start := time.Now()
	defer func() { s.recordOp(ctx, "get", start, err) }()
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, docKey(kind, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, classify("get", err)
	}
	return decodeDocument(kind, id, []byte(data))
}

// List returns documents of the kind matching the filter, ordered by creation
// time (newest first unless filter.Ascending).
func (s *Store) List(ctx context.Context, kind string, filter ports.Filter) (docs []ports.Document, err error) {
	start := time.Now()
	defer func() { s.recordOp(ctx, "list", start, err) }()
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	return s.list(ctx, kind, filter)
}

func (s *Store) list(ctx context.Context, kind string, filter ports.Filter) ([]ports.Document, error) {
	ids, err := s.client.SMembers(ctx, indexKey(kind)).Result()
	if err != nil {
		return nil, classify("list", err)
	}
	if len(ids) == 0 {
		return []ports.Document{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, docKey(kind, id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, classify("list", err)
	}

	docs := make([]ports.Document, 0, len(ids))
	for i, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			// An index entry can outlive its document between the DEL and
			// SRem of a concurrent delete. Skip it.
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, classify("list", err)
		}
		doc, err := decodeDocument(kind, ids[i], []byte(data))
		if err != nil {
			return nil, err
		}
		if matches(*doc, filter) {
			docs = append(docs, *doc)
		}
	}

	sortByCreation(docs, filter.Ascending)
	return docs, nil
}

// Watch subscribes to documents of the kind via pub/sub. Each change message
// triggers a re-list; the full matching list is delivered every time. A
// subscription failure produces one terminal error snapshot, then the channel
// closes and the caller must resubscribe.
func (s *Store) Watch(ctx context.Context, kind string, filter ports.Filter) (<-chan ports.Snapshot, error) {
	pubsub := s.client.Subscribe(ctx, changeChannel(kind))

	// Force the subscription to be established before the initial snapshot,
	// so no change slips between the two.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, classify("watch", err)
	}

	out := make(chan ports.Snapshot, s.watchBuffer)

	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()

		deliver := func() bool {
			listCtx, cancel := s.opContext(ctx)
			docs, err := s.list(listCtx, kind, filter)
			cancel()
			if err != nil {
				s.logger.ErrorContext(ctx, "watch re-list failed",
					slog.String("operation", "redisstore.Watch"),
					slog.String("kind", kind),
					slog.Any("error", err),
				)
				select {
				case out <- ports.Snapshot{Err: err}:
				case <-ctx.Done():
				}
				return false
			}
			select {
			case out <- ports.Snapshot{Docs: docs}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !deliver() {
			return
		}

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					select {
					case out <- ports.Snapshot{Err: fmt.Errorf("watch on %s: %w", kind, domain.ErrUnavailable)}:
					case <-ctx.Done():
					}
					return
				}
				if !deliver() {
					return
				}
			}
		}
	}()

	return out, nil
}

// UpdateFields applies the delta inside an optimistic WATCH/MULTI transaction
// so concurrent field updates of the same document never lose each other's
// writes. Contention is retried a few times, then reported as transient.
func (s *Store) UpdateFields(ctx context.Context, kind, id string, delta workflow.Delta) (err error) {
	start := time.Now()
	defer func() { s.recordOp(ctx, "update", start, err) }()
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	key := docKey(kind, id)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
			}
			return err
		}

		var stored storedDoc
		if err := json.Unmarshal([]byte(data), &stored); err != nil {
			return fmt.Errorf("decoding document %s/%s: %w", kind, id, err)
		}
		stored.Fields = workflow.ApplyDelta(stored.Fields, delta)

		updated, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("encoding document %s/%s: %w", kind, id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			pipe.Publish(ctx, changeChannel(kind), id)
			return nil
		})
		return err
	}

	for range updateAttempts {
		err = s.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return classify("update", err)
	}
	return nil
}

// Delete removes a document and its index entry.
func (s *Store) Delete(ctx context.Context, kind, id string) (err error) {
	start := time.Now()
	defer func() { s.recordOp(ctx, "delete", start, err) }()
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	deleted, err := s.client.Del(ctx, docKey(kind, id)).Result()
	if err != nil {
		return classify("delete", err)
	}
	if deleted == 0 {
		return fmt.Errorf("document %s/%s: %w", kind, id, domain.ErrNotFound)
	}

	pipe := s.client.Pipeline()
	pipe.SRem(ctx, indexKey(kind), id)
	pipe.Publish(ctx, changeChannel(kind), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return classify("delete", err)
	}
	return nil
}

// recordOp times one store call. The result label follows the same taxonomy
// the domain sentinels expose to callers.
func (s *Store) recordOp(ctx context.Context, op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrConflict):
		result = "conflict"
	default:
		result = "error"
	}

	s.metrics.StoreOpDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(
		telemetry.AttrStoreOp.String(op),
		telemetry.AttrResult.String(result),
	))
}

func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func docKey(kind, id string) string {
	return fmt.Sprintf("doc:%s:%s", kind, id)
}

func indexKey(kind string) string {
	return fmt.Sprintf("docs:%s", kind)
}

func changeChannel(kind string) string {
	return fmt.Sprintf("docs:changed:%s", kind)
}

func decodeDocument(kind, id string, data []byte) (*ports.Document, error) {
	var stored storedDoc
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decoding document %s/%s: %w", kind, id, err)
	}
	if stored.Fields == nil {
		stored.Fields = map[string]any{}
	}
	return &ports.Document{
		ID:        stored.ID,
		Kind:      stored.Kind,
		Fields:    stored.Fields,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// classify maps a driver failure to the transient-store sentinel. Everything
// that reaches here is a connection fault, timeout, or protocol error; the
// caller-visible taxonomy treats them all as retriable unavailability.
func classify(op string, err error) error {
	return fmt.Errorf("redis %s: %v: %w", op, err, domain.ErrUnavailable)
}

// matches reports whether the document satisfies every equality constraint.
func matches(doc ports.Document, filter ports.Filter) bool {
	for field, want := range filter.Equals {
		if !reflect.DeepEqual(doc.Fields[field], want) {
			return false
		}
	}
	return true
}

func sortByCreation(docs []ports.Document, ascending bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		if ascending {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}
