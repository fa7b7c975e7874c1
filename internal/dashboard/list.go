// Package dashboard implements the dashboard's client-side state: list
// controllers that keep in-memory collections consistent with the
// backend, form controllers with validation, and the financial summary.
package dashboard

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrSuperAdminImmutable is returned when a toggle targets an account
// whose active flag the dashboard must not change.
var ErrSuperAdminImmutable = errors.New("contas SUPER_ADMIN não podem ser ativadas ou desativadas")

// ListConfig wires a List to one entity type. FetchAll must return the
// collection already mapped to the view projection.
type ListConfig[T any] struct {
	Log *zap.Logger

	// FetchAll retrieves and maps the full backend collection.
	FetchAll func(ctx context.Context) ([]T, error)
	// Toggle flips the entity's active flag on the backend.
	Toggle func(ctx context.Context, id string) error
	// ToggleFinancial flips adimplência on the backend and returns the
	// updated, mapped entity. Nil for entity types without one.
	ToggleFinancial func(ctx context.Context, id string) (T, error)

	ID     func(T) string
	Name   func(T) string
	Active func(T) bool
	// SetActive mutates the local copy after a successful Toggle.
	SetActive func(*T, bool)
	// GuardToggle, when set, can veto a toggle before any call is made.
	GuardToggle func(T) error
}

// List owns a displayed, filterable, orderable collection. All state
// transitions either replace the whole collection or patch it under the
// lock; a failure never leaves it partially updated.
type List[T any] struct {
	cfg ListConfig[T]

	mu    sync.Mutex
	items []T
}

// NewList returns an empty, not-yet-loaded List.
func NewList[T any](cfg ListConfig[T]) *List[T] {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &List[T]{cfg: cfg}
}

// Load fetches the full collection and replaces the local state. On
// failure the previous state is kept untouched.
func (l *List[T]) Load(ctx context.Context) error {
	items, err := l.cfg.FetchAll(ctx)
	if err != nil {
		l.cfg.Log.Error("failed to fetch collection", zap.Error(err))
		return err
	}

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
	return nil
}

// Items returns a copy of the current collection in display order.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Search applies the search field semantics: an empty term re-fetches
// the collection from the backend (the source of truth), a non-empty
// term filters the currently held collection by case-insensitive
// substring match on the display name. Successive non-empty terms
// narrow what is already displayed; only clearing resets the search
// space.
func (l *List[T]) Search(ctx context.Context, term string) error {
	if term == "" {
		return l.Load(ctx)
	}

	needle := strings.ToLower(term)
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := l.items[:0:0]
	for _, item := range l.items {
		if strings.Contains(strings.ToLower(l.cfg.Name(item)), needle) {
			filtered = append(filtered, item)
		}
	}
	l.items = filtered
	return nil
}

// ToggleStatus flips the entity's active flag on the backend, then
// mirrors the flip locally and restores the active-before-inactive
// ordering. Entities keep their relative order inside each group.
func (l *List[T]) ToggleStatus(ctx context.Context, id string) error {
	l.mu.Lock()
	idx := l.indexOf(id)
	if idx >= 0 && l.cfg.GuardToggle != nil {
		if err := l.cfg.GuardToggle(l.items[idx]); err != nil {
			l.mu.Unlock()
			return err
		}
	}
	l.mu.Unlock()

	if err := l.cfg.Toggle(ctx, id); err != nil {
		l.cfg.Log.Error("failed to toggle status", zap.String("id", id), zap.Error(err))
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if idx = l.indexOf(id); idx >= 0 {
		l.cfg.SetActive(&l.items[idx], !l.cfg.Active(l.items[idx]))
	}
	l.partition()
	return nil
}

// ToggleFinancial flips the entity's financial status on the backend,
// then removes the local copy and re-appends the updated entity at the
// end of the collection. Unlike ToggleStatus, position is not preserved.
func (l *List[T]) ToggleFinancial(ctx context.Context, id string) (T, error) {
	updated, err := l.cfg.ToggleFinancial(ctx, id)
	if err != nil {
		l.cfg.Log.Error("failed to toggle financial status", zap.String("id", id), zap.Error(err))
		return updated, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.indexOf(id); idx >= 0 {
		l.items = append(l.items[:idx], l.items[idx+1:]...)
	}
	l.items = append(l.items, updated)
	return updated, nil
}

// ApplyCreated prepends a just-created entity and restores the
// active-before-inactive ordering.
func (l *List[T]) ApplyCreated(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T{item}, l.items...)
	l.partition()
}

// indexOf returns the position of id, or -1. Caller holds the lock.
func (l *List[T]) indexOf(id string) int {
	for i, item := range l.items {
		if l.cfg.ID(item) == id {
			return i
		}
	}
	return -1
}

// partition stably moves active entities before inactive ones. Caller
// holds the lock.
func (l *List[T]) partition() {
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.cfg.Active(l.items[i]) && !l.cfg.Active(l.items[j])
	})
}
