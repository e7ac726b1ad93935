// Package querycache is a tagged read-through cache for upstream
// queries. Every entry is keyed by a query family plus its parameters,
// so invalidation can match on the family alone: adjusting a timelog in
// March must also drop the cached June aggregate, regardless of which
// month the kiosk is currently displaying.
package querycache

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Family tags a logical query regardless of its parameters.
type Family string

// Query families used by the kiosk. The names follow the upstream
// client contract.
const (
	FamilyStatus               Family = "timelog-status"
	FamilyToday                Family = "today-timelog"
	FamilyMonthly              Family = "monthly-timelogs"
	FamilyRange                Family = "range-timelogs"
	FamilyTotalHours           Family = "total-hours"
	FamilyTimelogsHr           Family = "timelogs-hr"
	FamilyPresence             Family = "users-presence"
	FamilyEditRequestsEmployee Family = "edit-requests-employee"
	FamilyEditRequestsHr       Family = "edit-requests-hr"
	FamilyNotifications        Family = "notifications"
)

// Key identifies one cached query instance.
type Key struct {
	Family Family
	Params string
}

func (k Key) String() string {
	return string(k.Family) + "|" + k.Params
}

// FetchFunc loads the fresh value for a key from upstream.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time
	fetch     FetchFunc
}

// Cache deduplicates concurrent fetches per key and retains the last
// fetch function per entry so a family-wide refetch can reload every
// parameter combination that was ever requested.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*entry
	group   singleflight.Group

	now func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		now:     time.Now,
	}
}

// Get returns the cached value when it is younger than ttl, otherwise
// fetches, stores, and returns a fresh one. Concurrent callers for the
// same key share a single fetch. A failed fetch leaves any stale entry
// in place so readers keep the last known value.
func (c *Cache) Get(ctx context.Context, key Key, ttl time.Duration, fetch FetchFunc) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	if ok && !e.fetchedAt.IsZero() && c.now().Sub(e.fetchedAt) < ttl {
		value := e.value
		c.mu.RUnlock()
		return value, nil
	}
	c.mu.RUnlock()

	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, fresh, fetch)
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Peek returns the cached value without fetching, stale or not.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.fetchedAt.IsZero() {
		return nil, false
	}
	return e.value, true
}

// InvalidateFamily marks every entry in the given families stale. The
// entries and their fetch functions are kept so RefetchFamily can
// reload them.
func (c *Cache) InvalidateFamily(families ...Family) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if familyMatch(key.Family, families) {
			e.fetchedAt = time.Time{}
		}
	}
}

// RefetchFamily eagerly reloads every entry in the given families using
// the fetch function recorded at its last Get. Population is
// last-write-wins; a concurrent stale poll losing the race is corrected
// by this refetch. Individual failures are joined and returned, but a
// failure on one key does not stop the others.
func (c *Cache) RefetchFamily(ctx context.Context, families ...Family) error {
	c.mu.RLock()
	fetches := make(map[Key]FetchFunc)
	for key, e := range c.entries {
		if familyMatch(key.Family, families) && e.fetch != nil {
			fetches[key] = e.fetch
		}
	}
	c.mu.RUnlock()

	var errs []error
	for key, fetch := range fetches {
		fresh, err := fetch(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c.store(key, fresh, fetch)
	}
	return errors.Join(errs...)
}

// Reconcile invalidates and then eagerly refetches the families, in
// that order, so mounted readers observe post-mutation server state.
func (c *Cache) Reconcile(ctx context.Context, families ...Family) error {
	c.InvalidateFamily(families...)
	return c.RefetchFamily(ctx, families...)
}

func (c *Cache) store(key Key, value any, fetch FetchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{
		value:     value,
		fetchedAt: c.now(),
		fetch:     fetch,
	}
}

func familyMatch(f Family, families []Family) bool {
	for _, candidate := range families {
		if f == candidate {
			return true
		}
	}
	return false
}
