// Package resolve turns raw ACL identifiers into typed values against one
// immutable list of installed apps.
//
// A resolver is bound to the app list it was built with and must be
// replaced when that list changes: an address can resolve to an app once
// the app is installed.
package resolve

import (
	"sync"

	"github.com/orgacl/aclview/pkg/acl"
)

type EntityResolver struct {
	apps []acl.App

	lock  *sync.RWMutex
	cache map[string]acl.Entity
}

func NewEntityResolver(apps []acl.App) *EntityResolver {
	snapshot := make([]acl.App, len(apps))
	copy(snapshot, apps)

	return &EntityResolver{
		apps:  snapshot,
		lock:  &sync.RWMutex{},
		cache: make(map[string]acl.Entity),
	}
}

func (r *EntityResolver) Apps() []acl.App {
	return r.apps
}

// Resolve never fails: an address that is neither a sentinel nor an
// installed app is a plain address.
func (r *EntityResolver) Resolve(address string) acl.Entity {
	key := acl.NormalizeAddress(address)

	r.lock.RLock()
	entity, ok := r.cache[key]
	r.lock.RUnlock()
	if ok {
		return copyEntity(entity)
	}

	entity = resolveEntity(r.apps, key)

	r.lock.Lock()
	r.cache[key] = entity
	r.lock.Unlock()

	return copyEntity(entity)
}

// CacheSize is for testing
func (r *EntityResolver) CacheSize() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.cache)
}

func resolveEntity(apps []acl.App, address string) acl.Entity {
	if acl.IsAnyEntity(address) {
		return acl.NewAnyEntity()
	}
	if acl.IsBurnEntity(address) {
		return acl.NewBurnEntity()
	}
	if app, ok := acl.FindApp(apps, address); ok {
		return acl.NewAppEntity(app)
	}

	return acl.NewAddressEntity(address)
}

// Callers get their own app so the cached value cannot be mutated.
func copyEntity(entity acl.Entity) acl.Entity {
	if entity.App == nil {
		return entity
	}

	app := *entity.App
	app.Roles = append([]acl.Role(nil), app.Roles...)
	entity.App = &app

	return entity
}
