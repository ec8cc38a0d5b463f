package resolve

import (
	"strings"
	"sync"

	"github.com/orgacl/aclview/pkg/acl"
)

type RoleResolver struct {
	apps []acl.App

	lock  *sync.RWMutex
	cache map[roleKey]*acl.Role
}

type roleKey struct {
	proxyAddress string
	roleBytes    string
}

func NewRoleResolver(apps []acl.App) *RoleResolver {
	snapshot := make([]acl.App, len(apps))
	copy(snapshot, apps)

	return &RoleResolver{
		apps:  snapshot,
		lock:  &sync.RWMutex{},
		cache: make(map[roleKey]*acl.Role),
	}
}

// Resolve checks the kernel roles first, then the roles declared by the app
// installed at proxyAddress. It returns nil when neither knows the role.
func (r *RoleResolver) Resolve(proxyAddress, roleBytes string) *acl.Role {
	key := roleKey{
		proxyAddress: acl.NormalizeAddress(proxyAddress),
		roleBytes:    strings.ToLower(roleBytes),
	}

	r.lock.RLock()
	role, ok := r.cache[key]
	r.lock.RUnlock()
	if ok {
		return copyRole(role)
	}

	role = resolveRole(r.apps, key.proxyAddress, key.roleBytes)

	r.lock.Lock()
	r.cache[key] = role
	r.lock.Unlock()

	return copyRole(role)
}

// ResolveApp returns the app that declares roles at proxyAddress, if any.
func (r *RoleResolver) ResolveApp(proxyAddress string) (acl.App, bool) {
	return acl.FindApp(r.apps, proxyAddress)
}

func resolveRole(apps []acl.App, proxyAddress, roleBytes string) *acl.Role {
	if known, ok := acl.LookupKnownRole(roleBytes); ok {
		return &known.Role
	}

	app, ok := acl.FindApp(apps, proxyAddress)
	if !ok {
		return nil
	}

	role, ok := app.FindRole(roleBytes)
	if !ok {
		return nil
	}

	return &role
}

// Callers get their own copy so the cached value cannot be mutated.
func copyRole(role *acl.Role) *acl.Role {
	if role == nil {
		return nil
	}

	c := *role
	return &c
}
