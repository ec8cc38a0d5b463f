// Package permindex derives the entity-centric and app-centric views of an
// organization's ACL.
//
// An Index is immutable. It is rebuilt from scratch whenever the raw
// permissions or the installed apps change; there is no partial update.
package permindex

import (
	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/resolve"
)

type Index struct {
	entities *resolve.EntityResolver
	roles    *resolve.RoleResolver

	// entity address -> proxy address -> role bytes, in first-seen order
	byEntity    map[string]*entityBucket
	entityOrder []string

	byApp    map[string][]AppPermission
	appRoles map[string][]AppRole

	stats Stats
}

type entityBucket struct {
	apps  []string
	roles map[string][]string
}

func (b *entityBucket) add(proxyAddress, roleBytes string) {
	if _, ok := b.roles[proxyAddress]; !ok {
		b.apps = append(b.apps, proxyAddress)
	}
	b.roles[proxyAddress] = append(b.roles[proxyAddress], roleBytes)
}

// Build inverts app -> role -> entities into entity -> app -> roles and
// resolves every role, grantee and manager against apps.
func Build(permissions acl.Permissions, apps []acl.App, opts ...Option) *Index {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	idx := &Index{
		entities: resolve.NewEntityResolver(apps),
		roles:    resolve.NewRoleResolver(apps),
		byEntity: make(map[string]*entityBucket),
		byApp:    make(map[string][]AppPermission),
		appRoles: make(map[string][]AppRole),
	}

	for _, app := range permissions {
		proxyAddress := acl.NormalizeAddress(app.ProxyAddress)
		if _, seen := idx.byApp[proxyAddress]; !seen {
			idx.byApp[proxyAddress] = []AppPermission{}
			idx.stats.Apps++
		}

		for _, rolePermissions := range app.Roles {
			roleBytes := rolePermissions.RoleBytes
			role := idx.roles.Resolve(proxyAddress, roleBytes)
			idx.stats.Roles++

			allowed := rolePermissions.AllowedEntities
			if o.deduplicate {
				allowed = uniqueAddresses(allowed)
			}

			appRole := AppRole{
				RoleBytes:       roleBytes,
				Role:            role,
				AllowedEntities: make([]acl.Entity, 0, len(allowed)),
				Manager:         idx.entities.Resolve(rolePermissions.Manager),
			}

			for _, address := range allowed {
				entity := idx.entities.Resolve(address)

				idx.addEntityRole(entity.Address, proxyAddress, roleBytes)
				idx.byApp[proxyAddress] = append(idx.byApp[proxyAddress], AppPermission{
					Role:      role,
					RoleBytes: roleBytes,
					Entity:    entity,
				})
				appRole.AllowedEntities = append(appRole.AllowedEntities, entity)
				idx.stats.Grants++
			}

			idx.appRoles[proxyAddress] = append(idx.appRoles[proxyAddress], appRole)
		}
	}

	idx.stats.Entities = len(idx.entityOrder)

	return idx
}

func (idx *Index) addEntityRole(entityAddress, proxyAddress, roleBytes string) {
	bucket, ok := idx.byEntity[entityAddress]
	if !ok {
		bucket = &entityBucket{roles: make(map[string][]string)}
		idx.byEntity[entityAddress] = bucket
		idx.entityOrder = append(idx.entityOrder, entityAddress)
	}

	bucket.add(proxyAddress, roleBytes)
}

// ByEntity lists the roles held by an entity across all apps. It returns nil
// when the entity holds no permission at all; an indexed entity always has
// at least one role.
func (idx *Index) ByEntity(entityAddress string) []EntityRole {
	bucket, ok := idx.byEntity[acl.NormalizeAddress(entityAddress)]
	if !ok {
		return nil
	}

	roles := []EntityRole{}
	for _, proxyAddress := range bucket.apps {
		var roleFromApp *acl.App
		if app, installed := idx.roles.ResolveApp(proxyAddress); installed {
			roleFromApp = &app
		}

		for _, roleBytes := range bucket.roles[proxyAddress] {
			roles = append(roles, EntityRole{
				Role:         idx.roles.Resolve(proxyAddress, roleBytes),
				RoleBytes:    roleBytes,
				RoleFromApp:  roleFromApp,
				ProxyAddress: proxyAddress,
			})
		}
	}

	return roles
}

// ByApp lists every (role, entity) pair declared on an app, or an empty list
// when none is indexed.
func (idx *Index) ByApp(proxyAddress string) []AppPermission {
	permissions := idx.byApp[acl.NormalizeAddress(proxyAddress)]

	return append([]AppPermission{}, permissions...)
}

// AppRoles lists the roles declared on an app with their grantees and manager.
func (idx *Index) AppRoles(proxyAddress string) []AppRole {
	roles := idx.appRoles[acl.NormalizeAddress(proxyAddress)]

	return append([]AppRole{}, roles...)
}

// AllByEntity groups every grant by entity, in the order entities first
// appear in the raw permissions.
func (idx *Index) AllByEntity() []EntityRoles {
	all := make([]EntityRoles, 0, len(idx.entityOrder))
	for _, entityAddress := range idx.entityOrder {
		bucket := idx.byEntity[entityAddress]

		roles := make([]AppRoles, 0, len(bucket.apps))
		for _, proxyAddress := range bucket.apps {
			roles = append(roles, AppRoles{
				ProxyAddress: proxyAddress,
				RoleBytes:    append([]string{}, bucket.roles[proxyAddress]...),
			})
		}

		all = append(all, EntityRoles{
			EntityAddress: entityAddress,
			Entity:        idx.entities.Resolve(entityAddress),
			Roles:         roles,
		})
	}

	return all
}

// Triples flattens the entity view back into (app, role, entity) relations.
func (idx *Index) Triples() []acl.PermissionTriple {
	triples := make([]acl.PermissionTriple, 0, idx.stats.Grants)
	for _, entityAddress := range idx.entityOrder {
		bucket := idx.byEntity[entityAddress]
		for _, proxyAddress := range bucket.apps {
			for _, roleBytes := range bucket.roles[proxyAddress] {
				triples = append(triples, acl.PermissionTriple{
					ProxyAddress:  proxyAddress,
					RoleBytes:     roleBytes,
					EntityAddress: entityAddress,
				})
			}
		}
	}

	return triples
}

func (idx *Index) Resolve(address string) acl.Entity {
	return idx.entities.Resolve(address)
}

func (idx *Index) ResolveRole(proxyAddress, roleBytes string) *acl.Role {
	return idx.roles.Resolve(proxyAddress, roleBytes)
}

func (idx *Index) Apps() []acl.App {
	return idx.entities.Apps()
}

func (idx *Index) Stats() Stats {
	return idx.stats
}

func uniqueAddresses(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, address := range addresses {
		key := acl.NormalizeAddress(address)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, address)
	}

	return unique
}
