package permindex

import "github.com/orgacl/aclview/pkg/acl"

// EntityRole is one role held by an entity. Role is nil when neither the
// kernel nor the app at ProxyAddress declares RoleBytes; RoleFromApp is nil
// when no app is installed at ProxyAddress.
type EntityRole struct {
	Role         *acl.Role `json:"role"`
	RoleBytes    string    `json:"roleBytes"`
	RoleFromApp  *acl.App  `json:"roleFromApp"`
	ProxyAddress string    `json:"proxyAddress"`
}

func (r EntityRole) RevokeRequest(entityAddress string) acl.RevokeRequest {
	return acl.RevokeRequest{
		ProxyAddress:  r.ProxyAddress,
		RoleBytes:     r.RoleBytes,
		EntityAddress: acl.NormalizeAddress(entityAddress),
	}
}

// AppPermission is one (role, entity) pair declared on an app.
type AppPermission struct {
	Role      *acl.Role  `json:"role"`
	RoleBytes string     `json:"roleBytes"`
	Entity    acl.Entity `json:"entity"`
}

func (p AppPermission) RevokeRequest(proxyAddress string) acl.RevokeRequest {
	return acl.RevokeRequest{
		ProxyAddress:  acl.NormalizeAddress(proxyAddress),
		RoleBytes:     p.RoleBytes,
		EntityAddress: p.Entity.Address,
	}
}

type AppRoles struct {
	ProxyAddress string   `json:"proxyAddress"`
	RoleBytes    []string `json:"appRoles"`
}

type EntityRoles struct {
	EntityAddress string     `json:"entityAddress"`
	Entity        acl.Entity `json:"entity"`
	Roles         []AppRoles `json:"roles"`
}

// AppRole is a role declared on an app together with its grantees and
// manager.
type AppRole struct {
	RoleBytes       string       `json:"roleBytes"`
	Role            *acl.Role    `json:"role"`
	AllowedEntities []acl.Entity `json:"allowedEntities"`
	Manager         acl.Entity   `json:"manager"`
}

type Stats struct {
	Apps     int `json:"apps"`
	Roles    int `json:"roles"`
	Grants   int `json:"grants"`
	Entities int `json:"entities"`
}
