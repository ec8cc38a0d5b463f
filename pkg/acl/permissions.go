package acl

// RoleGrant is the raw ACL entry of one role on one app.
type RoleGrant struct {
	AllowedEntities []string `json:"allowedEntities" yaml:"allowedEntities"`
	Manager         string   `json:"manager" yaml:"manager"`
}

type RolePermissions struct {
	RoleBytes string `json:"roleBytes" yaml:"roleBytes"`
	RoleGrant `yaml:",inline"`
}

type AppPermissions struct {
	ProxyAddress string            `json:"proxyAddress" yaml:"proxyAddress"`
	Roles        []RolePermissions `json:"roles" yaml:"roles"`
}

// Permissions is the raw app -> role -> grant mapping read from the
// organization's ACL. It is kept as ordered slices so every view built from
// it iterates in the order the entries were declared.
type Permissions []AppPermissions

func (p Permissions) Lookup(proxyAddress string) ([]RolePermissions, bool) {
	for _, app := range p {
		if AddressesEqual(app.ProxyAddress, proxyAddress) {
			return app.Roles, true
		}
	}

	return nil, false
}

// Set appends or replaces the grant of one role, keeping declaration order.
func (p Permissions) Set(proxyAddress, roleBytes string, grant RoleGrant) Permissions {
	for i, app := range p {
		if !AddressesEqual(app.ProxyAddress, proxyAddress) {
			continue
		}

		for j, role := range app.Roles {
			if RoleBytesEqual(role.RoleBytes, roleBytes) {
				p[i].Roles[j].RoleGrant = grant
				return p
			}
		}

		p[i].Roles = append(p[i].Roles, RolePermissions{RoleBytes: roleBytes, RoleGrant: grant})
		return p
	}

	return append(p, AppPermissions{
		ProxyAddress: proxyAddress,
		Roles:        []RolePermissions{{RoleBytes: roleBytes, RoleGrant: grant}},
	})
}

// Triples flattens the mapping into (app, role, entity) relations.
func (p Permissions) Triples() []PermissionTriple {
	triples := []PermissionTriple{}
	for _, app := range p {
		for _, role := range app.Roles {
			for _, entity := range role.AllowedEntities {
				triples = append(triples, PermissionTriple{
					ProxyAddress:  NormalizeAddress(app.ProxyAddress),
					RoleBytes:     role.RoleBytes,
					EntityAddress: NormalizeAddress(entity),
				})
			}
		}
	}

	return triples
}

type PermissionTriple struct {
	ProxyAddress  string `json:"proxyAddress"`
	RoleBytes     string `json:"roleBytes"`
	EntityAddress string `json:"entityAddress"`
}

// RevokeRequest carries what the external revoke action needs. Nothing in
// this module submits it.
type RevokeRequest struct {
	ProxyAddress  string `json:"proxyAddress"`
	RoleBytes     string `json:"roleBytes"`
	EntityAddress string `json:"entityAddress"`
}
