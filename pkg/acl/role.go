package acl

import "strings"

type Role struct {
	Bytes  string   `json:"bytes" yaml:"bytes"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	ID     string   `json:"id,omitempty" yaml:"id,omitempty"`
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// RoleDisplayName is nil-safe: unresolved roles render as Unknown.
func RoleDisplayName(role *Role) string {
	if role == nil || role.Name == "" {
		return unknownLabel
	}

	return role.Name
}

func RoleDisplayID(role *Role) string {
	if role == nil || role.ID == "" {
		return unknownLabel
	}

	return role.ID
}

const KernelAppName = "Kernel"

// KnownRole is a role owned by the organization kernel, resolvable without
// any installed app.
type KnownRole struct {
	AppName string
	Role    Role
}

var KernelRoles = []Role{
	{
		Name:   "Manage apps",
		ID:     "APP_MANAGER_ROLE",
		Params: []string{},
		Bytes:  "0xb6d92708f3d4817afc106147d969e229ced5c46e65e0a5002a0d391287762bd0",
	},
}

func LookupKnownRole(roleBytes string) (KnownRole, bool) {
	for _, role := range KernelRoles {
		if RoleBytesEqual(role.Bytes, roleBytes) {
			return KnownRole{AppName: KernelAppName, Role: role}, true
		}
	}

	return KnownRole{}, false
}

// RoleBytesEqual compares two hex encoded role identifiers, ignoring case.
func RoleBytesEqual(first, second string) bool {
	return strings.EqualFold(first, second)
}
