// Package snapshot holds the inputs of a permission index: the installed
// apps and the raw ACL permissions, read together from one source.
package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/errdefs"
	"github.com/orgacl/aclview/pkg/logx"
)

type Snapshot struct {
	Apps        []acl.App       `json:"apps" yaml:"apps"`
	Permissions acl.Permissions `json:"permissions" yaml:"permissions"`
}

//go:generate counterfeiter . Source

type Source interface {
	Load(ctx context.Context, logger logx.Logger) (Snapshot, error)
}

// Validate rejects malformed addresses and role identifiers so that the
// index never has to. It reports the first problem found.
func Validate(s Snapshot) error {
	proxies := make(map[string]struct{}, len(s.Apps))
	for i, app := range s.Apps {
		field := fmt.Sprintf("apps[%d].proxyAddress", i)
		if err := acl.ValidateAddress(app.ProxyAddress); err != nil {
			return invalid(field, app.ProxyAddress, err)
		}

		key := acl.NormalizeAddress(app.ProxyAddress)
		if _, ok := proxies[key]; ok {
			return errdefs.NewErrInvalid(field, app.ProxyAddress, "duplicate app instance")
		}
		proxies[key] = struct{}{}

		declared := make(map[string]struct{}, len(app.Roles))
		for j, role := range app.Roles {
			field := fmt.Sprintf("apps[%d].roles[%d].bytes", i, j)
			if err := acl.ValidateRoleBytes(role.Bytes); err != nil {
				return invalid(field, role.Bytes, err)
			}

			if _, ok := declared[strings.ToLower(role.Bytes)]; ok {
				return errdefs.NewErrInvalid(field, role.Bytes, "duplicate role")
			}
			declared[strings.ToLower(role.Bytes)] = struct{}{}
		}
	}

	// Permissions are a map keyed by app, then role: every key appears once.
	granted := make(map[string]struct{}, len(s.Permissions))
	for i, app := range s.Permissions {
		field := fmt.Sprintf("permissions[%d].proxyAddress", i)
		if err := acl.ValidateAddress(app.ProxyAddress); err != nil {
			return invalid(field, app.ProxyAddress, err)
		}

		key := acl.NormalizeAddress(app.ProxyAddress)
		if _, ok := granted[key]; ok {
			return errdefs.NewErrInvalid(field, app.ProxyAddress, "duplicate app")
		}
		granted[key] = struct{}{}

		roles := make(map[string]struct{}, len(app.Roles))
		for j, role := range app.Roles {
			prefix := fmt.Sprintf("permissions[%d].roles[%d]", i, j)
			if err := acl.ValidateRoleBytes(role.RoleBytes); err != nil {
				return invalid(prefix+".roleBytes", role.RoleBytes, err)
			}

			if _, ok := roles[strings.ToLower(role.RoleBytes)]; ok {
				return errdefs.NewErrInvalid(prefix+".roleBytes", role.RoleBytes, "duplicate role")
			}
			roles[strings.ToLower(role.RoleBytes)] = struct{}{}

			if err := acl.ValidateAddress(role.Manager); err != nil {
				return invalid(prefix+".manager", role.Manager, err)
			}

			for k, entity := range role.AllowedEntities {
				if err := acl.ValidateAddress(entity); err != nil {
					return invalid(fmt.Sprintf("%s.allowedEntities[%d]", prefix, k), entity, err)
				}
			}
		}
	}

	return nil
}

func invalid(field, value string, err error) error {
	return errdefs.NewErrInvalid(field, value, err.Error())
}
