package cmd

import (
	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/errdefs"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/permindex"
	"github.com/orgacl/aclview/pkg/permstore"
)

type EntityReport struct {
	Entity acl.Entity             `json:"entity"`
	Label  string                 `json:"label"`
	Roles  []permindex.EntityRole `json:"roles"`
}

type AppReport struct {
	ProxyAddress string                    `json:"proxyAddress"`
	App          *acl.App                  `json:"app"`
	Label        string                    `json:"label"`
	Permissions  []permindex.AppPermission `json:"permissions"`
}

type RoleReport struct {
	ProxyAddress string    `json:"proxyAddress"`
	RoleBytes    string    `json:"roleBytes"`
	Role         *acl.Role `json:"role"`
	Label        string    `json:"label"`
}

// ByEntityCommand prints the roles an entity holds. Roles is null when the
// entity holds nothing.
type ByEntityCommand struct {
	QueryOptions

	Address string `long:"address" description:"Entity address" required:"true"`
}

func (cmd ByEntityCommand) Execute([]string) error {
	if err := acl.ValidateAddress(cmd.Address); err != nil {
		return err
	}

	return cmd.run("by-entity", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		entity := store.Resolve(cmd.Address)

		return EntityReport{
			Entity: entity,
			Label:  entity.Label(),
			Roles:  store.ByEntity(cmd.Address),
		}, nil
	})
}

type ByAppCommand struct {
	QueryOptions

	ProxyAddress string `long:"proxy-address" description:"App proxy address" required:"true"`
}

func (cmd ByAppCommand) Execute([]string) error {
	if err := acl.ValidateAddress(cmd.ProxyAddress); err != nil {
		return err
	}

	return cmd.run("by-app", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		report := AppReport{
			ProxyAddress: acl.NormalizeAddress(cmd.ProxyAddress),
			Label:        acl.ShortenAddress(cmd.ProxyAddress),
			Permissions:  store.ByApp(cmd.ProxyAddress),
		}

		if app, ok := acl.FindApp(store.Index().Apps(), cmd.ProxyAddress); ok {
			report.App = &app
			report.Label = app.InstanceLabel()
		}

		return report, nil
	})
}

type AppRolesCommand struct {
	QueryOptions

	ProxyAddress string `long:"proxy-address" description:"App proxy address" required:"true"`
}

func (cmd AppRolesCommand) Execute([]string) error {
	if err := acl.ValidateAddress(cmd.ProxyAddress); err != nil {
		return err
	}

	return cmd.run("app-roles", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		return store.AppRoles(cmd.ProxyAddress), nil
	})
}

type EntitiesCommand struct {
	QueryOptions
}

func (cmd EntitiesCommand) Execute([]string) error {
	return cmd.run("entities", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		return store.AllByEntity(), nil
	})
}

type GrantsCommand struct {
	QueryOptions
}

func (cmd GrantsCommand) Execute([]string) error {
	return cmd.run("grants", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		return store.Index().Triples(), nil
	})
}

type StatsCommand struct {
	QueryOptions
}

func (cmd StatsCommand) Execute([]string) error {
	return cmd.run("stats", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		return store.Index().Stats(), nil
	})
}

// ResolveCommand resolves an address into an entity, or a role when
// --role-bytes is given.
type ResolveCommand struct {
	QueryOptions

	Address   string `long:"address" description:"Entity address, or the app proxy address when resolving a role" required:"true"`
	RoleBytes string `long:"role-bytes" description:"Role identifier to resolve on the app at --address"`
}

func (cmd ResolveCommand) Execute([]string) error {
	if err := acl.ValidateAddress(cmd.Address); err != nil {
		return err
	}

	if cmd.RoleBytes != "" {
		if err := acl.ValidateRoleBytes(cmd.RoleBytes); err != nil {
			return err
		}
	}

	return cmd.run("resolve", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		if cmd.RoleBytes == "" {
			entity := store.Resolve(cmd.Address)
			return EntityReport{Entity: entity, Label: entity.Label()}, nil
		}

		role := store.Index().ResolveRole(cmd.Address, cmd.RoleBytes)
		return RoleReport{
			ProxyAddress: acl.NormalizeAddress(cmd.Address),
			RoleBytes:    cmd.RoleBytes,
			Role:         role,
			Label:        acl.RoleDisplayName(role),
		}, nil
	})
}

type EntityChoice struct {
	Entity        acl.Entity `json:"entity"`
	Label         string     `json:"label"`
	InstanceLabel string     `json:"instanceLabel,omitempty"`
}

// AppsCommand lists the entities a permission can be granted to: every
// named app, then the any-account entity.
type AppsCommand struct {
	QueryOptions

	ProxyAddress string `long:"proxy-address" description:"Only list the app installed at this address"`
}

func (cmd AppsCommand) Execute([]string) error {
	if cmd.ProxyAddress != "" {
		if err := acl.ValidateAddress(cmd.ProxyAddress); err != nil {
			return err
		}
	}

	return cmd.run("apps", func(logger logx.Logger, store *permstore.Store) (interface{}, error) {
		choices := []EntityChoice{}
		for _, app := range acl.NamedApps(store.Index().Apps()) {
			if cmd.ProxyAddress != "" && !acl.AddressesEqual(app.ProxyAddress, cmd.ProxyAddress) {
				continue
			}

			entity := store.Resolve(app.ProxyAddress)
			choices = append(choices, EntityChoice{
				Entity:        entity,
				Label:         entity.Label(),
				InstanceLabel: app.InstanceLabel(),
			})
		}

		if cmd.ProxyAddress != "" {
			if len(choices) == 0 {
				err := errdefs.NewErrNotFound("app")
				logger.Error(failedToFindApp, err, logx.Data{Key: "proxy_address", Value: cmd.ProxyAddress})
				return nil, err
			}

			return choices, nil
		}

		anyEntity := store.Resolve(acl.AnyEntityAddress)
		return append(choices, EntityChoice{Entity: anyEntity, Label: anyEntity.Label()}), nil
	})
}
