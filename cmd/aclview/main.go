package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/orgacl/aclview/cmd"
)

type options struct {
	ByEntity cmd.ByEntityCommand `command:"by-entity" description:"List the roles an entity holds across all apps"`
	ByApp    cmd.ByAppCommand    `command:"by-app" description:"List the (role, entity) pairs declared on an app"`
	AppRoles cmd.AppRolesCommand `command:"app-roles" description:"List the roles of an app with their grantees and manager"`
	Entities cmd.EntitiesCommand `command:"entities" description:"Group every grant by entity"`
	Grants   cmd.GrantsCommand   `command:"grants" description:"List every (app, role, entity) grant"`
	Apps     cmd.AppsCommand     `command:"apps" description:"List the entities a permission can be granted to"`
	Resolve  cmd.ResolveCommand  `command:"resolve" description:"Resolve an address into an entity, or a role"`
	Stats    cmd.StatsCommand    `command:"stats" description:"Count apps, roles, grants and entities"`

	Migrate cmd.MigrateCommand `command:"migrate" description:"Apply or roll back the snapshot database migrations"`
	Import  cmd.ImportCommand  `command:"import" description:"Store a snapshot document in the database"`
	Watch   cmd.WatchCommand   `command:"watch" description:"Keep the index up to date and report metrics"`
}

func main() {
	parserOpts := &options{}
	parser := flags.NewParser(parserOpts, flags.Default)
	parser.NamespaceDelimiter = "-"

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
