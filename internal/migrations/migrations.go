// Package migrations creates the tables the SQL snapshot source reads.
package migrations

import "github.com/orgacl/aclview/pkg/sqlx"

var TableName = "aclview_migrations"

var Migrations = []sqlx.Migration{
	{
		Name: "create_acl_app_table",
		Up:   createAppTableUp,
		Down: createAppTableDown,
	},
	{
		Name: "create_acl_app_role_table",
		Up:   createAppRoleTableUp,
		Down: createAppRoleTableDown,
	},
	{
		Name: "create_acl_permission_table",
		Up:   createPermissionTableUp,
		Down: createPermissionTableDown,
	},
	{
		Name: "create_acl_grant_table",
		Up:   createGrantTableUp,
		Down: createGrantTableDown,
	},
}
