package sqlsource

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/errdefs"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/snapshot"
	"github.com/orgacl/aclview/pkg/sqlx"
)

const MySQLErrorCodeDuplicateKey = 1062

// Import replaces the stored snapshot with s in a single transaction.
func Import(ctx context.Context, logger logx.Logger, conn *sqlx.DB, s snapshot.Snapshot) (err error) {
	logger = logger.WithName("import")
	logger.Debug(starting)

	if err = snapshot.Validate(s); err != nil {
		logger.Error(failedToValidateSnapshot, err)
		return err
	}

	var tx *sqlx.Tx
	tx, err = conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return err
	}

	defer func() {
		err = sqlx.Commit(logger, tx, err)
		if err == nil {
			logger.Info(imported,
				logx.Data{Key: "apps", Value: len(s.Apps)},
				logx.Data{Key: "permissions", Value: len(s.Permissions.Triples())},
			)
		}
	}()

	for _, table := range []string{grantTable, permissionTable, appRoleTable, appTable} {
		if _, err = squirrel.Delete(table).RunWith(tx).ExecContext(ctx); err != nil {
			logger.Error(failedToClearTable, err, logx.Data{Key: "table", Value: table})
			return err
		}
	}

	if err = insertApps(ctx, logger, tx, s.Apps); err != nil {
		return err
	}

	return insertPermissions(ctx, logger, tx, s.Permissions)
}

func insertApps(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner, apps []acl.App) error {
	for position, app := range apps {
		appID, err := insert(ctx, logger, conn, squirrel.Insert(appTable).
			Columns("position", "proxy_address", "app_id", "name", "identifier",
				"is_aragon_os_internal_app", "has_web_app").
			Values(position, acl.NormalizeAddress(app.ProxyAddress), app.AppID, app.Name, app.Identifier,
				app.IsAragonOsInternalApp, app.HasWebApp))
		if err != nil {
			return err
		}

		for rolePosition, role := range app.Roles {
			params, err := encodeParams(role.Params)
			if err != nil {
				logger.Error(failedToEncodeParams, err, logx.Data{Key: "role_bytes", Value: role.Bytes})
				return err
			}

			_, err = insert(ctx, logger, conn, squirrel.Insert(appRoleTable).
				Columns("app_id", "position", "bytes", "name", "role_id", "params").
				Values(appID, rolePosition, role.Bytes, role.Name, role.ID, params))
			if err != nil {
				return duplicate(err, fmt.Sprintf("apps[%d].roles[%d].bytes", position, rolePosition), role.Bytes)
			}
		}
	}

	return nil
}

func insertPermissions(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner, permissions acl.Permissions) error {
	position := 0
	for i, app := range permissions {
		for j, role := range app.Roles {
			permissionID, err := insert(ctx, logger, conn, squirrel.Insert(permissionTable).
				Columns("position", "proxy_address", "role_bytes", "manager").
				Values(position, acl.NormalizeAddress(app.ProxyAddress), role.RoleBytes, acl.NormalizeAddress(role.Manager)))
			if err != nil {
				return duplicate(err, fmt.Sprintf("permissions[%d].roles[%d].roleBytes", i, j), role.RoleBytes)
			}
			position++

			for grantPosition, entity := range role.AllowedEntities {
				_, err = insert(ctx, logger, conn, squirrel.Insert(grantTable).
					Columns("permission_id", "position", "entity_address").
					Values(permissionID, grantPosition, acl.NormalizeAddress(entity)))
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func insert(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner, builder squirrel.InsertBuilder) (int64, error) {
	result, err := builder.RunWith(conn).ExecContext(ctx)
	if err != nil {
		logger.Error(failedToInsertRow, err)
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		logger.Error(failedToRetrieveID, err)
		return 0, err
	}

	return id, nil
}

// duplicate turns a unique key violation into an ErrInvalid naming the
// offending snapshot field.
func duplicate(err error, field, value string) error {
	if e, ok := err.(*mysql.MySQLError); ok && e.Number == MySQLErrorCodeDuplicateKey {
		return errdefs.NewErrInvalid(field, value, "duplicate role")
	}

	return err
}
