// Package sqlsource reads and writes permission snapshots stored in MySQL.
package sqlsource

import (
	"context"
	"database/sql"

	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/snapshot"
	"github.com/orgacl/aclview/pkg/sqlx"
)

type Source struct {
	conn *sqlx.DB
}

func NewSource(conn *sqlx.DB) *Source {
	return &Source{
		conn: conn,
	}
}

// Load reads every table inside one read-only transaction so that apps and
// permissions come from the same state.
func (s *Source) Load(ctx context.Context, logger logx.Logger) (snap snapshot.Snapshot, err error) {
	logger = logger.WithName("sql-source")
	logger.Debug(starting)
	defer logger.Debug(finished)

	var tx *sqlx.Tx
	tx, err = s.conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return snapshot.Snapshot{}, err
	}

	snap, err = load(ctx, logger, tx)
	if err = sqlx.Commit(logger, tx, err); err != nil {
		return snapshot.Snapshot{}, err
	}

	if err = snapshot.Validate(snap); err != nil {
		logger.Error(failedToValidateSnapshot, err)
		return snapshot.Snapshot{}, err
	}

	return snap, nil
}

func load(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) (snapshot.Snapshot, error) {
	apps, err := queryApps(ctx, logger, tx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	roles, err := queryRoles(ctx, logger, tx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	permissions, err := queryPermissions(ctx, logger, tx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	grants, err := queryGrants(ctx, logger, tx)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	return assemble(logger, apps, roles, permissions, grants), nil
}

func assemble(
	logger logx.Logger,
	apps []appRow,
	roles []roleRow,
	permissions []permissionRow,
	grants []grantRow,
) snapshot.Snapshot {
	snap := snapshot.Snapshot{
		Apps:        make([]acl.App, 0, len(apps)),
		Permissions: acl.Permissions{},
	}

	appIndexes := make(map[int64]int, len(apps))
	for _, row := range apps {
		appIndexes[row.ID] = len(snap.Apps)
		snap.Apps = append(snap.Apps, row.App)
	}

	for _, row := range roles {
		i, ok := appIndexes[row.AppID]
		if !ok {
			logger.Debug(skippedOrphanRow, logx.Data{Key: "table", Value: appRoleTable}, logx.Data{Key: "app_id", Value: row.AppID})
			continue
		}

		snap.Apps[i].Roles = append(snap.Apps[i].Roles, row.Role)
	}

	entities := make(map[int64][]string, len(permissions))
	for _, row := range grants {
		entities[row.PermissionID] = append(entities[row.PermissionID], row.EntityAddress)
	}

	for _, row := range permissions {
		allowed := entities[row.ID]
		if allowed == nil {
			allowed = []string{}
		}

		snap.Permissions = snap.Permissions.Set(row.ProxyAddress, row.RoleBytes, acl.RoleGrant{
			AllowedEntities: allowed,
			Manager:         row.Manager,
		})
	}

	return snap
}
