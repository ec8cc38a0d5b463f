package sqlsource

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	"github.com/orgacl/aclview/pkg/acl"
	"github.com/orgacl/aclview/pkg/logx"
)

const (
	appTable        = "acl_app"
	appRoleTable    = "acl_app_role"
	permissionTable = "acl_permission"
	grantTable      = "acl_grant"
)

type appRow struct {
	ID  int64
	App acl.App
}

type roleRow struct {
	AppID int64
	Role  acl.Role
}

type permissionRow struct {
	ID           int64
	ProxyAddress string
	RoleBytes    string
	Manager      string
}

type grantRow struct {
	PermissionID  int64
	EntityAddress string
}

func queryApps(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner) ([]appRow, error) {
	logger = logger.WithData(logx.Data{Key: "table", Value: appTable})

	rows, err := squirrel.Select("id", "proxy_address", "app_id", "name", "identifier",
		"is_aragon_os_internal_app", "has_web_app").
		From(appTable).
		OrderBy("position").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToQueryTable, err)
		return nil, err
	}
	defer rows.Close()

	var apps []appRow
	for rows.Next() {
		var row appRow
		err = rows.Scan(&row.ID, &row.App.ProxyAddress, &row.App.AppID, &row.App.Name,
			&row.App.Identifier, &row.App.IsAragonOsInternalApp, &row.App.HasWebApp)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		apps = append(apps, row)
	}

	return apps, checkRows(logger, rows)
}

func queryRoles(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner) ([]roleRow, error) {
	logger = logger.WithData(logx.Data{Key: "table", Value: appRoleTable})

	rows, err := squirrel.Select("app_id", "bytes", "name", "role_id", "params").
		From(appRoleTable).
		OrderBy("app_id", "position").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToQueryTable, err)
		return nil, err
	}
	defer rows.Close()

	var roles []roleRow
	for rows.Next() {
		var (
			row    roleRow
			params sql.NullString
		)

		err = rows.Scan(&row.AppID, &row.Role.Bytes, &row.Role.Name, &row.Role.ID, &params)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		row.Role.Params, err = decodeParams(params)
		if err != nil {
			logger.Error(failedToDecodeParams, err, logx.Data{Key: "role_bytes", Value: row.Role.Bytes})
			return nil, err
		}

		roles = append(roles, row)
	}

	return roles, checkRows(logger, rows)
}

func queryPermissions(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner) ([]permissionRow, error) {
	logger = logger.WithData(logx.Data{Key: "table", Value: permissionTable})

	rows, err := squirrel.Select("id", "proxy_address", "role_bytes", "manager").
		From(permissionTable).
		OrderBy("position").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToQueryTable, err)
		return nil, err
	}
	defer rows.Close()

	var permissions []permissionRow
	for rows.Next() {
		var row permissionRow
		if err = rows.Scan(&row.ID, &row.ProxyAddress, &row.RoleBytes, &row.Manager); err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		permissions = append(permissions, row)
	}

	return permissions, checkRows(logger, rows)
}

func queryGrants(ctx context.Context, logger logx.Logger, conn squirrel.BaseRunner) ([]grantRow, error) {
	logger = logger.WithData(logx.Data{Key: "table", Value: grantTable})

	rows, err := squirrel.Select("permission_id", "entity_address").
		From(grantTable).
		OrderBy("permission_id", "position").
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToQueryTable, err)
		return nil, err
	}
	defer rows.Close()

	var grants []grantRow
	for rows.Next() {
		var row grantRow
		if err = rows.Scan(&row.PermissionID, &row.EntityAddress); err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		grants = append(grants, row)
	}

	return grants, checkRows(logger, rows)
}

func checkRows(logger logx.Logger, rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		logger.Error(failedToQueryTable, err)
		return err
	}

	return nil
}

// Role params are stored as a JSON array; NULL means none.
func decodeParams(params sql.NullString) ([]string, error) {
	if !params.Valid || params.String == "" {
		return nil, nil
	}

	var decoded []string
	if err := json.Unmarshal([]byte(params.String), &decoded); err != nil {
		return nil, err
	}

	if len(decoded) == 0 {
		return nil, nil
	}

	return decoded, nil
}

func encodeParams(params []string) (interface{}, error) {
	if len(params) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}
