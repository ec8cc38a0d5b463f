package migrations

import (
	"context"

	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/sqlx"
)

// Proxy addresses are not foreign keys: permissions may name apps that are
// not installed.
var createPermissionTable = `
CREATE TABLE IF NOT EXISTS acl_permission
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  position INTEGER NOT NULL,
  proxy_address CHAR(42) NOT NULL,
  role_bytes CHAR(66) NOT NULL,
  manager CHAR(42) NOT NULL,
  UNIQUE (proxy_address, role_bytes)
)
`

var dropPermissionTable = `DROP TABLE acl_permission`

func createPermissionTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-permission-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createPermissionTable)
	return err
}

func createPermissionTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-permission-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropPermissionTable)
	return err
}
