package migrations

import (
	"context"

	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/sqlx"
)

var createAppRoleTable = `
CREATE TABLE IF NOT EXISTS acl_app_role
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  app_id BIGINT NOT NULL,
  position INTEGER NOT NULL,
  bytes CHAR(66) NOT NULL,
  name VARCHAR(255) NOT NULL DEFAULT '',
  role_id VARCHAR(255) NOT NULL DEFAULT '',
  params TEXT,
  UNIQUE (app_id, bytes),
  FOREIGN KEY (app_id) REFERENCES acl_app(id) ON DELETE CASCADE
)
`

var dropAppRoleTable = `DROP TABLE acl_app_role`

func createAppRoleTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-app-role-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createAppRoleTable)
	return err
}

func createAppRoleTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-app-role-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropAppRoleTable)
	return err
}
