package migrations

import (
	"context"

	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/sqlx"
)

var createAppTable = `
CREATE TABLE IF NOT EXISTS acl_app
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  position INTEGER NOT NULL,
  proxy_address CHAR(42) NOT NULL UNIQUE,
  app_id CHAR(66) NOT NULL,
  name VARCHAR(255) NOT NULL DEFAULT '',
  identifier VARCHAR(255) NOT NULL DEFAULT '',
  is_aragon_os_internal_app BOOLEAN NOT NULL DEFAULT FALSE,
  has_web_app BOOLEAN NOT NULL DEFAULT FALSE
)
`

var dropAppTable = `DROP TABLE acl_app`

func createAppTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-app-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createAppTable)
	return err
}

func createAppTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-app-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropAppTable)
	return err
}
