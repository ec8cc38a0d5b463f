package migrations

import (
	"context"

	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/sqlx"
)

var createGrantTable = `
CREATE TABLE IF NOT EXISTS acl_grant
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  permission_id BIGINT NOT NULL,
  position INTEGER NOT NULL,
  entity_address CHAR(42) NOT NULL,
  FOREIGN KEY (permission_id) REFERENCES acl_permission(id) ON DELETE CASCADE
)
`

var addGrantPositionIndex = `
ALTER TABLE
	acl_grant
ADD INDEX
	grant_permission_position (permission_id, position)
`

var dropGrantTable = `DROP TABLE acl_grant`

func createGrantTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-grant-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createGrantTable)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addGrantPositionIndex)
	return err
}

func createGrantTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-acl-grant-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropGrantTable)
	return err
}
