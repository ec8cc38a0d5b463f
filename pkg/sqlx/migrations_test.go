package sqlx_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/logx/lagerx"
	. "github.com/orgacl/aclview/pkg/sqlx"
)

func fakeMigration(name, up, down string) Migration {
	return Migration{
		Name: name,
		Up: func(ctx context.Context, logger logx.Logger, tx *Tx) error {
			_, err := tx.ExecContext(ctx, up)
			return err
		},
		Down: func(ctx context.Context, logger logx.Logger, tx *Tx) error {
			_, err := tx.ExecContext(ctx, down)
			return err
		},
	}
}

var _ = Describe("Migrations", func() {
	var (
		tableName string

		logger *lagertest.TestLogger

		fakeConn *sql.DB
		mock     sqlmock.Sqlmock

		conn *DB

		ctx context.Context

		migrations []Migration

		appliedAt time.Time
	)

	BeforeEach(func() {
		var err error

		tableName = "aclview_migrations"
		logger = lagertest.NewTestLogger("sqlx")

		fakeConn, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		conn = NewDB(fakeConn, DBDriverMySQL)
		ctx = context.Background()
		appliedAt = time.Now()

		migrations = []Migration{
			fakeMigration("create_apps", "FAKE UP 1", "FAKE DOWN 1"),
			fakeMigration("create_grants", "FAKE UP 2", "FAKE DOWN 2"),
			fakeMigration("create_indexes", "FAKE UP 3", "FAKE DOWN 3"),
		}
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	appliedRows := func(names ...string) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"version", "name", "applied_at"})
		for i, name := range names {
			rows.AddRow(i, name, appliedAt)
		}
		return rows
	}

	Describe("#ApplyMigrations", func() {
		expectCreateTable := func() {
			mock.ExpectBegin()
			mock.ExpectExec("CREATE TABLE IF NOT EXISTS `" + tableName + "`").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()
		}

		It("creates the migrations table and applies every pending migration in order", func() {
			expectCreateTable()
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps"))

			mock.ExpectBegin()
			mock.ExpectExec("FAKE UP 2").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO "+tableName).
				WithArgs(1, "create_grants", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			mock.ExpectBegin()
			mock.ExpectExec("FAKE UP 3").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("INSERT INTO "+tableName).
				WithArgs(2, "create_indexes", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			err := ApplyMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).NotTo(HaveOccurred())
		})

		It("only creates the table when there are no migrations", func() {
			expectCreateTable()

			err := ApplyMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rolls back and stops when a migration fails", func() {
			expectCreateTable()
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows())

			mock.ExpectBegin()
			mock.ExpectExec("FAKE UP 1").WillReturnError(errors.New("migration failed"))
			mock.ExpectRollback()

			err := ApplyMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).To(MatchError("migration failed"))
			Expect(logger.LogMessages()).To(ContainElement("sqlx.apply-migrations.failed-to-apply-migration"))
		})

		It("fails when the migrations table cannot be created", func() {
			mock.ExpectBegin()
			mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("no permission"))
			mock.ExpectRollback()

			err := ApplyMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).To(MatchError("no permission"))
		})
	})

	Describe("#VerifyAppliedMigrations", func() {
		It("returns true when every migration is applied", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps", "create_grants", "create_indexes"))

			ok, err := VerifyAppliedMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("returns false when a migration is missing", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps", "create_grants"))

			ok, err := VerifyAppliedMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("returns false when an applied migration has a different name", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps", "create_roles", "create_indexes"))

			ok, err := VerifyAppliedMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("returns the error when the query fails", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnError(errors.New("connection lost"))

			_, err := VerifyAppliedMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations)
			Expect(err).To(MatchError("connection lost"))
		})
	})

	Describe("#RollbackMigrations", func() {
		It("rolls back only the most recent applied migration", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps", "create_grants"))

			mock.ExpectBegin()
			mock.ExpectExec("FAKE DOWN 2").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("DELETE FROM " + tableName + " WHERE version").
				WithArgs(1).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := RollbackMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations, false)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rolls back every applied migration, newest first, with all", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps", "create_grants"))

			for _, version := range []int{1, 0} {
				mock.ExpectBegin()
				mock.ExpectExec("FAKE DOWN").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("DELETE FROM " + tableName + " WHERE version").
					WithArgs(version).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			err := RollbackMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations, true)
			Expect(err).NotTo(HaveOccurred())
		})

		It("keeps the migration when the down step fails", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + tableName).
				WillReturnRows(appliedRows("create_apps"))

			mock.ExpectBegin()
			mock.ExpectExec("FAKE DOWN 1").WillReturnError(errors.New("locked"))
			mock.ExpectRollback()

			err := RollbackMigrations(ctx, lagerx.NewLogger(logger), conn, tableName, migrations, false)
			Expect(err).To(MatchError("locked"))
		})
	})
})

var _ = Describe("Commit", func() {
	var (
		logger *lagertest.TestLogger
		mock   sqlmock.Sqlmock
		conn   *DB
	)

	BeforeEach(func() {
		fakeConn, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		mock = m
		conn = NewDB(fakeConn, DBDriverMySQL)
		logger = lagertest.NewTestLogger("sqlx")
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("commits when there is no error", func() {
		mock.ExpectBegin()
		mock.ExpectCommit()

		tx, err := conn.BeginTx(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tx.Driver()).To(Equal(DBDriverMySQL))

		Expect(Commit(lagerx.NewLogger(logger), tx, nil)).To(Succeed())
	})

	It("rolls back and returns the original error", func() {
		mock.ExpectBegin()
		mock.ExpectRollback()

		tx, err := conn.BeginTx(context.Background(), nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(Commit(lagerx.NewLogger(logger), tx, errors.New("boom"))).To(MatchError("boom"))
	})
})
