package cmd_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/orgacl/aclview/cmd"
	"github.com/orgacl/aclview/cmd/flags"
	"github.com/orgacl/aclview/pkg/sqlx"
)

var _ = Describe("aclview migrate", func() {
	It("errors out on an unsupported driver", func() {
		migrateCmd := MigrateCommand{
			Logger: flags.LagerFlag{LogLevel: flags.LogLevelFatal},
			DB: flags.DBFlag{
				Driver:   "postgres",
				Host:     "host",
				Port:     2313,
				Schema:   "aclview",
				Username: "aclview",
				Password: "aclview",
			},
		}

		err := migrateCmd.Execute(nil)
		Expect(err).To(MatchError(sqlx.ErrUnsupportedSQLDriver))
	})

	It("errors out without a database host", func() {
		migrateCmd := MigrateCommand{
			Logger: flags.LagerFlag{LogLevel: flags.LogLevelFatal},
			DB:     flags.DBFlag{Driver: sqlx.DBDriverMySQL},
			Down:   true,
		}

		err := migrateCmd.Execute(nil)
		Expect(err).To(MatchError(flags.ErrMissingDBHost))
	})
})

var _ = Describe("aclview import", func() {
	It("requires a snapshot document", func() {
		importCmd := ImportCommand{
			Logger: flags.LagerFlag{LogLevel: flags.LogLevelFatal},
		}

		Expect(importCmd.Execute(nil)).To(MatchError(ErrMissingSnapshotFile))
	})
})
