package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/orgacl/aclview/cmd/flags"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/permstore"
)

const component = "aclview"

// QueryOptions are shared by every command that answers from a single
// snapshot load.
type QueryOptions struct {
	Logger flags.LagerFlag

	Snapshot flags.SnapshotFlag `group:"Snapshot" namespace:"snapshot"`
	DB       flags.DBFlag       `group:"DB" namespace:"db"`

	Deduplicate bool `long:"deduplicate" description:"Count an entity listed twice in the same role once"`

	Output io.Writer `no-flag:"true"`
}

type queryFunc func(logger logx.Logger, store *permstore.Store) (interface{}, error)

// run loads the snapshot, indexes it and writes what query returns as JSON.
func (o QueryOptions) run(name string, query queryFunc) error {
	logger, closer, err := o.Logger.Logger(component)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger = logger.WithName(name)

	ctx := context.Background()

	source, sourceCloser, err := o.Snapshot.Source(ctx, logger, &o.DB)
	if err != nil {
		return err
	}
	defer sourceCloser.Close()

	snap, err := source.Load(ctx, logger)
	if err != nil {
		return err
	}

	var storeOpts []permstore.Option
	if o.Deduplicate {
		storeOpts = append(storeOpts, permstore.WithDeduplication())
	}

	store := permstore.NewStore(storeOpts...)
	store.Update(logger, snap)

	result, err := query(logger, store)
	if err != nil {
		return err
	}

	return o.write(result)
}

func (o QueryOptions) write(result interface{}) error {
	out := o.Output
	if out == nil {
		out = os.Stdout
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")

	return encoder.Encode(result)
}
