package store

import (
	"context"
	"database/sql"
)

// makeTx creates a db transaction, discard is a no-op once commit succeeded.
type makeTx = func(ctx context.Context) (tx *sql.Tx, discard, commit func() error, err error)

func newMakeTx(db *sql.DB) makeTx {
	return func(ctx context.Context) (tx *sql.Tx, discard, commit func() error, err error) {
		sqltx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqltx,
			func() error {
				err := sqltx.Rollback()
				if err == sql.ErrTxDone {
					return nil
				}
				return err
			},
			func() error {
				return sqltx.Commit()
			},
			nil
	}
}
