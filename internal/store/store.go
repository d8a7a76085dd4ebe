package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"courtlinks/internal/dataset"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Store mirrors the merged dataset into a sqlite database so that it can be
// queried without loading the whole file.
type Store struct {
	db     *sql.DB
	makeTx makeTx
}

// Open opens (or creates) the database at path, ":memory:" works too.
func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite only ever has one writer, and an in-memory database is per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return Store{}, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return Store{}, fmt.Errorf("apply schema: %w", err)
	}
	return Store{db: db, makeTx: newMakeTx(db)}, nil
}

func (s Store) Close() error {
	return s.db.Close()
}

// Replace rewrites the cases table with records in one transaction,
// dataset order is kept.
func (s Store) Replace(ctx context.Context, records []dataset.CaseRecord) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	if _, err := tx.ExecContext(ctx, "delete from cases"); err != nil {
		return fmt.Errorf("clear cases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `insert into cases (
		supreme_case_number, supreme_case_link, appeals_case_number, appeals_case_link,
		source_type, verdict_date, decision_status, position
	) values (?, ?, ?, ?, ?, ?, ?, ?)
	on conflict (supreme_case_number) do nothing`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		r = r.Trimmed()
		_, err := stmt.ExecContext(
			ctx,
			r.SupremeCaseNumber,
			r.SupremeCaseLink,
			r.AppealsCaseNumber,
			r.AppealsCaseLink,
			string(r.SourceType),
			r.VerdictDate,
			string(r.DecisionStatus),
			i,
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", r.SupremeCaseNumber, err)
		}
	}

	return commit()
}

const selectColumns = `select
	supreme_case_number, supreme_case_link, appeals_case_number, appeals_case_link,
	source_type, verdict_date, decision_status
from cases`

func scanRecords(rows *sql.Rows) ([]dataset.CaseRecord, error) {
	defer rows.Close()

	var out []dataset.CaseRecord
	for rows.Next() {
		var r dataset.CaseRecord
		var source, status string
		err := rows.Scan(
			&r.SupremeCaseNumber,
			&r.SupremeCaseLink,
			&r.AppealsCaseNumber,
			&r.AppealsCaseLink,
			&source,
			&r.VerdictDate,
			&status,
		)
		if err != nil {
			return nil, err
		}
		r.SourceType = dataset.SourceType(source)
		r.DecisionStatus = dataset.DecisionStatus(status)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ByAppealsNumber returns every record that references the given appeals case, in dataset order.
func (s Store) ByAppealsNumber(ctx context.Context, appealsCaseNumber string) ([]dataset.CaseRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		selectColumns+" where appeals_case_number = ? order by position",
		appealsCaseNumber,
	)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// All returns every record in dataset order.
func (s Store) All(ctx context.Context) ([]dataset.CaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" order by position")
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}
