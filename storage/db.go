// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage stores benchmark iteration results in a SQL
// database. Results are grouped into uploads, one per stored log.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/anira-bench/anirabench/benchfmt"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hashicorp/go-multierror"
	_ "github.com/mattn/go-sqlite3"
)

// DB is a high-level interface to a database for the storage
// app. It's safe for concurrent use by multiple goroutines.
type DB struct {
	sql    *sql.DB // underlying database connection
	driver string

	// prepared statements
	insertUpload    *sql.Stmt
	insertIteration *sql.Stmt
	listIterations  *sql.Stmt
}

// Open connects to a SQL database and prepares it for use. driver is
// "sqlite3" or "mysql".
func Open(driver, dsn string) (*DB, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("unsupported database driver %q (want sqlite3 or mysql)", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == "sqlite3" {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}

	d := &DB{sql: db, driver: driver}
	if err := d.createTables(); err != nil {
		return nil, multierror.Append(err, db.Close()).ErrorOrNil()
	}
	if err := d.prepareStatements(); err != nil {
		return nil, multierror.Append(err, db.Close()).ErrorOrNil()
	}
	return d, nil
}

// ParseDSN splits a "driver:dsn" string as accepted on the command
// line, e.g. "sqlite3:results.db" or "mysql:user@/bench".
func ParseDSN(s string) (driver, dsn string, err error) {
	i := strings.Index(s, ":")
	if i <= 0 {
		return "", "", fmt.Errorf("database %q must have the form driver:dsn", s)
	}
	return s[:i], s[i+1:], nil
}

func (db *DB) createTables() error {
	for _, stmt := range schemas[db.driver] {
		if _, err := db.sql.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	q := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}
		var stmt *sql.Stmt
		stmt, err = db.sql.Prepare(query)
		return stmt
	}
	db.insertUpload = q("INSERT INTO uploads(label, created) VALUES (?, ?)")
	db.insertIteration = q(`INSERT INTO iterations(upload_id, seq, fixture, benchmark, model, backend, buffer_size, iteration, repetition, runtime_ms, orig_runtime, orig_unit, sample_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	db.listIterations = q(`SELECT fixture, benchmark, model, backend, buffer_size, iteration, repetition, runtime_ms, orig_runtime, orig_unit, sample_rate, u.label
		FROM iterations i JOIN uploads u ON u.id = i.upload_id WHERE i.upload_id = ? ORDER BY i.seq`)
	if err != nil {
		return fmt.Errorf("prepare statements: %w", err)
	}
	return nil
}

// Upload stores results as a new upload with the given label and
// returns the upload's ID. All results are inserted in a single
// transaction.
func (db *DB) Upload(ctx context.Context, label string, results []*benchfmt.Result) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = multierror.Append(err, rerr)
			}
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx, label, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("insert upload: %w", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	insert := tx.StmtContext(ctx, db.insertIteration)
	for i, r := range results {
		if _, err = insert.ExecContext(ctx, id, i, r.Fixture, r.Benchmark, r.Model, r.Backend,
			r.BufferSize, r.Iteration, r.Repetition, r.Runtime, r.OrigRuntime, r.OrigUnit, r.SampleRate); err != nil {
			return 0, fmt.Errorf("insert iteration %d: %w", i, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Iterations returns the results of upload id in the order they were
// uploaded. The Label of each result is the upload's label.
func (db *DB) Iterations(ctx context.Context, id int64) ([]*benchfmt.Result, error) {
	rows, err := db.listIterations.QueryContext(ctx, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*benchfmt.Result
	for rows.Next() {
		r := new(benchfmt.Result)
		if err := rows.Scan(&r.Fixture, &r.Benchmark, &r.Model, &r.Backend, &r.BufferSize,
			&r.Iteration, &r.Repetition, &r.Runtime, &r.OrigRuntime, &r.OrigUnit, &r.SampleRate, &r.Label); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	var errs *multierror.Error
	for _, stmt := range []*sql.Stmt{db.insertUpload, db.insertIteration, db.listIterations} {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	if err := db.sql.Close(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return errs.ErrorOrNil()
}
