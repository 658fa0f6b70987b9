// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

// schemas holds the table definitions for each supported driver.
var schemas = map[string][]string{
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS uploads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			created TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS iterations (
			upload_id INTEGER NOT NULL REFERENCES uploads(id),
			seq INTEGER NOT NULL,
			fixture TEXT NOT NULL,
			benchmark TEXT NOT NULL,
			model TEXT NOT NULL,
			backend TEXT NOT NULL,
			buffer_size INTEGER NOT NULL,
			iteration INTEGER NOT NULL,
			repetition INTEGER NOT NULL,
			runtime_ms REAL NOT NULL,
			orig_runtime REAL NOT NULL,
			orig_unit TEXT NOT NULL,
			sample_rate REAL NOT NULL,
			PRIMARY KEY (upload_id, seq)
		)`,
	},
	"mysql": {
		`CREATE TABLE IF NOT EXISTS uploads (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			label VARCHAR(255) NOT NULL,
			created VARCHAR(32) NOT NULL
		) ENGINE=InnoDB`,
		`CREATE TABLE IF NOT EXISTS iterations (
			upload_id BIGINT NOT NULL,
			seq INT NOT NULL,
			fixture VARCHAR(255) NOT NULL,
			benchmark VARCHAR(255) NOT NULL,
			model VARCHAR(255) NOT NULL,
			backend VARCHAR(64) NOT NULL,
			buffer_size INT NOT NULL,
			iteration INT NOT NULL,
			repetition INT NOT NULL,
			runtime_ms DOUBLE NOT NULL,
			orig_runtime DOUBLE NOT NULL,
			orig_unit VARCHAR(16) NOT NULL,
			sample_rate DOUBLE NOT NULL,
			PRIMARY KEY (upload_id, seq),
			FOREIGN KEY (upload_id) REFERENCES uploads(id)
		) ENGINE=InnoDB`,
	},
}
