// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 LexiSync Authors

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}
	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// sqlmock has no expectations set, so goose's version query fails.
	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}
	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestEmbeddedMigrations_DefineSyncSchema(t *testing.T) {
	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no migration files embedded")
	}

	var schema strings.Builder
	for _, entry := range entries {
		data, readErr := embedMigrations.ReadFile(entry.Name())
		if readErr != nil {
			t.Fatalf("failed to read %s: %v", entry.Name(), readErr)
		}
		schema.Write(data)
	}

	for _, table := range []string{"sync_snapshots", "sync_devices"} {
		if !strings.Contains(schema.String(), table) {
			t.Errorf("embedded migrations do not create table %q", table)
		}
	}
}
