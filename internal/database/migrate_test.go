package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"000002_index.up.sql":    {Data: []byte("CREATE INDEX idx ON decks (user_id);\n")},
		"000001_create.up.sql":   {Data: []byte("CREATE TABLE decks (id VARCHAR2(26))")},
		"000001_create.down.sql": {Data: []byte("DROP TABLE decks")},
		"README.md":              {Data: []byte("notes")},
	}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE decks (id VARCHAR2(26))")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx ON decks (user_id)") + "$").
		WillReturnError(errors.New("ORA-00955: name is already used by an existing object"))

	require.NoError(t, runMigrations(context.Background(), db, fsys))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{"000001_create.up.sql": {Data: []byte("CREATE TABLE decks (id VARCHAR2(26))")}}
	mock.ExpectExec("CREATE TABLE decks").WillReturnError(errors.New("ORA-01031: insufficient privileges"))

	err = runMigrations(context.Background(), db, fsys)
	assert.ErrorContains(t, err, "000001_create.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
