package sqlite

import (
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billable-timer/internal/errors"
)

type fakeScanner struct {
	values []interface{}
	err    error
}

func (f fakeScanner) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = f.values[i].(int64)
		case *string:
			*p = f.values[i].(string)
		}
	}
	return nil
}

func TestHandleDatabaseError(t *testing.T) {
	result := HandleDatabaseError("test operation", stderrors.New("database connection failed"))

	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
}

func TestHandleNoRowsError(t *testing.T) {
	notFound := HandleNoRowsError(sql.ErrNoRows, "session", "abc")
	assert.True(t, errors.IsErrorType(notFound, errors.ErrorTypeNotFound))

	other := stderrors.New("some other error")
	assert.Equal(t, other, HandleNoRowsError(other, "session", "abc"))
}

func TestScanProject(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	project, err := ScanProject(fakeScanner{values: []interface{}{int64(7), "Acme", FormatTimeForDB(created)}})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), project.ID)
	assert.Equal(t, "Acme", project.Name)
	assert.True(t, created.Equal(project.CreatedAt))
}

func TestScanProject_BadTime(t *testing.T) {
	_, err := ScanProject(fakeScanner{values: []interface{}{int64(7), "Acme", "yesterday"}})
	assert.Error(t, err)
}

func TestScanSession_PropagatesScanError(t *testing.T) {
	_, err := ScanSession(fakeScanner{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2025, 6, 23, 11, 47, 24, 0, time.FixedZone("BST", 3600))

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	assert.NoError(t, err)
	assert.True(t, original.Equal(parsed))
	assert.Equal(t, "2025-06-23T11:47:24+01:00", FormatTimeForDB(original))
}
