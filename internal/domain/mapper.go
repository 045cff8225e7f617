package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"billable-timer/internal/repository/sqlite"
)

// LedgerRecordMapper handles conversion between ledger records and database
// session rows. Decimal amounts are stored as their exact string form.
type LedgerRecordMapper struct{}

// NewLedgerRecordMapper creates a new LedgerRecordMapper instance.
func NewLedgerRecordMapper() *LedgerRecordMapper {
	return &LedgerRecordMapper{}
}

// ToDatabase converts a ledger record to a database session row.
func (m *LedgerRecordMapper) ToDatabase(record LedgerRecord) sqlite.Session {
	return sqlite.Session{
		ID:              record.SequenceID,
		SessionUUID:     record.SessionID,
		ProjectName:     record.ProjectName,
		Description:     record.Description,
		StartTime:       record.StartedAt,
		StopTime:        record.StoppedAt,
		TotalMinutes:    record.TotalMinutes.String(),
		PausedMinutes:   record.PausedMinutes.String(),
		BillableMinutes: record.BillableMinutes.String(),
		Rate:            record.Rate.String(),
		Earned:          record.Earned.StringFixed(CurrencyPlaces),
	}
}

// FromDatabase converts a database session row to a ledger record.
func (m *LedgerRecordMapper) FromDatabase(row sqlite.Session) (LedgerRecord, error) {
	record := LedgerRecord{
		SequenceID:  row.ID,
		SessionID:   row.SessionUUID,
		ProjectName: row.ProjectName,
		Description: row.Description,
		StartedAt:   row.StartTime,
		StoppedAt:   row.StopTime,
	}

	fields := []struct {
		name  string
		value string
		dest  *decimal.Decimal
	}{
		{"total_minutes", row.TotalMinutes, &record.TotalMinutes},
		{"paused_minutes", row.PausedMinutes, &record.PausedMinutes},
		{"billable_minutes", row.BillableMinutes, &record.BillableMinutes},
		{"rate", row.Rate, &record.Rate},
		{"earned", row.Earned, &record.Earned},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.value)
		if err != nil {
			return LedgerRecord{}, fmt.Errorf("session %d %s: %w", row.ID, f.name, err)
		}
		*f.dest = d
	}

	return record, nil
}

// FromDatabaseSlice converts database session rows to ledger records.
func (m *LedgerRecordMapper) FromDatabaseSlice(rows []*sqlite.Session) ([]LedgerRecord, error) {
	records := make([]LedgerRecord, 0, len(rows))
	for _, row := range rows {
		record, err := m.FromDatabase(*row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
