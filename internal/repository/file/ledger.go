package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"billable-timer/internal/domain"
)

// LedgerTimeFormat is the local wall-clock layout of start_time and stop_time.
const LedgerTimeFormat = "2006-01-02 15:04:05"

// LedgerHeader is the fixed first row of the CSV ledger.
var LedgerHeader = []string{
	"session_id",
	"project_name",
	"description",
	"start_time",
	"stop_time",
	"total_duration_min",
	"paused_duration_min",
	"billable_min",
	"rate",
	"earned",
}

// CSVLedger appends finished sessions to a CSV file.
//
// The last issued sequence ID lives in a sidecar file next to the ledger.
// If the sidecar is missing it is derived once from the last data row, so
// IDs stay monotonic even when rows were edited or removed by hand. The
// sidecar is only advanced after the row is on disk.
type CSVLedger struct {
	path    string
	seqPath string
	lock    *flock.Flock
	logger  zerolog.Logger

	mu       sync.Mutex
	appended map[string]domain.LedgerRecord
}

// NewCSVLedger creates a ledger at path, creating its directory.
func NewCSVLedger(path string, dirPerm os.FileMode, logger zerolog.Logger) (*CSVLedger, error) {
	if err := ensureDir(path, dirPerm); err != nil {
		return nil, err
	}
	return &CSVLedger{
		path:     path,
		seqPath:  path + ".seq",
		lock:     flock.New(path + ".lock"),
		logger:   logger.With().Str("backend", "file").Str("ledger", path).Logger(),
		appended: make(map[string]domain.LedgerRecord),
	}, nil
}

// Path returns the location of the CSV file.
func (l *CSVLedger) Path() string {
	return l.path
}

// AppendSession writes one row and assigns its sequence ID. A SessionID that
// was already appended by this ledger returns the earlier result unchanged.
func (l *CSVLedger) AppendSession(ctx context.Context, record domain.LedgerRecord) (domain.LedgerRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if record.SessionID != "" {
		if prev, ok := l.appended[record.SessionID]; ok {
			l.logger.Debug().Str("session_id", record.SessionID).Msg("session already appended")
			return prev, nil
		}
	}

	locked, err := l.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return domain.LedgerRecord{}, fmt.Errorf("lock %s: %w", l.path, err)
	}
	if !locked {
		return domain.LedgerRecord{}, fmt.Errorf("lock %s: not acquired", l.path)
	}
	defer l.lock.Unlock()

	last, err := l.lastSequenceID()
	if err != nil {
		return domain.LedgerRecord{}, err
	}

	record.SequenceID = last + 1
	if err := l.appendRow(encodeRecord(record)); err != nil {
		return domain.LedgerRecord{}, err
	}
	if err := writeFileAtomic(l.seqPath, []byte(strconv.FormatInt(record.SequenceID, 10)+"\n"), 0644); err != nil {
		// The row is already written; the next append re-derives from it.
		l.logger.Warn().Err(err).Int64("sequence_id", record.SequenceID).Msg("failed to update sequence file")
		_ = os.Remove(l.seqPath)
	}

	if record.SessionID != "" {
		l.appended[record.SessionID] = record
	}
	l.logger.Debug().
		Int64("sequence_id", record.SequenceID).
		Str("session_id", record.SessionID).
		Str("project", record.ProjectName).
		Msg("session appended")
	return record, nil
}

// ListSessions reads every data row of the ledger. A missing file is empty.
func (l *CSVLedger) ListSessions(ctx context.Context) ([]domain.LedgerRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.readRows()
	if err != nil {
		return nil, err
	}

	records := make([]domain.LedgerRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", l.path, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *CSVLedger) lastSequenceID() (int64, error) {
	data, err := os.ReadFile(l.seqPath)
	if err == nil {
		id, perr := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if perr == nil && id >= 0 {
			return id, nil
		}
		l.logger.Warn().Str("sequence_file", l.seqPath).Msg("unreadable sequence file, deriving from ledger")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("read %s: %w", l.seqPath, err)
	}

	rows, err := l.readRows()
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	lastRow := rows[len(rows)-1]
	id, err := strconv.ParseInt(strings.TrimSpace(lastRow[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: last row has invalid session_id %q", l.path, lastRow[0])
	}
	return id, nil
}

// readRows returns the data rows, without the header.
func (l *CSVLedger) readRows() ([][]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(LedgerHeader)

	var rows [][]string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", l.path, err)
		}
		if first {
			first = false
			if row[0] == LedgerHeader[0] {
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (l *CSVLedger) appendRow(row []string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", l.path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat %s: %w", l.path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if info.Size() == 0 {
		_ = w.Write(LedgerHeader)
	}
	_ = w.Write(row)
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("encode row: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", l.path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", l.path, err)
	}
	return f.Close()
}

func encodeRecord(r domain.LedgerRecord) []string {
	places := int32(domain.CurrencyPlaces)
	return []string{
		strconv.FormatInt(r.SequenceID, 10),
		r.ProjectName,
		r.Description,
		r.StartedAt.Local().Format(LedgerTimeFormat),
		r.StoppedAt.Local().Format(LedgerTimeFormat),
		r.TotalMinutes.StringFixed(places),
		r.PausedMinutes.StringFixed(places),
		r.BillableMinutes.StringFixed(places),
		r.Rate.String(),
		r.Earned.StringFixed(places),
	}
}

func decodeRecord(row []string) (domain.LedgerRecord, error) {
	var rec domain.LedgerRecord
	var err error

	if rec.SequenceID, err = strconv.ParseInt(row[0], 10, 64); err != nil {
		return rec, fmt.Errorf("session_id: %w", err)
	}
	rec.ProjectName = row[1]
	rec.Description = row[2]

	if rec.StartedAt, err = time.ParseInLocation(LedgerTimeFormat, row[3], time.Local); err != nil {
		return rec, fmt.Errorf("start_time: %w", err)
	}
	if rec.StoppedAt, err = time.ParseInLocation(LedgerTimeFormat, row[4], time.Local); err != nil {
		return rec, fmt.Errorf("stop_time: %w", err)
	}

	amounts := []*decimal.Decimal{&rec.TotalMinutes, &rec.PausedMinutes, &rec.BillableMinutes, &rec.Rate, &rec.Earned}
	for i, dest := range amounts {
		d, err := decimal.NewFromString(row[5+i])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", LedgerHeader[5+i], err)
		}
		*dest = d
	}
	return rec, nil
}
