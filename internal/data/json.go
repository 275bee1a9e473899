package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"bet-dashboard/internal/model"
)

// DefaultRecordsPath is where the picks history lives when nothing else is configured.
const DefaultRecordsPath = "apostas_reais.json"

// Dataset is an immutable snapshot of the picks history.
type Dataset struct {
	Records []model.BetRecord

	// Fingerprint identifies the snapshot contents (sha256, hex).
	Fingerprint string
	Source      string
	LoadedAt    time.Time
}

// Len returns the number of records in the snapshot.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// LoadRecordsJSON reads an array-of-objects picks file.
// A missing file yields *DataNotFoundError; a bad record yields *MalformedRecordError.
func LoadRecordsJSON(path string, loc *time.Location) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DataNotFoundError{Source: path, Err: err}
		}
		return nil, fmt.Errorf("read records file: %w", err)
	}
	return DecodeRecordsJSON(path, raw, loc)
}

// DecodeRecordsJSON parses raw JSON bytes named by source.
func DecodeRecordsJSON(source string, raw []byte, loc *time.Location) (*Dataset, error) {
	var rows []model.RawRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse records file %s: %w", source, err)
	}
	sum := sha256.Sum256(raw)
	return newDataset(source, rows, hex.EncodeToString(sum[:]), loc)
}

// newDataset normalizes raws into a snapshot. Zero rows is a valid, empty
// dataset for every source; only an absent source is a DataNotFoundError.
func newDataset(source string, raws []model.RawRecord, fingerprint string, loc *time.Location) (*Dataset, error) {
	records, err := NormalizeRecords(raws, loc)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Records:     records,
		Fingerprint: fingerprint,
		Source:      source,
		LoadedAt:    time.Now(),
	}, nil
}

// FileSource loads records from a JSON file.
type FileSource struct {
	Path     string
	Location *time.Location
}

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadRecordsJSON(s.Path, s.Location)
}

func (s *FileSource) String() string { return s.Path }
