package data

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleJSON = `[
  {"data": "2024-01-01", "tipo": "Over", "jogo": "Flamengo x Vasco", "horario": "16:00", "lado": "Over 2.5", "odd": 2.0, "ev": 15, "resultado": "Ganho"},
  {"data": "2024-01-01", "tipo": "Over", "jogo": "Santos x Bahia", "horario": "18:30", "lado": "Over 1.5", "odd": 1.5, "ev": 5, "resultado": "Perda"},
  {"data": "2024-01-02T21:00:00", "tipo": "Handicap", "jogo": "Grêmio x Inter", "horario": "21:00", "lado": "Grêmio -0.5", "odd": 2.35, "ev": 12.5, "resultado": "Pendente"}
]`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apostas_reais.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadRecordsJSON(t *testing.T) {
	path := writeFile(t, sampleJSON)

	ds, err := LoadRecordsJSON(path, time.UTC)
	if err != nil {
		t.Fatalf("LoadRecordsJSON: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("got %d records, want 3", ds.Len())
	}
	if ds.Fingerprint == "" {
		t.Error("expected a fingerprint")
	}
	if ds.Source != path {
		t.Errorf("Source = %q, want %q", ds.Source, path)
	}

	first := ds.Records[0]
	if first.BetType != "Over" || first.Match != "Flamengo x Vasco" || first.Side != "Over 2.5" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Odd != 2.0 || first.EV != 15 || first.Result != "Ganho" {
		t.Errorf("unexpected numbers on first record: %+v", first)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !first.Date.Equal(want) {
		t.Errorf("first date = %v, want %v", first.Date, want)
	}
	if want := time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC); !ds.Records[2].Date.Equal(want) {
		t.Errorf("third date = %v, want %v", ds.Records[2].Date, want)
	}
}

func TestLoadRecordsJSON_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := LoadRecordsJSON(path, time.UTC)
	var nf *DataNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected DataNotFoundError, got %v", err)
	}
	if nf.Source != path {
		t.Errorf("Source = %q, want %q", nf.Source, path)
	}
}

func TestLoadRecordsJSON_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		index int
		field string
	}{
		{
			name:  "bad date",
			body:  `[{"data": "2024-01-01", "odd": 2}, {"data": "ontem", "odd": 2}]`,
			index: 1,
			field: "data",
		},
		{
			name:  "empty date",
			body:  `[{"data": "", "odd": 2}]`,
			index: 0,
			field: "data",
		},
		{
			name:  "zero odd",
			body:  `[{"data": "2024-01-01", "odd": 0}]`,
			index: 0,
			field: "odd",
		},
		{
			name:  "negative odd",
			body:  `[{"data": "2024-01-01", "odd": 1.8}, {"data": "2024-01-01", "odd": 1.8}, {"data": "2024-01-03", "odd": -1}]`,
			index: 2,
			field: "odd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecordsJSON(writeFile(t, tt.body), time.UTC)
			var mr *MalformedRecordError
			if !errors.As(err, &mr) {
				t.Fatalf("expected MalformedRecordError, got %v", err)
			}
			if mr.Index != tt.index || mr.Field != tt.field {
				t.Errorf("got index=%d field=%s, want index=%d field=%s", mr.Index, mr.Field, tt.index, tt.field)
			}
		})
	}
}

func TestLoadRecordsJSON_NotAnArray(t *testing.T) {
	_, err := LoadRecordsJSON(writeFile(t, `{"data": "2024-01-01"}`), time.UTC)
	if err == nil {
		t.Fatal("expected an error for a non-array document")
	}
	var nf *DataNotFoundError
	if errors.As(err, &nf) {
		t.Errorf("did not expect DataNotFoundError: %v", err)
	}
}

func TestFileSource(t *testing.T) {
	src, err := OpenSource(writeFile(t, sampleJSON), SourceOptions{Location: time.UTC})
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if _, ok := src.(*FileSource); !ok {
		t.Fatalf("expected *FileSource, got %T", src)
	}
	ds, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 3 {
		t.Errorf("got %d records, want 3", ds.Len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFingerprintTracksContents(t *testing.T) {
	a, err := DecodeRecordsJSON("a", []byte(sampleJSON), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodeRecordsJSON("b", []byte(sampleJSON), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	c, err := DecodeRecordsJSON("c", []byte(`[{"data": "2024-01-01", "odd": 3}]`), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint != b.Fingerprint {
		t.Error("same bytes should share a fingerprint")
	}
	if a.Fingerprint == c.Fingerprint {
		t.Error("different bytes should not share a fingerprint")
	}
}
