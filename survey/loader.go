package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-mindfit/types"

	"github.com/sirupsen/logrus"
)

// DefaultDataFile is the form export the dashboard reads when nothing else is configured.
const DefaultDataFile = "MindFIT - Form Responses 1 (1).csv"

// naTokens are read as missing, the way spreadsheet exports spell an empty answer.
var naTokens = map[string]bool{
	"NA": true, "N/A": true, "n/a": true, "#N/A": true, "#NA": true, "<NA>": true,
	"NaN": true, "nan": true, "-NaN": true, "-nan": true,
	"null": true, "NULL": true, "None": true,
}

// LoadCSV reads a survey export from disk.
func LoadCSV(path string) (*types.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, types.ErrDataUnavailable, err)
	}
	defer f.Close()

	return ReadCSV(f, filepath.Base(path))
}

// ReadCSV parses a header row plus one record per respondent. Short records
// are padded, NA tokens become empty cells, duplicate headers get a ".N" suffix.
func ReadCSV(r io.Reader, source string) (*types.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s has no header: %w", source, types.ErrDataUnavailable)
		}
		return nil, fmt.Errorf("read header of %s: %w: %v", source, types.ErrDataUnavailable, err)
	}
	columns := normalizeHeader(header)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s has no columns: %w", source, types.ErrDataUnavailable)
	}

	table := &types.Table{Source: source, Columns: columns}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d of %s: %w: %v", table.Len()+1, source, types.ErrDataUnavailable, err)
		}
		if isBlankRecord(rec) {
			continue
		}
		row := make(types.Row, len(columns))
		for j, col := range columns {
			if j >= len(rec) {
				row[col] = ""
				continue
			}
			v := strings.TrimSpace(rec[j])
			if naTokens[v] {
				v = ""
			}
			row[col] = v
		}
		table.Rows = append(table.Rows, row)
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("%s has no responses: %w", source, types.ErrDataUnavailable)
	}

	logrus.WithFields(logrus.Fields{
		"source":  source,
		"rows":    table.Len(),
		"columns": len(columns),
	}).Debug("Loaded survey table")
	return table, nil
}

// normalizeHeader trims names and renames repeats to name.1, name.2, ...
// A generated name that is already taken is suffixed again, so every
// returned name is unique.
func normalizeHeader(header []string) []string {
	counts := make(map[string]int, len(header))
	out := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		n := counts[h]
		for n > 0 {
			counts[h] = n + 1
			h = h + "." + strconv.Itoa(n)
			n = counts[h]
		}
		counts[h] = n + 1
		out = append(out, h)
	}
	if len(out) == 1 && out[0] == "" {
		return nil
	}
	return out
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
