package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mealcart/backend/internal/domain"
)

// Loader reads catalog snapshot files from disk. Supported formats:
// .xlsx workbooks (one row per product, header row required) and .json
// files holding an array of product records.
type Loader struct {
	paths []string
	debug bool
}

// NewLoader creates a loader over the given file or directory paths.
func NewLoader(paths []string) *Loader {
	return &Loader{paths: paths}
}

// SetDebug toggles per-file load logging.
func (l *Loader) SetDebug(debug bool) {
	l.debug = debug
}

// Load reads every configured path and returns the combined candidate set
// for a fresh snapshot. A directory contributes every .xlsx/.json file in
// it. Unreadable files fail the whole load; bad rows are skipped with a log
// line so one vendor typo cannot take the catalog down.
func (l *Loader) Load() ([]domain.ProductCandidate, error) {
	files, err := l.resolveFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no catalog files found in %v", domain.ErrCatalogUnavailable, l.paths)
	}

	var candidates []domain.ProductCandidate
	for _, file := range files {
		var (
			loaded []domain.ProductCandidate
			err    error
		)
		switch strings.ToLower(filepath.Ext(file)) {
		case ".xlsx":
			loaded, err = l.loadWorkbook(file)
		case ".json":
			loaded, err = l.loadJSON(file)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogUnavailable, file, err)
		}
		if l.debug {
			log.Printf("[CATALOG] loaded %d products from %s", len(loaded), file)
		}
		candidates = append(candidates, loaded...)
	}

	return candidates, nil
}

// resolveFiles expands directories into their catalog files, keeping the
// configured order deterministic.
func (l *Loader) resolveFiles() ([]string, error) {
	var files []string
	for _, path := range l.paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext == ".xlsx" || ext == ".json" {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	return files, nil
}

// loadWorkbook reads every sheet of an xlsx workbook. The first row of each
// sheet is the header; rows failing to map are logged and skipped.
func (l *Loader) loadWorkbook(path string) ([]domain.ProductCandidate, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var candidates []domain.ProductCandidate
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) < 2 {
			continue
		}

		header := make([]string, len(rows[0]))
		for i, cell := range rows[0] {
			header[i] = strings.ToLower(strings.TrimSpace(cell))
		}

		for rowIdx, row := range rows[1:] {
			record := make(map[string]string, len(header))
			for i, cell := range row {
				if i < len(header) {
					record[header[i]] = cell
				}
			}
			candidate, err := rowToCandidate(record)
			if err != nil {
				log.Printf("[CATALOG] skipping %s sheet %s row %d: %v", path, sheet, rowIdx+2, err)
				continue
			}
			candidates = append(candidates, candidate)
		}
	}
	return candidates, nil
}

// loadJSON reads a JSON array of product records in the domain wire format.
func (l *Loader) loadJSON(path string) ([]domain.ProductCandidate, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var candidates []domain.ProductCandidate
	if err := json.Unmarshal(payload, &candidates); err != nil {
		return nil, fmt.Errorf("invalid catalog JSON: %w", err)
	}

	// Normalize rows the same way the spreadsheet path does.
	out := candidates[:0]
	for _, c := range candidates {
		if c.ProductID == "" || c.Title == "" || c.Category == "" {
			log.Printf("[CATALOG] skipping incomplete product record in %s (id=%q)", path, c.ProductID)
			continue
		}
		if c.UnitPrice.Value == 0 {
			c.UnitPrice = deriveUnitPrice(c.Price, domain.Measure{
				Value: c.Size.Value,
				Unit:  strings.ToLower(c.Size.Unit),
			})
		}
		out = append(out, c)
	}
	return out, nil
}
