package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// maxSnapshotItems is a sanity bound on the snapshot count header.
const maxSnapshotItems = 1_000_000

// Load reads the dataset at path into a catalog. The format is chosen by
// extension: .csv for tabular text, .bin for a msgpack snapshot written by
// SaveSnapshot. All failures come back as *LoadError.
func Load(path string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".bin":
		return LoadSnapshot(path)
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))}
	}
}

// loadCSV reads a header-prefixed CSV dataset. The header must contain the
// title column and every attribute column; missing or empty cells become "".
func loadCSV(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Movie dumps often carry ragged rows, pad instead of failing.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading header: %w", err)}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	required := append([]string{TitleColumn}, AttributeColumns...)
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("missing required column %q", name)}
		}
	}

	cell := func(row []string, name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []Item
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("reading row %d: %w", len(items)+1, err)}
		}
		items = append(items, Item{
			Title:    cell(row, TitleColumn),
			Genres:   cell(row, "genres"),
			Keywords: cell(row, "keywords"),
			Tagline:  cell(row, "tagline"),
			Cast:     cell(row, "cast"),
			Director: cell(row, "director"),
		})
	}

	log.Debugf("Loaded %d items from %s", len(items), path)
	return New(items), nil
}

// LoadSnapshot reads a count-prefixed msgpack catalog snapshot.
func LoadSnapshot(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	dec := msgpack.NewDecoder(file)

	var count int
	if err := dec.Decode(&count); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("reading snapshot header: %w", err)}
	}
	if count < 0 || count > maxSnapshotItems {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("invalid snapshot item count %d", count)}
	}

	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		var it Item
		if err := dec.Decode(&it); err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("reading snapshot item %d: %w", i, err)}
		}
		items = append(items, it)
	}

	log.Debugf("Loaded %d items from snapshot %s", len(items), path)
	return New(items), nil
}

// SaveSnapshot writes the catalog as a count-prefixed msgpack snapshot,
// a faster startup path than re-parsing CSV for large catalogs.
func SaveSnapshot(c *Catalog, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalog: snapshot %s: %w", path, err)
	}
	defer file.Close()

	enc := msgpack.NewEncoder(file)
	if err := enc.Encode(c.Len()); err != nil {
		return fmt.Errorf("catalog: snapshot %s: writing header: %w", path, err)
	}
	for i := 0; i < c.Len(); i++ {
		item := c.Item(i)
		if err := enc.Encode(&item); err != nil {
			return fmt.Errorf("catalog: snapshot %s: writing item %d: %w", path, i, err)
		}
	}
	return nil
}
