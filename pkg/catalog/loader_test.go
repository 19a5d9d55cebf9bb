package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, `title,genres,keywords,tagline,cast,director
Avatar,Action Adventure,alien planet,Enter the world,Sam Worthington,James Cameron
Avatar 2,Action Adventure,ocean planet,,Sam Worthington,James Cameron
`)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Expected 2 items, got %d", cat.Len())
	}

	first := cat.Item(0)
	if first.Index != 0 || first.Title != "Avatar" || first.Director != "James Cameron" {
		t.Errorf("Unexpected first item: %+v", first)
	}

	// missing tagline cell must normalize to "" and keep the join order
	second := cat.Item(1)
	if second.Tagline != "" {
		t.Errorf("Expected empty tagline, got %q", second.Tagline)
	}
	expectedDoc := "Action Adventure ocean planet  Sam Worthington James Cameron"
	if second.Document() != expectedDoc {
		t.Errorf("Document = %q, expected %q", second.Document(), expectedDoc)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, `title,genres,keywords,tagline,cast,director
Avatar,Action Adventure
`)

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed on ragged row: %v", err)
	}
	item := cat.Item(0)
	if item.Genres != "Action Adventure" || item.Director != "" {
		t.Errorf("Short row should pad with empty cells: %+v", item)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeTempCSV(t, `title,genres,keywords,tagline,cast
Avatar,Action,alien,,Sam
`)

	var loadErr *LoadError
	if _, err := Load(path); !errors.As(err, &loadErr) {
		t.Errorf("Expected *LoadError for missing director column, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var loadErr *LoadError
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.As(err, &loadErr) {
		t.Error("Expected *LoadError for missing file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	var loadErr *LoadError
	if _, err := Load("movies.json"); !errors.As(err, &loadErr) {
		t.Error("Expected *LoadError for unsupported extension")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cat := New([]Item{
		{Title: "Avatar", Genres: "Action Adventure", Keywords: "alien planet"},
		{Title: "Romance Story", Genres: "Romance"},
	})

	path := filepath.Join(t.TempDir(), "catalog.bin")
	if err := SaveSnapshot(cat, path); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Loading snapshot failed: %v", err)
	}
	if loaded.Len() != cat.Len() {
		t.Fatalf("Expected %d items, got %d", cat.Len(), loaded.Len())
	}
	for i := 0; i < cat.Len(); i++ {
		if loaded.Item(i) != cat.Item(i) {
			t.Errorf("Item %d mismatch: %+v vs %+v", i, loaded.Item(i), cat.Item(i))
		}
	}
}

func TestSnapshotCorruptHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	if err := os.WriteFile(path, []byte{0xc1}, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var loadErr *LoadError
	if _, err := Load(path); !errors.As(err, &loadErr) {
		t.Error("Expected *LoadError for corrupt snapshot")
	}
}

func TestDocumentJoinOrder(t *testing.T) {
	item := Item{
		Genres:   "g",
		Keywords: "k",
		Tagline:  "l",
		Cast:     "c",
		Director: "d",
	}
	if got := item.Document(); got != "g k l c d" {
		t.Errorf("Document = %q, expected attribute order g k l c d", got)
	}
}
