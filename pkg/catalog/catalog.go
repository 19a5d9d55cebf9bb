/*
Package catalog loads the movie dataset and exposes it as an immutable,
index-addressed catalog.

Each row of the dataset becomes one Item. The item's position in load order is
its identity for the rest of the engine; titles are display strings, not keys.
The free-text attribute columns are joined into a single document per item,
which the vector package tokenizes and weighs.
*/
package catalog

import (
	"fmt"
	"strings"
)

// AttributeColumns lists the free-text columns combined into each item's
// document, in the order they are joined. The order is fixed: changing it
// changes tokenization input but not ranking, since weighting is bag-of-words.
var AttributeColumns = []string{"genres", "keywords", "tagline", "cast", "director"}

// TitleColumn is the required display/identity column.
const TitleColumn = "title"

// Item is one catalog entry. Missing attribute cells are normalized to ""
// at load time, so all fields are safe to join and tokenize.
type Item struct {
	Index    int    `msgpack:"i"`
	Title    string `msgpack:"t"`
	Genres   string `msgpack:"g"`
	Keywords string `msgpack:"k"`
	Tagline  string `msgpack:"l"`
	Cast     string `msgpack:"c"`
	Director string `msgpack:"d"`
}

// Document returns the space-joined attribute text used for vectorization,
// in AttributeColumns order.
func (it Item) Document() string {
	return strings.Join([]string{it.Genres, it.Keywords, it.Tagline, it.Cast, it.Director}, " ")
}

// Catalog is the ordered, immutable set of items for the process lifetime.
type Catalog struct {
	items  []Item
	titles []string
}

// New builds a catalog from items, assigning indices by position.
func New(items []Item) *Catalog {
	titles := make([]string, len(items))
	for i := range items {
		items[i].Index = i
		titles[i] = items[i].Title
	}
	return &Catalog{items: items, titles: titles}
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns the item at index i. Callers are expected to stay in range;
// indices come from this catalog's own titles.
func (c *Catalog) Item(i int) Item {
	return c.items[i]
}

// Titles returns all titles in catalog order. The slice is shared and must
// not be mutated.
func (c *Catalog) Titles() []string {
	return c.titles
}

// Documents returns one document per item, in catalog order.
func (c *Catalog) Documents() []string {
	docs := make([]string, len(c.items))
	for i, it := range c.items {
		docs[i] = it.Document()
	}
	return docs
}

// LoadError reports a dataset that could not be read or lacks a required column.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
