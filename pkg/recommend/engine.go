/*
Package recommend ties the catalog, vector space and fuzzy resolver into one
query engine.

The Engine is built once and never mutated: every method is a pure read over
the catalog and the precomputed similarity matrix, so concurrent callers are
safe without locks. A degraded engine (empty catalog, no vector space) answers
every query with no-match instead of failing, which is how load and build
errors surface to the user.
*/
package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bastiangx/reelserve/pkg/catalog"
	"github.com/bastiangx/reelserve/pkg/config"
	"github.com/bastiangx/reelserve/pkg/fuzzy"
	"github.com/bastiangx/reelserve/pkg/vector"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrIndexOutOfRange reports a recommendation index outside the similarity
// matrix. It indicates a wiring bug, not a user-recoverable condition.
var ErrIndexOutOfRange = errors.New("recommend: item index out of range")

// Options holds the engine's ranking and matching parameters.
type Options struct {
	TopK            int
	ResolveLimit    int
	ResolveMinScore float64
	SuggestLimit    int
	SuggestMinScore float64
}

// DefaultOptions mirrors the builtin config defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig maps the TOML config onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TopK:            cfg.Engine.TopK,
		ResolveLimit:    cfg.Resolver.ResolveLimit,
		ResolveMinScore: cfg.Resolver.ResolveMinScore,
		SuggestLimit:    cfg.Resolver.SuggestLimit,
		SuggestMinScore: cfg.Resolver.SuggestMinScore,
	}
}

// Result is one answered query: the resolved catalog title and the ranked
// recommendations for it.
type Result struct {
	Match  string
	Titles []string
}

// Engine answers fuzzy title queries against a fixed catalog.
type Engine struct {
	cat   *catalog.Catalog
	space *vector.Space
	trie  *patricia.Trie
	opts  Options
}

// New builds an engine over a loaded catalog and its vector space.
// The trie maps lowercased titles to catalog indices; duplicate titles keep
// the first index so ties resolve in catalog order.
func New(cat *catalog.Catalog, space *vector.Space, opts Options) *Engine {
	trie := patricia.NewTrie()
	if cat != nil {
		for i := 0; i < cat.Len(); i++ {
			trie.Insert(patricia.Prefix(strings.ToLower(cat.Item(i).Title)), i)
		}
	}
	return &Engine{cat: cat, space: space, trie: trie, opts: opts}
}

// NewEmpty returns a degraded engine with no catalog. Query and Suggest
// always report no match; nothing errors.
func NewEmpty() *Engine {
	return New(catalog.New(nil), nil, DefaultOptions())
}

// Load reads the dataset at path and builds a ready engine. Callers at the
// boundary pair this with NewEmpty to degrade instead of crash:
//
//	engine, err := recommend.Load(path, opts)
//	if err != nil {
//		engine = recommend.NewEmpty()
//	}
func Load(path string, opts Options) (*Engine, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	space, err := vector.Build(cat)
	if err != nil {
		return nil, err
	}
	return New(cat, space, opts), nil
}

// Len returns the catalog size.
func (e *Engine) Len() int {
	return e.cat.Len()
}

// Ready reports whether the engine has a catalog and a built vector space.
func (e *Engine) Ready() bool {
	return e.space != nil && e.cat.Len() > 0
}

// Recommend ranks all other items by similarity to the item at index and
// returns up to topK titles (engine default when topK <= 0). The item itself
// is excluded; ties are broken by ascending catalog index.
func (e *Engine) Recommend(index, topK int) ([]string, error) {
	if e.space == nil || index < 0 || index >= e.space.Items() {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if topK <= 0 {
		topK = e.opts.TopK
	}

	row := e.space.Row(index)
	order := make([]int, 0, len(row)-1)
	for j := range row {
		if j != index {
			order = append(order, j)
		}
	}
	sort.Slice(order, func(a, b int) bool {
		if row[order[a]] != row[order[b]] {
			return row[order[a]] > row[order[b]]
		}
		return order[a] < order[b]
	})

	if len(order) > topK {
		order = order[:topK]
	}
	titles := make([]string, len(order))
	for k, j := range order {
		titles[k] = e.cat.Item(j).Title
	}
	return titles, nil
}

// Query resolves free text to the closest known title and returns its ranked
// recommendations. The second return is false on no match, a normal outcome.
func (e *Engine) Query(text string) (*Result, bool) {
	text = strings.TrimSpace(text)
	if text == "" || e.cat.Len() == 0 || e.space == nil {
		return nil, false
	}

	index, ok := e.lookup(text)
	if !ok {
		matches := fuzzy.Resolve(text, e.cat.Titles(), e.opts.ResolveLimit, e.opts.ResolveMinScore)
		if len(matches) == 0 {
			return nil, false
		}
		index = matches[0].Index
	}

	titles, err := e.Recommend(index, e.opts.TopK)
	if err != nil {
		// Resolved indices come from this catalog; reaching here is a bug.
		log.Errorf("Resolved index rejected by recommender: %v", err)
		return nil, false
	}
	return &Result{Match: e.cat.Item(index).Title, Titles: titles}, true
}

// Suggest returns up to SuggestLimit titles for a partial query, for
// incremental autocomplete. Empty input returns nil without scanning.
func (e *Engine) Suggest(partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" || e.cat.Len() == 0 {
		return nil
	}
	lower := strings.ToLower(partial)

	// Trie prefix hits first: cheap recall for titles the full scan may
	// push past its result limit. Both paths share the score cutoff.
	var matches []fuzzy.Match
	seen := make(map[int]bool)
	e.trie.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		i := item.(int)
		title := e.cat.Item(i).Title
		if score := fuzzy.Ratio(lower, title); score >= e.opts.SuggestMinScore {
			matches = append(matches, fuzzy.Match{Title: title, Index: i, Score: score})
			seen[i] = true
		}
		return nil
	})

	for _, m := range fuzzy.Resolve(lower, e.cat.Titles(), e.opts.SuggestLimit, e.opts.SuggestMinScore) {
		if !seen[m.Index] {
			matches = append(matches, m)
			seen[m.Index] = true
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	if len(matches) > e.opts.SuggestLimit {
		matches = matches[:e.opts.SuggestLimit]
	}
	titles := make([]string, len(matches))
	for k, m := range matches {
		titles[k] = m.Title
	}
	return titles
}

// lookup returns the catalog index for an exact case-insensitive title match.
func (e *Engine) lookup(text string) (int, bool) {
	item := e.trie.Get(patricia.Prefix(strings.ToLower(text)))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}
