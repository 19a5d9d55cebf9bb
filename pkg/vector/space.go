/*
Package vector builds the TF-IDF feature rows and the full cosine similarity
matrix for a catalog.

The build happens once at startup. Rows of the similarity matrix are
independent, so they are computed in parallel and the result is only returned
after every worker has finished; the matrix is read-only afterwards. Term ids
are assigned in first-seen document order and sparse rows are kept sorted by
term id, so repeated builds of the same catalog produce identical output.
*/
package vector

import (
	"math"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bastiangx/reelserve/pkg/catalog"
	"github.com/charmbracelet/log"
)

var tokenPattern = regexp.MustCompile(`[^a-z0-9]+`)

// BuildError reports a catalog that cannot be vectorized.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string {
	return "vector: " + e.Reason
}

// entry is one non-zero weight in a sparse feature row, sorted by term id.
type entry struct {
	term   int
	weight float64
}

// Space holds the feature matrix and the precomputed item similarity matrix.
// It is immutable once built.
type Space struct {
	vocab map[string]int
	rows  [][]entry
	norms []float64
	sim   [][]float64
}

// Build vectorizes every catalog document and computes the full item x item
// cosine similarity matrix. Fails with *BuildError when the catalog is empty
// or carries no attribute text at all.
func Build(c *catalog.Catalog) (*Space, error) {
	if c == nil || c.Len() == 0 {
		return nil, &BuildError{Reason: "empty catalog, nothing to vectorize"}
	}

	docs := c.Documents()
	tokens := make([][]string, len(docs))
	vocab := make(map[string]int)
	var docFreq []int

	for i, doc := range docs {
		tokens[i] = Tokenize(doc)
		if len(tokens[i]) == 0 {
			continue
		}
		seen := make(map[int]bool, len(tokens[i]))
		for _, tok := range tokens[i] {
			id, ok := vocab[tok]
			if !ok {
				id = len(vocab)
				vocab[tok] = id
				docFreq = append(docFreq, 0)
			}
			if !seen[id] {
				seen[id] = true
				docFreq[id]++
			}
		}
	}

	if len(vocab) == 0 {
		return nil, &BuildError{Reason: "catalog has no attribute text to vectorize"}
	}

	n := len(docs)
	rows := make([][]entry, n)
	norms := make([]float64, n)

	for i, toks := range tokens {
		if len(toks) == 0 {
			continue
		}
		counts := make(map[int]int, len(toks))
		for _, tok := range toks {
			counts[vocab[tok]]++
		}

		row := make([]entry, 0, len(counts))
		for id := range counts {
			row = append(row, entry{term: id})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].term < row[b].term })

		// tf = count/docLen, smoothed idf = log((1+N)/(1+df)) + 1, so a term
		// present in every document still carries weight. Accumulation order
		// is fixed by the term-id sort above.
		var sumSquares float64
		for k := range row {
			tf := float64(counts[row[k].term]) / float64(len(toks))
			idf := math.Log(float64(1+n)/float64(1+docFreq[row[k].term])) + 1
			row[k].weight = tf * idf
			sumSquares += row[k].weight * row[k].weight
		}
		rows[i] = row
		norms[i] = math.Sqrt(sumSquares)
	}

	space := &Space{
		vocab: vocab,
		rows:  rows,
		norms: norms,
		sim:   similarityMatrix(rows, norms),
	}

	log.Debugf("Built vector space: %d items, %d terms", n, len(vocab))
	return space, nil
}

// similarityMatrix fills the dense N x N matrix. Each worker owns whole rows
// of the upper triangle and mirrors into the lower one; no cell is written
// twice, so no locking is needed and the wait fully joins before publish.
func similarityMatrix(rows [][]entry, norms []float64) [][]float64 {
	n := len(rows)
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}

	rowCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rowCh {
				for j := i; j < n; j++ {
					s := cosine(rows[i], rows[j], norms[i], norms[j])
					sim[i][j] = s
					sim[j][i] = s
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rowCh <- i
	}
	close(rowCh)
	wg.Wait()

	return sim
}

// cosine computes dot(a,b)/(|a||b|) over sorted sparse rows.
// Zero-norm rows yield 0, including against themselves.
func cosine(a, b []entry, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			dot += a[i].weight * b[j].weight
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	return dot / (normA * normB)
}

// Tokenize lowercases text and splits it on non-alphanumeric runs.
// Must stay consistent across all documents; weights depend on it.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	parts := tokenPattern.Split(text, -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Items returns the number of catalog items in the space.
func (s *Space) Items() int {
	return len(s.rows)
}

// VocabSize returns the number of distinct terms across all documents.
func (s *Space) VocabSize() int {
	return len(s.vocab)
}

// Similarity returns the cosine similarity between items i and j.
func (s *Space) Similarity(i, j int) float64 {
	return s.sim[i][j]
}

// Row returns item i's similarity row. The slice is shared and read-only.
func (s *Space) Row(i int) []float64 {
	return s.sim[i]
}

// Weight returns the TF-IDF weight of term in item i's row, 0 if absent.
func (s *Space) Weight(i int, term string) float64 {
	id, ok := s.vocab[strings.ToLower(term)]
	if !ok {
		return 0
	}
	row := s.rows[i]
	k := sort.Search(len(row), func(p int) bool { return row[p].term >= id })
	if k < len(row) && row[k].term == id {
		return row[k].weight
	}
	return 0
}
