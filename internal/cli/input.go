// Package cli handles cmd line input and queries for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/reelserve/internal/logger"
	"github.com/bastiangx/reelserve/internal/utils"
	"github.com/bastiangx/reelserve/pkg/recommend"
	"github.com/charmbracelet/log"
)

// InputHandler processes user input from stdin, resolving each line to a
// catalog title and printing its ranked recommendations. With suggestPreview
// enabled it also shows what the autocomplete path would return for the same
// text, which is the closest a terminal gets to per-keystroke suggestions.
type InputHandler struct {
	engine         *recommend.Engine
	out            *log.Logger
	maxQueryLen    int
	suggestPreview bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *recommend.Engine, maxQueryLen int, suggestPreview bool) *InputHandler {
	return &InputHandler{
		engine:         engine,
		out:            logger.NewWithConfig("cli", log.GetLevel(), false, false, log.TextFormatter),
		maxQueryLen:    maxQueryLen,
		suggestPreview: suggestPreview,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.out.Printf("ReelServe CLI -- %s titles loaded", utils.FormatWithCommas(h.engine.Len()))
	reader := bufio.NewReader(os.Stdin)
	h.out.Print("type a movie title and press Enter to see recommendations (Ctrl+C to exit):")

	for {
		h.out.Print("> ")
		query, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		h.handleInput(query)
	}
}

// handleInput processes a single query line: validates it, optionally shows
// the suggestion preview, then resolves and prints recommendations.
func (h *InputHandler) handleInput(query string) {
	if len(query) > h.maxQueryLen {
		log.Errorf("Query too long: %s", query)
		return
	}

	if !utils.IsValidQuery(query) {
		log.Warnf("No results found for: '%s'", query)
		return
	}

	if h.suggestPreview {
		suggestions := h.engine.Suggest(query)
		if len(suggestions) > 0 {
			h.out.Printf("Did you mean: %s", strings.Join(suggestions, " | "))
		}
	}

	start := time.Now()
	result, ok := h.engine.Query(query)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if !ok {
		log.Warnf("No recommendations found for: '%s'", query)
		return
	}

	h.out.Printf("Recommendations for '%s':", result.Match)
	for i, title := range result.Titles {
		clTitle := fmt.Sprintf("\033[38;5;75m%s\033[0m", title)
		h.out.Printf("%2d. %s", i+1, clTitle)
	}
}
