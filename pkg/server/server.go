package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/reelserve/pkg/recommend"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const maxQueryLen = 120

// Server handles the IPC for title queries and suggestions.
type Server struct {
	engine *recommend.Engine
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// NewServer creates a recommendation server using stdin/stdout for IPC.
func NewServer(engine *recommend.Engine) *Server {
	return &Server{
		engine: engine,
		dec:    msgpack.NewDecoder(os.Stdin),
		enc:    msgpack.NewEncoder(os.Stdout),
	}
}

// NewServerWithIO creates a server over custom streams, used in tests.
func NewServerWithIO(engine *recommend.Engine, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine: engine,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. Returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready", Items: s.engine.Len()})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "suggest":
		s.handleSuggest(request)
	case "recommend":
		s.handleRecommend(request)
	case "health":
		s.sendResponse(StatusResponse{ID: request.ID, Status: "ok", Items: s.engine.Len()})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

// handleSuggest serves autocomplete candidates for partial input.
// Empty text is a valid request and yields an empty suggestion list.
func (s *Server) handleSuggest(request Request) {
	if len(request.Text) > maxQueryLen {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxQueryLen), 400)
		return
	}

	start := time.Now()
	titles := s.engine.Suggest(request.Text)
	elapsed := time.Since(start)

	if request.Limit > 0 && len(titles) > request.Limit {
		titles = titles[:request.Limit]
	}

	s.sendResponse(SuggestResponse{
		ID:        request.ID,
		Titles:    titles,
		Count:     len(titles),
		TimeTaken: elapsed.Milliseconds(),
	})
}

// handleRecommend resolves a full query and returns ranked recommendations.
func (s *Server) handleRecommend(request Request) {
	if request.Text == "" {
		s.sendError(request.ID, "Missing 'q' parameter", 400)
		log.Debug("Query is empty in request")
		return
	}
	if len(request.Text) > maxQueryLen {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxQueryLen), 400)
		return
	}

	start := time.Now()
	result, ok := s.engine.Query(request.Text)
	elapsed := time.Since(start)

	response := RecommendResponse{
		ID:        request.ID,
		TimeTaken: elapsed.Milliseconds(),
	}
	if ok {
		titles := result.Titles
		if request.Limit > 0 && len(titles) > request.Limit {
			titles = titles[:request.Limit]
		}
		response.Match = result.Match
		response.Titles = titles
		response.Count = len(titles)
	}
	s.sendResponse(response)
}

// sendResponse encodes one response message to the client.
func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
