package server

import (
	"bytes"
	"testing"

	"github.com/bastiangx/reelserve/pkg/catalog"
	"github.com/bastiangx/reelserve/pkg/recommend"
	"github.com/bastiangx/reelserve/pkg/vector"
	"github.com/vmihailenco/msgpack/v5"
)

func testEngine(t *testing.T) *recommend.Engine {
	t.Helper()
	cat := catalog.New([]catalog.Item{
		{Title: "Avatar", Genres: "Action Adventure"},
		{Title: "Avatar 2", Genres: "Action Adventure"},
		{Title: "Romance Story", Genres: "Romance"},
	})
	space, err := vector.Build(cat)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return recommend.New(cat, space, recommend.DefaultOptions())
}

// runServer feeds encoded requests through a server and decodes every
// response after the ready status message.
func runServer(t *testing.T, requests []Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewServerWithIO(testEngine(t), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("Expected ready status first, got %+v, %v", ready, err)
	}
	return dec
}

func TestServerRecommend(t *testing.T) {
	dec := runServer(t, []Request{{ID: "r1", Command: "recommend", Text: "avtaar"}})

	var resp RecommendResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "r1" || resp.Match != "Avatar" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Count == 0 || resp.Titles[0] != "Avatar 2" {
		t.Errorf("Expected 'Avatar 2' as top recommendation: %+v", resp)
	}
}

func TestServerRecommendNoMatch(t *testing.T) {
	dec := runServer(t, []Request{{ID: "r2", Command: "recommend", Text: "zzzzzzzzzzzzzzzz"}})

	var resp RecommendResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 || resp.Match != "" {
		t.Errorf("Expected empty no-match response, got %+v", resp)
	}
}

func TestServerSuggest(t *testing.T) {
	dec := runServer(t, []Request{{ID: "s1", Command: "suggest", Text: "av"}})

	var resp SuggestResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count < 2 || resp.Titles[0] != "Avatar" {
		t.Errorf("Expected Avatar suggestions for 'av', got %+v", resp)
	}
}

func TestServerSuggestLimit(t *testing.T) {
	dec := runServer(t, []Request{{ID: "s2", Command: "suggest", Text: "av", Limit: 1}})

	var resp SuggestResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || len(resp.Titles) != 1 || resp.Titles[0] != "Avatar" {
		t.Errorf("Expected single suggestion for limit 1, got %+v", resp)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	dec := runServer(t, []Request{{ID: "x1", Command: "explode"}})

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != 400 || resp.ID != "x1" {
		t.Errorf("Expected 400 error response, got %+v", resp)
	}
}

func TestServerMissingQuery(t *testing.T) {
	dec := runServer(t, []Request{{ID: "m1", Command: "recommend"}})

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Code != 400 {
		t.Errorf("Expected 400 for missing query, got %+v", resp)
	}
}
