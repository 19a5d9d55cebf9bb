/*
Package server implements msgpack IPC for the recommendation engine.

The server is the boundary a presentation shell talks to: it reads binary
msgpack messages from stdin and writes responses to stdout, one message per
request, processed synchronously with timing info included.

# IPC

Each request carries an ID, a command, and the query text:

	{"id": "req_001", "cmd": "suggest", "q": "av"}
	{"id": "req_002", "cmd": "recommend", "q": "avtaar"}

Suggest responds with autocomplete candidates for partial input and is meant
to be called on every text change. Recommend resolves the full query to the
closest known title and returns the ranked related titles; a response with
count 0 and no match field means no title cleared the resolution cutoff,
which is an ordinary result, not an error.

Malformed messages and unknown commands produce structured error responses;
the server itself never terminates on a bad request.
*/
package server

// Request is one incoming IPC message.
type Request struct {
	ID      string `msgpack:"id"`
	Command string `msgpack:"cmd"`
	Text    string `msgpack:"q"`
	Limit   int    `msgpack:"l,omitempty"`
}

// SuggestResponse carries autocomplete candidates for a partial query.
type SuggestResponse struct {
	ID        string   `msgpack:"id"`
	Titles    []string `msgpack:"s"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// RecommendResponse carries the resolved title and its ranked recommendations.
type RecommendResponse struct {
	ID        string   `msgpack:"id"`
	Match     string   `msgpack:"m,omitempty"`
	Titles    []string `msgpack:"s"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse reports server state changes such as startup.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
	Items  int    `msgpack:"items,omitempty"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
