/*
Package server exposes the suggestion engine over msgpack IPC.

The server reads binary msgpack messages from stdin and writes responses to
stdout, one message per request, processed synchronously. Hosts that embed
searchkit as a sidecar (editors, desktop shells) talk to it this way instead
of linking the library.

A suggest request and its response look like this in JSON notation:

	{"id": "req_001", "op": "suggest", "q": "blog", "l": 8}
	{"id": "req_001", "s": [{"id": "1", "text": "community blog tips", "kind": "query", "trending": true}], "c": 1, "t": 145}

Other ops: "record" appends a submitted query to the recent-search journal,
"recents" returns the journal head, "health" answers with a status message.
Unknown ops produce an error response with the request's id echoed back.
*/
package server

// Request is one incoming IPC message.
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Query string `msgpack:"q,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
	Text  string `msgpack:"text,omitempty"`
}

// SuggestionPayload is the wire form of one suggestion.
type SuggestionPayload struct {
	ID       string `msgpack:"id"`
	Text     string `msgpack:"text"`
	Kind     string `msgpack:"kind"`
	Category string `msgpack:"category,omitempty"`
	Views    int    `msgpack:"views,omitempty"`
	Trending bool   `msgpack:"trending,omitempty"`
	Author   string `msgpack:"author,omitempty"`
}

// SuggestResponse answers a suggest op.
type SuggestResponse struct {
	ID          string              `msgpack:"id"`
	Suggestions []SuggestionPayload `msgpack:"s"`
	Count       int                 `msgpack:"c"`
	TimeTaken   int64               `msgpack:"t"` // microseconds
}

// RecentsResponse answers a recents op.
type RecentsResponse struct {
	ID      string   `msgpack:"id"`
	Entries []string `msgpack:"entries"`
}

// StatusResponse answers record and health ops.
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"error"`
}
