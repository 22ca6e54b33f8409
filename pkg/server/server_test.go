package server

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quillboard/searchkit/internal/storage"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/suggest"
)

// runRequests feeds encoded requests through a server and returns a decoder
// over everything it wrote back.
func runRequests(t *testing.T, reqs ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		require.NoError(t, enc.Encode(r))
	}

	jr := journal.New(storage.NewMemStore())
	jr.Load()
	engine := suggest.NewEngine(suggest.DefaultCatalog(), jr, 0)

	var out bytes.Buffer
	srv := NewServer(engine, jr, &in, &out)
	require.NoError(t, srv.Start(), "EOF after the last request ends the loop cleanly")

	return msgpack.NewDecoder(&out)
}

func readReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
}

func TestServerSuggest(t *testing.T) {
	dec := runRequests(t, Request{ID: "req_001", Op: "suggest", Query: "blog"})
	readReady(t, dec)

	var resp SuggestResponse
	require.NoError(t, dec.Decode(&resp))

	assert.Equal(t, "req_001", resp.ID)
	assert.Equal(t, len(resp.Suggestions), resp.Count)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "community blog tips", resp.Suggestions[0].Text)
	assert.Equal(t, "query", resp.Suggestions[0].Kind)
	assert.True(t, resp.Suggestions[0].Trending)
}

func TestServerSuggestRespectsLimit(t *testing.T) {
	dec := runRequests(t, Request{ID: "1", Op: "suggest", Query: "blog", Limit: 2})
	readReady(t, dec)

	var resp SuggestResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Len(t, resp.Suggestions, 2)
}

func TestServerSuggestRejectsMissingQuery(t *testing.T) {
	dec := runRequests(t, Request{ID: "1", Op: "suggest"})
	readReady(t, dec)

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "1", resp.ID)
	assert.Contains(t, resp.Error, "missing 'q'")
}

func TestServerRecordAndRecents(t *testing.T) {
	dec := runRequests(t,
		Request{ID: "1", Op: "record", Text: "react hooks"},
		Request{ID: "2", Op: "record", Text: "go generics"},
		Request{ID: "3", Op: "recents"},
	)
	readReady(t, dec)

	var first, second StatusResponse
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "ok", first.Status)
	assert.Equal(t, "ok", second.Status)

	var recents RecentsResponse
	require.NoError(t, dec.Decode(&recents))
	assert.Equal(t, "3", recents.ID)
	assert.Equal(t, []string{"go generics", "react hooks"}, recents.Entries)
}

func TestServerRecordRejectsEmptyText(t *testing.T) {
	dec := runRequests(t, Request{ID: "1", Op: "record", Text: "   "})
	readReady(t, dec)

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Contains(t, resp.Error, "empty 'text'")
}

func TestServerUnknownOp(t *testing.T) {
	dec := runRequests(t, Request{ID: "1", Op: "explode"})
	readReady(t, dec)

	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "unknown op: explode", resp.Error)
}

func TestServerHealth(t *testing.T) {
	dec := runRequests(t, Request{ID: "hb", Op: "health"})
	readReady(t, dec)

	var resp StatusResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "hb", resp.ID)
	assert.Equal(t, "ok", resp.Status)

	// Nothing further was written.
	var extra StatusResponse
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)
}
