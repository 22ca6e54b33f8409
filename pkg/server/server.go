package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quillboard/searchkit/internal/logger"
	"github.com/quillboard/searchkit/pkg/journal"
	"github.com/quillboard/searchkit/pkg/suggest"
)

const maxQueryLen = 120

// Server handles the IPC for search suggestions.
type Server struct {
	engine  *suggest.Engine
	journal *journal.Journal
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a suggestion server over the given transport, usually
// stdin/stdout.
func NewServer(engine *suggest.Engine, jr *journal.Journal, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  engine,
		journal: jr,
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
		log:     logger.New("ipc"),
	}
}

// Start begins the request loop. Returns nil on client EOF.
func (s *Server) Start() error {
	s.log.Debug("starting IPC loop")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "suggest":
		s.handleSuggest(req)
	case "record":
		s.handleRecord(req)
	case "recents":
		s.handleRecents(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op))
	}
}

func (s *Server) handleSuggest(req Request) {
	if req.Query == "" {
		s.sendError(req.ID, "missing 'q' parameter")
		return
	}
	if len(req.Query) > maxQueryLen {
		s.sendError(req.ID, fmt.Sprintf("query exceeds maximum length of %d", maxQueryLen))
		return
	}

	start := time.Now()
	suggestions := s.engine.Lookup(req.Query)
	elapsed := time.Since(start)

	limit := req.Limit
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	payload := make([]SuggestionPayload, 0, len(suggestions))
	for _, sg := range suggestions {
		p := SuggestionPayload{
			ID:       sg.ID,
			Text:     sg.Text,
			Kind:     string(sg.Kind),
			Category: sg.Category,
		}
		if sg.Metadata != nil {
			p.Views = sg.Metadata.Views
			p.Trending = sg.Metadata.Trending
			p.Author = sg.Metadata.Author
		}
		payload = append(payload, p)
	}

	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: payload,
		Count:       len(payload),
		TimeTaken:   elapsed.Microseconds(),
	})
}

func (s *Server) handleRecord(req Request) {
	if s.journal == nil {
		s.sendError(req.ID, "no journal configured")
		return
	}
	if !s.journal.Record(req.Text) {
		s.sendError(req.ID, "missing or empty 'text' parameter")
		return
	}
	s.send(StatusResponse{ID: req.ID, Status: "ok"})
}

func (s *Server) handleRecents(req Request) {
	var entries []string
	if s.journal != nil {
		entries = s.journal.Entries()
	}
	s.send(RecentsResponse{ID: req.ID, Entries: entries})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string) {
	s.send(ErrorResponse{ID: id, Error: message})
}
