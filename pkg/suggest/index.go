package suggest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/internal/logger"
	"github.com/quillboard/searchkit/internal/utils"
)

// IndexSource is a Source backed by an in-memory bleve index, for hosts
// whose catalogs are too large to scan per keystroke. Hits are re-ordered by
// catalog position so the observable ordering matches Catalog exactly;
// bleve's own relevance scores are ignored on purpose.
type IndexSource struct {
	idx     bleve.Index
	entries []Suggestion
	log     *log.Logger
}

// NewIndexSource indexes the given entries into a memory-only index.
func NewIndexSource(entries []Suggestion) (*IndexSource, error) {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = keyword.Name
	textField.Store = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("text", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	batch := idx.NewBatch()
	for i, e := range entries {
		if err := batch.Index(strconv.Itoa(i), map[string]string{
			"text": strings.ToLower(e.Text),
		}); err != nil {
			return nil, fmt.Errorf("index entry %d: %w", i, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &IndexSource{
		idx:     idx,
		entries: entries,
		log:     logger.New("index"),
	}, nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// Lookup returns entries whose text contains query case-insensitively, in
// catalog order, capped at limit. Query failures log and return nothing:
// a suggestion pass must never surface an error to the typing user.
func (s *IndexSource) Lookup(query string, limit int) []Suggestion {
	q := strings.ToLower(utils.CleanQuery(query))
	if q == "" {
		return nil
	}

	wq := bleve.NewWildcardQuery("*" + wildcardEscaper.Replace(q) + "*")
	wq.SetField("text")
	req := bleve.NewSearchRequest(wq)
	req.Size = len(s.entries)

	res, err := s.idx.Search(req)
	if err != nil {
		s.log.Errorf("index lookup %q: %v", q, err)
		return nil
	}

	positions := make([]int, 0, len(res.Hits))
	for _, hit := range res.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil || pos < 0 || pos >= len(s.entries) {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	if len(positions) == 0 {
		return nil
	}
	if limit > 0 && len(positions) > limit {
		positions = positions[:limit]
	}
	out := make([]Suggestion, 0, len(positions))
	for _, pos := range positions {
		out = append(out, s.entries[pos])
	}
	return out
}

// Close releases the index.
func (s *IndexSource) Close() error {
	return s.idx.Close()
}
