package suggest

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/quillboard/searchkit/internal/utils"
)

// Catalog is a static, in-memory Source. A patricia trie over the lowercased
// entry texts supplies the prefix hits and bounds the substring pass, which
// only tests entries the trie did not match. Matches are returned in catalog
// order regardless of which path found them.
type Catalog struct {
	entries []Suggestion
	trie    *patricia.Trie
}

// NewCatalog indexes the given entries. The slice is kept as-is; callers
// must not mutate it afterwards.
func NewCatalog(entries []Suggestion) *Catalog {
	c := &Catalog{
		entries: entries,
		trie:    patricia.NewTrie(),
	}
	for i, e := range entries {
		key := patricia.Prefix(strings.ToLower(e.Text))
		if item := c.trie.Get(key); item != nil {
			c.trie.Set(key, append(item.([]int), i))
		} else {
			c.trie.Set(key, []int{i})
		}
	}
	return c
}

// Lookup returns entries whose text contains query case-insensitively, in
// catalog order, capped at limit. A limit <= 0 means no cap.
func (c *Catalog) Lookup(query string, limit int) []Suggestion {
	q := strings.ToLower(utils.CleanQuery(query))
	if q == "" {
		return nil
	}

	var prefix []int
	c.trie.VisitSubtree(patricia.Prefix(q), func(p patricia.Prefix, item patricia.Item) error {
		prefix = append(prefix, item.([]int)...)
		return nil
	})
	sort.Ints(prefix)

	// When the trie alone holds limit hits, nothing past the limit-th prefix
	// position can make the cut: the final list is the limit lowest matching
	// positions, and the trie already supplies that many at or below it. The
	// pass still has to cover everything before it, since a substring-only
	// match there outranks a later prefix hit.
	bound := len(c.entries)
	if limit > 0 && len(prefix) >= limit {
		bound = prefix[limit-1] + 1
	}

	matched := make([]bool, bound)
	for _, i := range prefix {
		if i >= bound {
			break
		}
		matched[i] = true
	}

	var out []Suggestion
	for i := 0; i < bound; i++ {
		if !matched[i] && !utils.ContainsFold(c.entries[i].Text, q) {
			continue
		}
		out = append(out, c.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns the indexed entries in catalog order.
func (c *Catalog) Entries() []Suggestion { return c.entries }

// DefaultCatalog mirrors the seed data the hosted platform ships while the
// real search backend is offline: trending queries, a few posts with view
// counts, authors and tags.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Suggestion{
		{ID: "1", Text: "community blog tips", Kind: KindQuery, Metadata: &Metadata{Trending: true}},
		{ID: "2", Text: "The Future of AI in Web Development", Kind: KindPost, Category: "Technology",
			Metadata: &Metadata{Views: 2340, Author: "Sarah Chen"}},
		{ID: "3", Text: "how to write engaging content", Kind: KindQuery},
		{ID: "4", Text: "Sarah Chen", Kind: KindAuthor, Metadata: &Metadata{Trending: true}},
		{ID: "5", Text: "best blogging platforms", Kind: KindQuery},
		{ID: "6", Text: "content creation strategies", Kind: KindQuery},
		{ID: "7", Text: "Marcus Rodriguez", Kind: KindAuthor},
		{ID: "8", Text: "Hidden Gems: Southeast Asia Travel", Kind: KindPost, Category: "Travel",
			Metadata: &Metadata{Views: 1890, Author: "Marcus Rodriguez"}},
		{ID: "9", Text: "growing your blog audience", Kind: KindQuery},
		{ID: "10", Text: "blog monetization", Kind: KindQuery},
		{ID: "11", Text: "SEO", Kind: KindTag, Metadata: &Metadata{Trending: true}},
		{ID: "12", Text: "photography for blog posts", Kind: KindQuery},
		{ID: "13", Text: "Dr. Emily Watson", Kind: KindAuthor},
		{ID: "14", Text: "mindfulness", Kind: KindTag},
		{ID: "15", Text: "Plant-Based Cooking for Beginners", Kind: KindPost, Category: "Food",
			Metadata: &Metadata{Views: 987, Author: "Chef Maria Santos"}},
	})
}
