package facets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsItsOwnInverse(t *testing.T) {
	s := NewState()
	before := s.Snapshot()

	s.ToggleCategory("technology")
	assert.True(t, s.HasCategory("technology"))
	s.ToggleCategory("technology")
	assert.False(t, s.HasCategory("technology"))

	assert.Equal(t, before, s.Snapshot())
}

func TestActiveCountMatchesDefinition(t *testing.T) {
	s := NewState()
	assert.Equal(t, 0, s.ActiveCount())

	s.ToggleCategory("travel")
	s.ToggleCategory("food")
	s.ToggleAuthor("Sarah Chen")
	s.ToggleTag("SEO")
	require.NoError(t, s.SetDateBucket(DateWeek))
	require.NoError(t, s.SetPopularityBucket(PopularityLikes))

	// 2 categories + 1 author + 1 tag + date + popularity
	assert.Equal(t, 6, s.ActiveCount())

	// Toggling one off and resetting a bucket drops the count accordingly.
	s.ToggleCategory("food")
	require.NoError(t, s.SetDateBucket(DateAny))
	assert.Equal(t, 4, s.ActiveCount())
}

func TestBucketSettersRejectUnknownValues(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetDateBucket(DateMonth))

	err := s.SetDateBucket(DateBucket("decade"))
	assert.ErrorIs(t, err, ErrInvalidFacetValue)
	assert.Equal(t, DateMonth, s.DateBucket(), "state must be unchanged after a rejected set")

	err = s.SetPopularityBucket(PopularityBucket("shares"))
	assert.ErrorIs(t, err, ErrInvalidFacetValue)
	assert.Equal(t, PopularityAny, s.PopularityBucket())
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewState()
	s.ToggleCategory("art")
	s.ToggleTag("AI")
	require.NoError(t, s.SetPopularityBucket(PopularityViews))

	s.Reset()

	assert.Equal(t, 0, s.ActiveCount())
	assert.Equal(t, DefaultSnapshot(), s.Snapshot())
}

func TestSnapshotIsSortedAndDetached(t *testing.T) {
	s := NewState()
	s.ToggleCategory("travel")
	s.ToggleCategory("art")
	s.ToggleCategory("music")

	snap := s.Snapshot()
	assert.Equal(t, []string{"art", "music", "travel"}, snap.Categories)

	// Mutating the state afterwards must not change the snapshot.
	s.ToggleCategory("food")
	assert.Equal(t, []string{"art", "music", "travel"}, snap.Categories)
}

func TestOptionValuesAreValidBucketMembers(t *testing.T) {
	s := NewState()
	for _, opt := range DateOptions() {
		assert.NoError(t, s.SetDateBucket(DateBucket(opt.Value)), "option %q", opt.Value)
	}
	for _, opt := range PopularityOptions() {
		assert.NoError(t, s.SetPopularityBucket(PopularityBucket(opt.Value)), "option %q", opt.Value)
	}
}
