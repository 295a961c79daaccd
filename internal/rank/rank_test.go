package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vita/internal/config"
)

func testTriggers() []config.Trigger {
	return []config.Trigger{
		{Tool: "get_profile_overview", Keywords: []string{"overview", "about", "background", "who is", "introduction"}},
		{Tool: "get_experience", Keywords: []string{"experience", "work", "job", "career", "professional", "employment"}},
		{Tool: "get_publications", Keywords: []string{"publication", "paper", "research", "conference", "academic"}},
		{Tool: "get_career_timeline", Keywords: []string{"timeline", "history", "when", "career path", "progression"}},
		{Tool: "get_social_links", Keywords: []string{"social", "linkedin", "instagram", "facebook", "youtube", "contact"}},
	}
}

func toolNames(sels []Selection) []string {
	names := make([]string, len(sels))
	for i, s := range sels {
		names[i] = s.Tool
	}
	return names
}

func TestSelectNeverEmptyAndBounded(t *testing.T) {
	r := New(testTriggers())

	queries := []string{
		"",
		"hello there",
		"tell me about his work experience and research and timeline and linkedin",
		"find search look for everything",
		"who is this person",
	}
	for _, q := range queries {
		sels := r.Select(q)
		assert.GreaterOrEqual(t, len(sels), 1, "query %q", q)
		assert.LessOrEqual(t, len(sels), 3, "query %q", q)
	}
}

func TestSelectDefaultPair(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("hmm")
	assert.Equal(t, []string{"get_profile_overview", "get_experience"}, toolNames(sels))
}

func TestSelectKeywordMatchesInTableOrder(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("his work history and social profiles and conference papers")
	// Four rows match; the cap keeps the first three in table order.
	assert.Equal(t, []string{"get_experience", "get_publications", "get_career_timeline"}, toolNames(sels))
}

func TestSelectResearchPapers(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("Tell me about his research papers")
	assert.Contains(t, toolNames(sels), "get_publications")
}

func TestSelectSearchIntentIsFirst(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("find information about internships")
	require.NotEmpty(t, sels)
	assert.Equal(t, "search_profile_content", sels[0].Tool)
	assert.Equal(t, "information about internships", sels[0].Args["query"])
}

func TestSelectSearchStripsAllIntentKeywords(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("search for awards")
	require.NotEmpty(t, sels)
	assert.Equal(t, "search_profile_content", sels[0].Tool)
	assert.Equal(t, "awards", sels[0].Args["query"])
}

func TestSelectSearchSkippedWhenResidualEmpty(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("find")
	assert.Equal(t, []string{"get_profile_overview", "get_experience"}, toolNames(sels))
}

func TestSelectSearchCapStillHolds(t *testing.T) {
	r := New(testTriggers())

	sels := r.Select("find his work research timeline details")
	require.Len(t, sels, 3)
	assert.Equal(t, "search_profile_content", sels[0].Tool)
}
