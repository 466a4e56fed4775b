package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lykr/lykr_backend/models"
)

func TestStepOrder(t *testing.T) {
	keys := make([]string, 0, len(Steps))
	for _, st := range Steps {
		keys = append(keys, st.Key)
	}
	assert.Equal(t, []string{
		"business-info",
		"website",
		"documents",
		"competitors",
		"voice-interview",
		"confirmation",
	}, keys)
}

func TestStepCompletion(t *testing.T) {
	s := DefaultState()

	byKey := func(key string) Step {
		idx := IndexOf(key)
		require.GreaterOrEqual(t, idx, 0, key)
		return Steps[idx]
	}

	assert.False(t, byKey("business-info").Complete(s))
	s = SetBusinessInfo(s, models.BusinessInfo{Name: "Acme"})
	assert.True(t, byKey("business-info").Complete(s))

	assert.False(t, byKey("website").Complete(s))
	s = SetWebsiteInfo(s, models.WebsiteInfo{URL: "https://acme.example"})
	assert.False(t, byKey("website").Complete(s), "linkedin is required too")
	s = SetWebsiteInfo(s, models.WebsiteInfo{URL: "https://acme.example", LinkedIn: "https://linkedin.com/company/acme"})
	assert.True(t, byKey("website").Complete(s))

	assert.False(t, byKey("documents").Complete(s))
	assert.True(t, byKey("documents").Optional)
	s = AddDocument(s, models.DocumentInfo{Name: "deck.pdf", Size: 100})
	assert.True(t, byKey("documents").Complete(s))

	// the seeded blank entry does not count as a competitor
	assert.False(t, byKey("competitors").Complete(s))
	s = SetCompetitors(s, []string{"", "  "})
	assert.False(t, byKey("competitors").Complete(s))
	s = SetCompetitors(s, []string{"Globex"})
	assert.True(t, byKey("competitors").Complete(s))

	assert.False(t, byKey("voice-interview").Complete(s))
	assert.True(t, byKey("voice-interview").Optional)
	for id := 1; id <= 4; id++ {
		s = UpdateQuestionTranscript(s, id, "answer")
	}
	assert.True(t, byKey("voice-interview").Complete(s))

	assert.True(t, byKey("confirmation").Complete(s))
}

func TestProgress(t *testing.T) {
	assert.InDelta(t, 1.0/6.0, Progress("business-info"), 1e-9)
	assert.InDelta(t, 1.0, Progress("confirmation"), 1e-9)
	assert.Zero(t, Progress("no-such-step"))
}

func TestNextPrev(t *testing.T) {
	next, ok := Next("business-info")
	require.True(t, ok)
	assert.Equal(t, "website", next.Key)

	_, ok = Next("confirmation")
	assert.False(t, ok)

	prev, ok := Prev("website")
	require.True(t, ok)
	assert.Equal(t, "business-info", prev.Key)

	_, ok = Prev("business-info")
	assert.False(t, ok)

	_, ok = Next("no-such-step")
	assert.False(t, ok)
}
