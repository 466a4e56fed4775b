package onboarding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lykr/lykr_backend/models"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	assert.Empty(t, s.BusinessInfo.Name)
	assert.NotNil(t, s.Documents)
	assert.Empty(t, s.Documents)
	assert.Equal(t, []string{""}, s.Competitors)

	require.Len(t, s.VoiceInterview, 4)
	assert.Equal(t, models.QuestionCurrent, s.VoiceInterview[0].Status)
	for _, q := range s.VoiceInterview[1:] {
		assert.Equal(t, models.QuestionPending, q.Status)
	}
}

func TestMutationsArePure(t *testing.T) {
	original := DefaultState()

	_ = SetBusinessInfo(original, models.BusinessInfo{Name: "Acme"})
	_ = AddDocument(original, models.DocumentInfo{Name: "pitch.pdf", Size: 1024})
	_ = SetCompetitors(original, []string{"Globex"})
	_ = UpdateQuestionTranscript(original, 1, "answer")

	assert.Equal(t, DefaultState(), original)
}

func TestDocumentMutations(t *testing.T) {
	s := DefaultState()
	s = AddDocument(s, models.DocumentInfo{Name: "a.pdf", Size: 10})
	s = AddDocument(s, models.DocumentInfo{Name: "b.docx", Size: 20})
	require.Len(t, s.Documents, 2)

	s = RemoveDocument(s, 0)
	require.Len(t, s.Documents, 1)
	assert.Equal(t, "b.docx", s.Documents[0].Name)

	// out of range is a no-op
	assert.Equal(t, s, RemoveDocument(s, 5))
	assert.Equal(t, s, RemoveDocument(s, -1))
}

func TestUpdateQuestionTranscript(t *testing.T) {
	s := DefaultState()

	s = UpdateQuestionTranscript(s, 1, "نحل مشكلة التسويق")

	assert.Equal(t, models.QuestionCompleted, s.VoiceInterview[0].Status)
	assert.Equal(t, "نحل مشكلة التسويق", s.VoiceInterview[0].Transcript)
	assert.Equal(t, models.QuestionCurrent, s.VoiceInterview[1].Status)

	// unknown id leaves the document unchanged
	assert.Equal(t, s, UpdateQuestionTranscript(s, 99, "x"))
}

func TestExactlyOneCurrentUntilAllCompleted(t *testing.T) {
	s := DefaultState()

	countCurrent := func(s models.WizardState) int {
		n := 0
		for _, q := range s.VoiceInterview {
			if q.Status == models.QuestionCurrent {
				n++
			}
		}
		return n
	}

	for _, id := range []int{1, 2, 3} {
		s = UpdateQuestionTranscript(s, id, "answer")
		assert.Equal(t, 1, countCurrent(s), "after completing question %d", id)
	}

	s = UpdateQuestionTranscript(s, 4, "answer")
	assert.Equal(t, 0, countCurrent(s))
	for _, q := range s.VoiceInterview {
		assert.Equal(t, models.QuestionCompleted, q.Status)
	}
}

func TestCompletingOutOfOrderKeepsOneCurrent(t *testing.T) {
	s := DefaultState()

	// question 3 completed while question 1 is still current
	s = UpdateQuestionTranscript(s, 3, "answer")

	current := 0
	for _, q := range s.VoiceInterview {
		if q.Status == models.QuestionCurrent {
			current++
		}
	}
	assert.Equal(t, 1, current)
	assert.Equal(t, models.QuestionCurrent, s.VoiceInterview[0].Status)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := DefaultState()
	s = SetBusinessInfo(s, models.BusinessInfo{Name: "Acme"})
	s = SetWebsiteInfo(s, models.WebsiteInfo{URL: "https://acme.example", LinkedIn: "https://linkedin.com/company/acme"})
	s = AddDocument(s, models.DocumentInfo{Name: "deck.pdf", Size: 2048})
	s = SetCompetitors(s, []string{"Globex", "Initech"})
	s = UpdateQuestionTranscript(s, 1, "الإجابة الأولى")

	payload, err := json.Marshal(s)
	require.NoError(t, err)

	var restored models.WizardState
	require.NoError(t, json.Unmarshal(payload, &restored))
	assert.Equal(t, s, restored)
}

func TestReset(t *testing.T) {
	s := DefaultState()
	s = SetBusinessInfo(s, models.BusinessInfo{Name: "Acme"})
	s = UpdateQuestionTranscript(s, 1, "answer")

	assert.Equal(t, DefaultState(), Reset())
}
