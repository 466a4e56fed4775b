package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lykr/lykr_backend/models"
)

func TestBuildDynamicVariablesEmptyState(t *testing.T) {
	vars := BuildDynamicVariables(models.WizardState{})

	assert.Equal(t, unspecified, vars["business_name"])
	assert.Equal(t, unspecified, vars["website_url"])
	assert.Equal(t, unspecified, vars["social_links"])
	assert.Equal(t, unspecified, vars["competitors"])
	assert.Equal(t, unspecified, vars["interview_answers"])
}

func TestBuildDynamicVariablesFilledState(t *testing.T) {
	state := models.WizardState{
		BusinessInfo: models.BusinessInfo{Name: "Acme"},
		Website: models.WebsiteInfo{
			URL:      "https://acme.example",
			LinkedIn: "https://linkedin.com/company/acme",
			Twitter:  "https://x.com/acme",
		},
		Competitors: []string{"Globex", "", "Initech"},
		VoiceInterview: []models.VoiceInterviewQuestion{
			{ID: 1, Text: "سؤال", Status: models.QuestionCompleted, Transcript: "جواب"},
			{ID: 2, Text: "آخر", Status: models.QuestionCurrent},
		},
	}

	vars := BuildDynamicVariables(state)

	assert.Equal(t, "Acme", vars["business_name"])
	assert.Equal(t, "https://acme.example", vars["website_url"])
	assert.Equal(t, "https://linkedin.com/company/acme, https://x.com/acme", vars["social_links"])
	assert.Equal(t, "Globex, Initech", vars["competitors"])
	assert.Equal(t, "سؤال: جواب", vars["interview_answers"])
}

func TestBuildDynamicVariablesSkipsBlankAnswers(t *testing.T) {
	state := models.WizardState{
		Competitors: []string{"  ", ""},
		VoiceInterview: []models.VoiceInterviewQuestion{
			{ID: 1, Text: "سؤال", Status: models.QuestionCompleted, Transcript: "   "},
		},
	}

	vars := BuildDynamicVariables(state)
	assert.Equal(t, unspecified, vars["competitors"])
	assert.Equal(t, unspecified, vars["interview_answers"])
}
