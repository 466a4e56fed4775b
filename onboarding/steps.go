// onboarding/steps.go
package onboarding

import (
	"strings"

	"github.com/lykr/lykr_backend/models"
)

// Step is one page of the onboarding wizard. Each step owns its completion
// criterion; the sequencer stays generic over steps.
type Step struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Route    string `json:"route"`
	Optional bool   `json:"optional"`

	complete func(models.WizardState) bool
}

// Complete reports whether the wizard document satisfies this step's own
// forward-navigation guard.
func (st Step) Complete(s models.WizardState) bool {
	if st.complete == nil {
		return true
	}
	return st.complete(s)
}

// Steps is the fixed wizard sequence.
var Steps = []Step{
	{
		Key:   "business-info",
		Label: "معلومات العمل",
		Route: "/onboarding/business-info",
		complete: func(s models.WizardState) bool {
			return strings.TrimSpace(s.BusinessInfo.Name) != ""
		},
	},
	{
		Key:   "website",
		Label: "موقعك الإلكتروني",
		Route: "/onboarding/website",
		complete: func(s models.WizardState) bool {
			return strings.TrimSpace(s.Website.URL) != "" && strings.TrimSpace(s.Website.LinkedIn) != ""
		},
	},
	{
		Key:      "documents",
		Label:    "المستندات",
		Route:    "/onboarding/documents",
		Optional: true,
		complete: func(s models.WizardState) bool {
			return len(s.Documents) > 0
		},
	},
	{
		Key:   "competitors",
		Label: "المنافسون",
		Route: "/onboarding/competitors",
		complete: func(s models.WizardState) bool {
			for _, c := range s.Competitors {
				if strings.TrimSpace(c) != "" {
					return true
				}
			}
			return false
		},
	},
	{
		Key:      "voice-interview",
		Label:    "المقابلة الصوتية",
		Route:    "/onboarding/voice-interview",
		Optional: true,
		complete: func(s models.WizardState) bool {
			if len(s.VoiceInterview) == 0 {
				return false
			}
			for _, q := range s.VoiceInterview {
				if q.Status != models.QuestionCompleted {
					return false
				}
			}
			return true
		},
	},
	{
		Key:   "confirmation",
		Label: "التأكيد",
		Route: "/onboarding/confirmation",
	},
}

// IndexOf returns the position of a step key, or -1 if unknown.
func IndexOf(key string) int {
	for i, st := range Steps {
		if st.Key == key {
			return i
		}
	}
	return -1
}

// Progress returns the progress-bar fraction for a step: (index+1)/total.
func Progress(key string) float64 {
	idx := IndexOf(key)
	if idx < 0 {
		return 0
	}
	return float64(idx+1) / float64(len(Steps))
}

// Next returns the step after key, if any.
func Next(key string) (Step, bool) {
	idx := IndexOf(key)
	if idx < 0 || idx+1 >= len(Steps) {
		return Step{}, false
	}
	return Steps[idx+1], true
}

// Prev returns the step before key, if any.
func Prev(key string) (Step, bool) {
	idx := IndexOf(key)
	if idx <= 0 {
		return Step{}, false
	}
	return Steps[idx-1], true
}
