// onboarding/state.go
package onboarding

import "github.com/lykr/lykr_backend/models"

// The four canonical interview questions, in fixed order. The first is seeded
// "current", the rest "pending".
var initialQuestions = []models.VoiceInterviewQuestion{
	{ID: 1, Text: "ما هي المشكلة الرئيسية التي يحلها منتجك أو خدمتك؟", Status: models.QuestionCurrent},
	{ID: 2, Text: "من هو عميلك المثالي؟", Status: models.QuestionPending},
	{ID: 3, Text: "ما الذي يميزك عن المنافسين؟", Status: models.QuestionPending},
	{ID: 4, Text: "ما هي أهدافك للأشهر الستة القادمة؟", Status: models.QuestionPending},
}

// DefaultState returns a fresh wizard document.
func DefaultState() models.WizardState {
	return models.WizardState{
		Documents:      []models.DocumentInfo{},
		Competitors:    []string{""},
		VoiceInterview: cloneQuestions(initialQuestions),
	}
}

// Every mutation below is a pure transform: it returns the next document
// without touching the current one. A mutation either applies in full or
// leaves the document unchanged.

func SetBusinessInfo(s models.WizardState, info models.BusinessInfo) models.WizardState {
	s.BusinessInfo = info
	return s
}

func SetWebsiteInfo(s models.WizardState, info models.WebsiteInfo) models.WizardState {
	s.Website = info
	return s
}

func SetDocuments(s models.WizardState, docs []models.DocumentInfo) models.WizardState {
	s.Documents = append([]models.DocumentInfo{}, docs...)
	return s
}

func AddDocument(s models.WizardState, doc models.DocumentInfo) models.WizardState {
	next := make([]models.DocumentInfo, 0, len(s.Documents)+1)
	next = append(next, s.Documents...)
	s.Documents = append(next, doc)
	return s
}

// RemoveDocument drops the document at index. An out-of-range index is a
// no-op, not a crash.
func RemoveDocument(s models.WizardState, index int) models.WizardState {
	if index < 0 || index >= len(s.Documents) {
		return s
	}
	next := make([]models.DocumentInfo, 0, len(s.Documents)-1)
	next = append(next, s.Documents[:index]...)
	next = append(next, s.Documents[index+1:]...)
	s.Documents = next
	return s
}

func SetCompetitors(s models.WizardState, competitors []string) models.WizardState {
	s.Competitors = append([]string{}, competitors...)
	return s
}

func SetVoiceInterview(s models.WizardState, questions []models.VoiceInterviewQuestion) models.WizardState {
	s.VoiceInterview = cloneQuestions(questions)
	return s
}

// UpdateQuestionTranscript stores the confirmed transcript on the question
// with the given id, marks it completed and promotes the next pending
// question to current, keeping exactly one current question until all are
// completed. An unknown id leaves the document unchanged.
func UpdateQuestionTranscript(s models.WizardState, id int, transcript string) models.WizardState {
	idx := -1
	for i, q := range s.VoiceInterview {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	next := cloneQuestions(s.VoiceInterview)
	next[idx].Transcript = transcript
	next[idx].Status = models.QuestionCompleted

	hasCurrent := false
	for _, q := range next {
		if q.Status == models.QuestionCurrent {
			hasCurrent = true
			break
		}
	}
	if !hasCurrent {
		for i := range next {
			if next[i].Status == models.QuestionPending {
				next[i].Status = models.QuestionCurrent
				break
			}
		}
	}
	s.VoiceInterview = next
	return s
}

// Reset discards all collected data.
func Reset() models.WizardState {
	return DefaultState()
}

func cloneQuestions(questions []models.VoiceInterviewQuestion) []models.VoiceInterviewQuestion {
	return append([]models.VoiceInterviewQuestion{}, questions...)
}
