// models/onboarding.go
package models

// QuestionStatus tracks a voice-interview question through the wizard.
// Exactly one question is "current" at any time until all are "completed".
type QuestionStatus string

const (
	QuestionPending   QuestionStatus = "pending"
	QuestionCurrent   QuestionStatus = "current"
	QuestionCompleted QuestionStatus = "completed"
)

type BusinessInfo struct {
	Name string `json:"name"`
}

type WebsiteInfo struct {
	URL      string `json:"url"`
	LinkedIn string `json:"linkedin"`
	Facebook string `json:"facebook"`
	Twitter  string `json:"twitter"`
	YouTube  string `json:"youtube"`
}

// DocumentInfo is metadata only; binary content is never part of the wizard
// document. Size must reflect the actual byte length of the originating file.
type DocumentInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type VoiceInterviewQuestion struct {
	ID         int            `json:"id"`
	Text       string         `json:"text"`
	Status     QuestionStatus `json:"status"`
	Transcript string         `json:"transcript,omitempty"`
}

// WizardState is the single persisted onboarding document. Its JSON shape is
// exactly the snapshot written to the session store.
type WizardState struct {
	BusinessInfo   BusinessInfo             `json:"businessInfo"`
	Website        WebsiteInfo              `json:"website"`
	Documents      []DocumentInfo           `json:"documents"`
	Competitors    []string                 `json:"competitors"`
	VoiceInterview []VoiceInterviewQuestion `json:"voiceInterview"`
}
