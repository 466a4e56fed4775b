// models/transcription.go
package models

// TranscriptSegment is one timed slice of a transcription.
type TranscriptSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is the flat payload returned by the transcription
// endpoint.
type TranscriptionResult struct {
	Text              string              `json:"text"`
	Segments          []TranscriptSegment `json:"segments"`
	Language          string              `json:"language"`
	DurationInSeconds float64             `json:"durationInSeconds"`
}
