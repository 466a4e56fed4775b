// onboarding/recorder.go
package onboarding

import (
	"github.com/lykr/lykr_backend/models"
)

// Recorder phases for one voice-interview question.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRecording
	PhaseTranscribing
	PhasePreviewing
	PhaseEditing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRecording:
		return "recording"
	case PhaseTranscribing:
		return "transcribing"
	case PhasePreviewing:
		return "previewing"
	case PhaseEditing:
		return "editing"
	}
	return "unknown"
}

// MaxRecordingSeconds is the hard per-answer ceiling; the one-second timer
// force-stops the capture when it is reached.
const MaxRecordingSeconds = 180

// MicStream is an exclusively-owned capture resource. Stop must be safe to
// call on every exit path.
type MicStream interface {
	Stop()
}

// MicSource acquires the microphone on demand.
type MicSource interface {
	Acquire() (MicStream, error)
}

// Recorder drives the per-question recording loop. Events from the capture
// and transcription collaborators only ever trigger one of the named
// transitions; anything else is a no-op.
type Recorder struct {
	mic       MicSource
	stream    MicStream
	questions []models.VoiceInterviewQuestion

	phase        Phase
	elapsed      int
	preview      string
	hasPreview   bool
	hasRecording bool
}

func NewRecorder(mic MicSource, questions []models.VoiceInterviewQuestion) *Recorder {
	return &Recorder{
		mic:       mic,
		questions: append([]models.VoiceInterviewQuestion{}, questions...),
		phase:     PhaseIdle,
	}
}

func (r *Recorder) Phase() Phase { return r.phase }

func (r *Recorder) Elapsed() int { return r.elapsed }

// Preview returns the editable transcript text, if one exists.
func (r *Recorder) Preview() (string, bool) { return r.preview, r.hasPreview }

// HasRecording reports whether a capture exists for the current question.
func (r *Recorder) HasRecording() bool { return r.hasRecording }

func (r *Recorder) Questions() []models.VoiceInterviewQuestion {
	return append([]models.VoiceInterviewQuestion{}, r.questions...)
}

// CurrentQuestion returns the question being answered, if any.
func (r *Recorder) CurrentQuestion() (models.VoiceInterviewQuestion, bool) {
	for _, q := range r.questions {
		if q.Status == models.QuestionCurrent {
			return q, true
		}
	}
	return models.VoiceInterviewQuestion{}, false
}

// AllCompleted gates the wizard's forward navigation on this step; skip
// bypasses it entirely.
func (r *Recorder) AllCompleted() bool {
	if len(r.questions) == 0 {
		return false
	}
	for _, q := range r.questions {
		if q.Status != models.QuestionCompleted {
			return false
		}
	}
	return true
}

// Start begins capturing the current question. Only valid from idle; a
// microphone acquisition failure leaves the recorder idle with the stream
// released.
func (r *Recorder) Start() error {
	if r.phase != PhaseIdle {
		return nil
	}
	stream, err := r.mic.Acquire()
	if err != nil {
		r.releaseStream()
		return err
	}
	r.stream = stream
	r.phase = PhaseRecording
	r.elapsed = 0
	return nil
}

// Tick advances the wall-clock timer by one second. When the ceiling is
// reached the capture is force-stopped; the return value reports that.
func (r *Recorder) Tick() bool {
	if r.phase != PhaseRecording {
		return false
	}
	r.elapsed++
	if r.elapsed >= MaxRecordingSeconds {
		r.Stop()
		return true
	}
	return false
}

// Stop ends the capture and hands the audio to the transcription
// collaborator. The microphone is released here, before transcription.
func (r *Recorder) Stop() {
	if r.phase != PhaseRecording {
		return
	}
	r.releaseStream()
	r.hasRecording = true
	r.phase = PhaseTranscribing
}

// FinishTranscription surfaces the transcript as editable preview text.
func (r *Recorder) FinishTranscription(text string) {
	if r.phase != PhaseTranscribing {
		return
	}
	r.preview = text
	r.hasPreview = true
	r.phase = PhasePreviewing
}

// FailTranscription resolves a failed round-trip to "no transcript". The
// capture is kept so the user can simply retry; nothing is raised.
func (r *Recorder) FailTranscription() {
	if r.phase != PhaseTranscribing {
		return
	}
	r.preview = ""
	r.hasPreview = false
	r.phase = PhaseIdle
}

// ToggleEdit switches between previewing and editing.
func (r *Recorder) ToggleEdit() {
	switch r.phase {
	case PhasePreviewing:
		r.phase = PhaseEditing
	case PhaseEditing:
		r.phase = PhasePreviewing
	}
}

// SetPreview mutates the in-memory preview text. Edits never touch the
// persisted document.
func (r *Recorder) SetPreview(text string) {
	if r.phase != PhaseEditing {
		return
	}
	r.preview = text
}

// Confirm marks the current question completed with the preview text as its
// transcript and promotes the next pending question to current.
func (r *Recorder) Confirm() {
	if r.phase != PhasePreviewing && r.phase != PhaseEditing {
		return
	}
	current, ok := r.CurrentQuestion()
	if !ok {
		return
	}

	doc := models.WizardState{VoiceInterview: r.questions}
	doc = UpdateQuestionTranscript(doc, current.ID, r.preview)
	r.questions = doc.VoiceInterview

	r.preview = ""
	r.hasPreview = false
	r.hasRecording = false
	r.elapsed = 0
	r.phase = PhaseIdle
}

// Restart discards the current capture and preview and immediately re-enters
// recording, with no idle layover.
func (r *Recorder) Restart() error {
	r.releaseStream()
	r.preview = ""
	r.hasPreview = false
	r.hasRecording = false
	r.elapsed = 0
	r.phase = PhaseIdle
	return r.Start()
}

// Close releases the capture resource. Safe to call from any phase.
func (r *Recorder) Close() {
	r.releaseStream()
	if r.phase == PhaseRecording {
		r.phase = PhaseIdle
	}
}

func (r *Recorder) releaseStream() {
	if r.stream != nil {
		r.stream.Stop()
		r.stream = nil
	}
}
