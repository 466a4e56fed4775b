package onboarding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lykr/lykr_backend/models"
)

type fakeStream struct {
	stopped int
}

func (f *fakeStream) Stop() { f.stopped++ }

type fakeMic struct {
	err      error
	acquired int
	streams  []*fakeStream
}

func (f *fakeMic) Acquire() (MicStream, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.acquired++
	s := &fakeStream{}
	f.streams = append(f.streams, s)
	return s, nil
}

func (f *fakeMic) lastStream() *fakeStream {
	return f.streams[len(f.streams)-1]
}

func newTestRecorder(t *testing.T) (*Recorder, *fakeMic) {
	t.Helper()
	mic := &fakeMic{}
	return NewRecorder(mic, DefaultState().VoiceInterview), mic
}

func TestRecorderHappyPath(t *testing.T) {
	r, mic := newTestRecorder(t)
	assert.Equal(t, PhaseIdle, r.Phase())

	require.NoError(t, r.Start())
	assert.Equal(t, PhaseRecording, r.Phase())
	assert.Equal(t, 1, mic.acquired)

	r.Stop()
	assert.Equal(t, PhaseTranscribing, r.Phase())
	assert.Equal(t, 1, mic.lastStream().stopped, "mic released before transcription")

	r.FinishTranscription("الإجابة")
	assert.Equal(t, PhasePreviewing, r.Phase())
	text, ok := r.Preview()
	require.True(t, ok)
	assert.Equal(t, "الإجابة", text)

	r.Confirm()
	assert.Equal(t, PhaseIdle, r.Phase())
	_, ok = r.Preview()
	assert.False(t, ok)

	qs := r.Questions()
	assert.Equal(t, models.QuestionCompleted, qs[0].Status)
	assert.Equal(t, "الإجابة", qs[0].Transcript)
	assert.Equal(t, models.QuestionCurrent, qs[1].Status)
}

func TestRecorderForceStopAtCeiling(t *testing.T) {
	r, mic := newTestRecorder(t)
	require.NoError(t, r.Start())

	for i := 0; i < MaxRecordingSeconds-1; i++ {
		assert.False(t, r.Tick())
	}
	assert.Equal(t, PhaseRecording, r.Phase())

	assert.True(t, r.Tick())
	assert.Equal(t, PhaseTranscribing, r.Phase())
	assert.Equal(t, MaxRecordingSeconds, r.Elapsed())
	assert.Equal(t, 1, mic.lastStream().stopped)

	// ticks after the stop are ignored
	assert.False(t, r.Tick())
}

func TestRecorderTranscriptionFailureIsRetryable(t *testing.T) {
	r, mic := newTestRecorder(t)
	require.NoError(t, r.Start())
	r.Stop()

	r.FailTranscription()
	assert.Equal(t, PhaseIdle, r.Phase())
	_, ok := r.Preview()
	assert.False(t, ok)

	// questions untouched, the user can retry from idle
	assert.Equal(t, models.QuestionCurrent, r.Questions()[0].Status)
	require.NoError(t, r.Start())
	assert.Equal(t, PhaseRecording, r.Phase())
	assert.Equal(t, 2, mic.acquired)
}

func TestRecorderEditCycle(t *testing.T) {
	r, _ := newTestRecorder(t)
	require.NoError(t, r.Start())
	r.Stop()
	r.FinishTranscription("draft")

	// edits outside the editing phase are ignored
	r.SetPreview("ignored")
	text, _ := r.Preview()
	assert.Equal(t, "draft", text)

	r.ToggleEdit()
	assert.Equal(t, PhaseEditing, r.Phase())
	r.SetPreview("edited")
	r.ToggleEdit()
	assert.Equal(t, PhasePreviewing, r.Phase())

	r.ToggleEdit()
	r.Confirm()
	assert.Equal(t, "edited", r.Questions()[0].Transcript)
}

func TestRecorderRestartSkipsIdleLayover(t *testing.T) {
	r, mic := newTestRecorder(t)
	require.NoError(t, r.Start())
	r.Stop()
	r.FinishTranscription("draft")

	require.NoError(t, r.Restart())
	assert.Equal(t, PhaseRecording, r.Phase())
	assert.Zero(t, r.Elapsed())
	_, ok := r.Preview()
	assert.False(t, ok)
	assert.Equal(t, 2, mic.acquired)
}

func TestRecorderAcquireFailure(t *testing.T) {
	mic := &fakeMic{err: errors.New("device busy")}
	r := NewRecorder(mic, DefaultState().VoiceInterview)

	assert.Error(t, r.Start())
	assert.Equal(t, PhaseIdle, r.Phase())
}

func TestRecorderCloseReleasesMic(t *testing.T) {
	r, mic := newTestRecorder(t)
	require.NoError(t, r.Start())

	r.Close()
	assert.Equal(t, PhaseIdle, r.Phase())
	assert.Equal(t, 1, mic.lastStream().stopped)

	// double close does not double release
	r.Close()
	assert.Equal(t, 1, mic.lastStream().stopped)
}

func TestRecorderAllCompleted(t *testing.T) {
	r, _ := newTestRecorder(t)
	assert.False(t, r.AllCompleted())

	for i := 0; i < 4; i++ {
		require.NoError(t, r.Start())
		r.Stop()
		r.FinishTranscription("answer")
		r.Confirm()
	}
	assert.True(t, r.AllCompleted())
	_, ok := r.CurrentQuestion()
	assert.False(t, ok)
}

func TestRecorderInvalidTransitionsAreNoOps(t *testing.T) {
	r, _ := newTestRecorder(t)

	r.Stop()
	r.FinishTranscription("x")
	r.FailTranscription()
	r.Confirm()
	r.ToggleEdit()
	assert.Equal(t, PhaseIdle, r.Phase())

	require.NoError(t, r.Start())
	require.NoError(t, r.Start(), "second start is a no-op")
	assert.Equal(t, PhaseRecording, r.Phase())
	r.FinishTranscription("x")
	assert.Equal(t, PhaseRecording, r.Phase())
}
