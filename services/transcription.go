package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/lykr/lykr_backend/models"
)

const defaultTranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// TranscriptionService sends recorded answers to the speech-to-text API and
// returns the transcript with its timed segments.
type TranscriptionService struct {
	apiKey     string
	endpoint   string
	model      string
	httpClient *http.Client
	logger     *log.Logger

	// normalization resamples uploads to 16kHz mono before sending, which
	// shrinks payloads and matches what the model expects
	normalize bool
}

func NewTranscriptionService() *TranscriptionService {
	endpoint := os.Getenv("TRANSCRIPTION_API_URL")
	if endpoint == "" {
		endpoint = defaultTranscriptionURL
	}
	model := os.Getenv("TRANSCRIPTION_MODEL")
	if model == "" {
		model = "whisper-1"
	}

	return &TranscriptionService{
		apiKey:     os.Getenv("OPENAI_API_KEY"),
		endpoint:   endpoint,
		model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     log.New(os.Stdout, "[TRANSCRIBE] ", log.LstdFlags),
		normalize:  os.Getenv("TRANSCRIPTION_NORMALIZE") != "false",
	}
}

// verboseResponse mirrors the API's verbose_json shape.
type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe sends the audio and returns the transcript. The reader is
// drained fully before upload.
func (s *TranscriptionService) Transcribe(ctx context.Context, filename string, audio io.Reader) (*models.TranscriptionResult, error) {
	if s.apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not configured")
	}

	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty audio upload")
	}

	if s.normalize {
		normalized, err := s.normalizeAudio(filename, data)
		if err != nil {
			// Normalization is best effort, the raw upload still works
			s.logger.Printf("audio normalization failed, sending original: %v", err)
		} else {
			data = normalized
			filename = "audio.wav"
		}
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := writer.WriteField("model", s.model); err != nil {
		return nil, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("transcription API returned %d: %s", resp.StatusCode, string(payload))
	}

	var verbose verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&verbose); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	result := &models.TranscriptionResult{
		Text:              verbose.Text,
		Language:          verbose.Language,
		DurationInSeconds: verbose.Duration,
		Segments:          make([]models.TranscriptSegment, 0, len(verbose.Segments)),
	}
	for _, seg := range verbose.Segments {
		result.Segments = append(result.Segments, models.TranscriptSegment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return result, nil
}

// normalizeAudio resamples the upload to 16kHz mono WAV through ffmpeg.
func (s *TranscriptionService) normalizeAudio(filename string, data []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "transcribe")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}
	inPath := filepath.Join(dir, "input"+ext)
	outPath := filepath.Join(dir, "output.wav")

	if err := os.WriteFile(inPath, data, 0o600); err != nil {
		return nil, err
	}

	err = ffmpeg.Input(inPath).
		Output(outPath, ffmpeg.KwArgs{"ar": 16000, "ac": 1, "f": "wav"}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w", err)
	}

	return os.ReadFile(outPath)
}
