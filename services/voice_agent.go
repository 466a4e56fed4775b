package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lykr/lykr_backend/models"
)

const unspecified = "غير محدد"

// AgentMessage is one utterance in the confirmation call.
type AgentMessage struct {
	Source  string `json:"source"` // "ai" or "user"
	Message string `json:"message"`
}

// SessionHandler receives the session lifecycle callbacks. All callbacks run
// on the session's read goroutine.
type SessionHandler interface {
	OnConnect()
	OnMessage(msg AgentMessage)
	OnError(err error)
	OnDisconnect()
}

// VoiceAgentService opens conversational sessions against the voice agent
// provider, seeding each one with the business context collected during
// onboarding.
type VoiceAgentService struct {
	agentID string
	wsURL   string
	dialer  *websocket.Dialer
	logger  *log.Logger
}

func NewVoiceAgentService() *VoiceAgentService {
	wsURL := os.Getenv("VOICE_AGENT_WS_URL")
	if wsURL == "" {
		wsURL = "wss://api.elevenlabs.io/v1/convai/conversation"
	}
	return &VoiceAgentService{
		agentID: os.Getenv("VOICE_AGENT_ID"),
		wsURL:   wsURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger: log.New(os.Stdout, "[VOICEAGENT] ", log.LstdFlags),
	}
}

// BuildDynamicVariables flattens the wizard document into the variables the
// agent prompt interpolates. Missing answers degrade to a placeholder rather
// than an empty string.
func BuildDynamicVariables(state models.WizardState) map[string]string {
	vars := map[string]string{
		"business_name": unspecified,
		"website_url":   unspecified,
		"social_links":  unspecified,
		"competitors":   unspecified,
	}

	if name := strings.TrimSpace(state.BusinessInfo.Name); name != "" {
		vars["business_name"] = name
	}
	if url := strings.TrimSpace(state.Website.URL); url != "" {
		vars["website_url"] = url
	}

	socials := []string{}
	for _, link := range []string{state.Website.LinkedIn, state.Website.Facebook, state.Website.Twitter, state.Website.YouTube} {
		if l := strings.TrimSpace(link); l != "" {
			socials = append(socials, l)
		}
	}
	if len(socials) > 0 {
		vars["social_links"] = strings.Join(socials, ", ")
	}

	competitors := []string{}
	for _, c := range state.Competitors {
		if c := strings.TrimSpace(c); c != "" {
			competitors = append(competitors, c)
		}
	}
	if len(competitors) > 0 {
		vars["competitors"] = strings.Join(competitors, ", ")
	}

	answers := []string{}
	for _, q := range state.VoiceInterview {
		if q.Status == models.QuestionCompleted && strings.TrimSpace(q.Transcript) != "" {
			answers = append(answers, fmt.Sprintf("%s: %s", q.Text, q.Transcript))
		}
	}
	if len(answers) > 0 {
		vars["interview_answers"] = strings.Join(answers, "\n")
	} else {
		vars["interview_answers"] = unspecified
	}

	return vars
}

// Session is one live conversation with the agent.
type Session struct {
	conn    *websocket.Conn
	handler SessionHandler
	logger  *log.Logger

	writeMu sync.Mutex
	endOnce sync.Once
}

// StartSession dials the provider and begins relaying agent events to the
// handler. The session ends when the provider closes the socket, the context
// is cancelled or End is called.
func (s *VoiceAgentService) StartSession(ctx context.Context, state models.WizardState, handler SessionHandler) (*Session, error) {
	if s.agentID == "" {
		return nil, errors.New("VOICE_AGENT_ID is not configured")
	}

	url := fmt.Sprintf("%s?agent_id=%s", s.wsURL, s.agentID)
	conn, _, err := s.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to voice agent: %w", err)
	}

	session := &Session{
		conn:    conn,
		handler: handler,
		logger:  s.logger,
	}

	init := map[string]interface{}{
		"type": "conversation_initiation_client_data",
		"dynamic_variables": BuildDynamicVariables(state),
	}
	if err := session.writeJSON(init); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send initiation payload: %w", err)
	}

	handler.OnConnect()
	go session.readLoop(ctx)

	return session, nil
}

// SendUserMessage forwards a typed user utterance into the conversation.
func (s *Session) SendUserMessage(text string) error {
	return s.writeJSON(map[string]interface{}{
		"type": "user_message",
		"text": text,
	})
}

// End closes the session. Safe to call more than once.
func (s *Session) End() {
	s.endOnce.Do(func() {
		s.writeMu.Lock()
		s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		s.writeMu.Unlock()
		s.conn.Close()
	})
}

func (s *Session) writeJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// providerEvent is the subset of the provider's event stream we surface.
type providerEvent struct {
	Type      string `json:"type"`
	AgentResponseEvent struct {
		AgentResponse string `json:"agent_response"`
	} `json:"agent_response_event"`
	UserTranscriptionEvent struct {
		UserTranscript string `json:"user_transcript"`
	} `json:"user_transcription_event"`
	PingEvent struct {
		EventID int `json:"event_id"`
	} `json:"ping_event"`
}

func (s *Session) readLoop(ctx context.Context) {
	defer func() {
		s.End()
		s.handler.OnDisconnect()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.handler.OnError(err)
			}
			return
		}

		var event providerEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			s.logger.Printf("unparseable agent event: %v", err)
			continue
		}

		switch event.Type {
		case "agent_response":
			s.handler.OnMessage(AgentMessage{Source: "ai", Message: event.AgentResponseEvent.AgentResponse})
		case "user_transcript":
			s.handler.OnMessage(AgentMessage{Source: "user", Message: event.UserTranscriptionEvent.UserTranscript})
		case "ping":
			s.writeJSON(map[string]interface{}{
				"type":     "pong",
				"event_id": event.PingEvent.EventID,
			})
		}
	}
}
