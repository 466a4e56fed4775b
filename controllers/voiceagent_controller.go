package controllers

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/lykr/lykr_backend/models"
	"github.com/lykr/lykr_backend/onboarding"
	"github.com/lykr/lykr_backend/services"
	"github.com/lykr/lykr_backend/websocket"
)

// VoiceAgentController bridges the browser to the conversational agent. The
// browser holds one WebSocket to us; we hold one to the provider and relay
// {source, message} events between them.
type VoiceAgentController struct {
	agent  *services.VoiceAgentService
	store  *onboarding.SnapshotStore
	logger *log.Logger
}

func NewVoiceAgentController(agent *services.VoiceAgentService, store *onboarding.SnapshotStore) *VoiceAgentController {
	return &VoiceAgentController{
		agent:  agent,
		store:  store,
		logger: log.New(os.Stdout, "[VOICEAGENT] ", log.LstdFlags),
	}
}

// relayHandler forwards provider events to the browser client.
type relayHandler struct {
	client *websocket.Client
	logger *log.Logger
}

func (h *relayHandler) OnConnect() {
	h.client.Send(map[string]string{"type": "connected"})
}

func (h *relayHandler) OnMessage(msg services.AgentMessage) {
	if err := h.client.Send(map[string]interface{}{
		"type":    "message",
		"source":  msg.Source,
		"message": msg.Message,
	}); err != nil {
		h.logger.Printf("relay to browser failed: %v", err)
	}
}

func (h *relayHandler) OnError(err error) {
	h.logger.Printf("agent session error: %v", err)
	h.client.Send(map[string]string{"type": "error", "message": "Voice agent connection lost"})
}

func (h *relayHandler) OnDisconnect() {
	h.client.Send(map[string]string{"type": "disconnected"})
	h.client.Close()
}

type clientCommand struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Connect upgrades the request and runs the relay until either side hangs up
func (vc *VoiceAgentController) Connect(c echo.Context) error {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No onboarding session",
		})
	}

	state, _ := vc.store.Load(c.Request().Context(), cookie.Value)

	conn, err := websocket.Upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		vc.logger.Printf("upgrade failed: %v", err)
		return err
	}

	client := websocket.NewClient(conn)
	go client.WritePump()

	handler := &relayHandler{client: client, logger: vc.logger}
	session, err := vc.agent.StartSession(c.Request().Context(), state, handler)
	if err != nil {
		vc.logger.Printf("agent session start failed: %v", err)
		client.Send(map[string]string{"type": "error", "message": "Failed to reach voice agent"})
		client.Close()
		return nil
	}
	defer session.End()

	// Inbound pump: user utterances and the hang-up command
	for {
		var cmd clientCommand
		if err := client.ReadJSON(&cmd); err != nil {
			client.Close()
			return nil
		}

		switch cmd.Type {
		case "user_message":
			if err := session.SendUserMessage(cmd.Text); err != nil {
				vc.logger.Printf("forwarding user message failed: %v", err)
				client.Close()
				return nil
			}
		case "end":
			client.Close()
			return nil
		}
	}
}
