package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/domain"
	"github.com/hireflow/interview-agent/internal/observability"
)

// Flow names the webhook channels drive.
const (
	voiceFlow = dialogue.FlowScreening
	chatFlow  = dialogue.FlowOutreach
)

// ChatSender delivers outbound text to a chat conversation.
type ChatSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

type Server struct {
	svc  *dialogue.Service
	chat ChatSender
}

// NewServer wires the voice and chat webhook routes onto the dialogue
// service. chat may be nil when the chat channel is not configured.
func NewServer(svc *dialogue.Service, chat ChatSender) http.Handler {
	s := &Server{svc: svc, chat: chat}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/voice", s.handleVoiceStart)
	mux.HandleFunc("/voice/answer", s.handleVoiceAnswer)
	mux.HandleFunc("/chat/webhook", s.handleChatWebhook)

	return chainMiddlewares(mux, withLogging, withRequestID)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// Voice channel (telephony webhook, TwiML)
// ─────────────────────────────────────────────

// handleVoiceStart answers a new call: starts a session keyed by the call
// id and asks the first scripted question.
func (s *Server) handleVoiceStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	callSid := r.FormValue("CallSid")
	if callSid == "" {
		writeTwiML(w, sayAndHangup("Error in call setup. Please try again later."))
		return
	}

	reply, err := s.svc.Start(r.Context(), domain.SessionKey(callSid), voiceFlow, "")
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("voice start failed",
			"call_sid", callSid, "error", err)
		writeTwiML(w, sayAndHangup("Error in call setup. Please try again later."))
		return
	}

	writeTwiML(w, gatherQuestion(reply.Text, callSid))
}

// handleVoiceAnswer receives the speech-recognition result for the pending
// question and either asks the next question or closes the call.
func (s *Server) handleVoiceAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	callSid := r.URL.Query().Get("call_sid")
	if callSid == "" {
		writeTwiML(w, sayAndHangup("Session error. Please call again."))
		return
	}

	speech := r.FormValue("SpeechResult")
	if speech == "" {
		speech = "(No response)"
	}

	reply, err := s.svc.HandleAnswer(r.Context(), domain.SessionKey(callSid), speech)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			writeTwiML(w, sayAndHangup("Session error. Please call again."))
			return
		}
		observability.LoggerFromContext(r.Context()).Error("voice answer failed",
			"call_sid", callSid, "error", err)
		writeTwiML(w, sayAndHangup("Something went wrong. Please call again later."))
		return
	}

	if reply.Terminal {
		writeTwiML(w, sayAndHangup(reply.Text))
		return
	}
	writeTwiML(w, gatherQuestion(reply.Text, callSid))
}

// ─────────────────────────────────────────────
// Chat channel (messaging webhook)
// ─────────────────────────────────────────────

type chatWebhookRequest struct {
	SenderData struct {
		ChatID string `json:"chatId"`
	} `json:"senderData"`
	MessageData struct {
		TextMessageData struct {
			TextMessage string `json:"textMessage"`
		} `json:"textMessageData"`
	} `json:"messageData"`
}

// handleChatWebhook processes one inbound chat message and sends the reply
// through the chat sender. Malformed payloads are rejected here; the core
// only sees validated input.
func (s *Server) handleChatWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req chatWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "ignored"})
		return
	}

	chatID := req.SenderData.ChatID
	message := strings.TrimSpace(req.MessageData.TextMessageData.TextMessage)
	if chatID == "" || message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "invalid"})
		return
	}

	reply, err := s.svc.HandleInbound(r.Context(), domain.SessionKey(chatID), chatFlow, message)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("chat webhook failed",
			"chat_id", chatID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}

	if s.chat == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "reply": reply.Text})
		return
	}

	if err := s.chat.SendMessage(r.Context(), chatID, reply.Text); err != nil {
		observability.LoggerFromContext(r.Context()).Error("chat send failed",
			"chat_id", chatID, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"status": "send_failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────
// HTTP helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
