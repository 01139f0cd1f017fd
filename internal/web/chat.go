// ABOUTME: JSON chat endpoint proxying user messages to the assistant
// ABOUTME: Rate limits per client, validates input and logs exchanges best-effort

package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vigorlabs/vigor-site/internal/chat"
	"github.com/vigorlabs/vigor-site/internal/ratelimit"
	"github.com/vigorlabs/vigor-site/internal/store"
)

// maxMessageLen is the longest user message the chat endpoint accepts,
// counted in characters, not bytes.
const maxMessageLen = 1000

type chatRequest struct {
	Message             string         `json:"message"`
	SessionID           string         `json:"sessionId"`
	ConversationHistory []chat.Message `json:"conversationHistory"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// handleChatAPI serves POST /api/chat. The rate limit check runs before
// any body parsing so throttled clients cost almost nothing.
func (s *Site) handleChatAPI(w http.ResponseWriter, r *http.Request) {
	key := ratelimit.ClientKey(r)
	if !s.limiter.Allow(key) {
		retry := s.limiter.RetryAfter(key)
		if secs := int((retry + time.Second - 1) / time.Second); secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSONError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLen {
		writeJSONError(w, http.StatusBadRequest, "Message is too long (max 1000 characters)")
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		s.logger.Error("chat upstream failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Best-effort logging; a failed insert never fails the request
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "anonymous"
	}
	if err := s.store.SaveChatLog(r.Context(), &store.ChatLog{
		SessionID:   sessionID,
		UserMessage: req.Message,
		AIResponse:  reply,
	}); err != nil {
		s.logger.Error("failed to log chat", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chatResponse{Success: true, Response: reply})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
