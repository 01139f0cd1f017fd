// ABOUTME: Chat log store methods for recording AI chat exchanges
// ABOUTME: Writes are best-effort from the chat handler and never block a reply

package store

import (
	"context"
	"fmt"
	"time"
)

// SaveChatLog records one user message / AI response pair.
func (s *SQLiteStore) SaveChatLog(ctx context.Context, log *ChatLog) error {
	log.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_logs (session_id, user_message, ai_response, created_at) VALUES (?, ?, ?, ?)`,
		log.SessionID, log.UserMessage, log.AIResponse, log.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chat log: %w", err)
	}

	log.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting chat log id: %w", err)
	}

	return nil
}

// ListChatLogs returns chat logs for a session, oldest first.
func (s *SQLiteStore) ListChatLogs(ctx context.Context, sessionID string, limit int) ([]*ChatLog, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, user_message, ai_response, created_at
		 FROM chat_logs WHERE session_id = ? ORDER BY created_at ASC LIMIT ?`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat logs: %w", err)
	}
	defer rows.Close()

	var logs []*ChatLog
	for rows.Next() {
		var l ChatLog
		var createdAtStr string
		if err := rows.Scan(&l.ID, &l.SessionID, &l.UserMessage, &l.AIResponse, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning chat log: %w", err)
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}
