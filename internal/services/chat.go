// chat.go
//
// A single-file data backend and sync core for the piggy family web hub
// Copyright (c) 2026 SchellingX (https://github.com/schellingx)
//
// This file is part of piggyweb.
// piggyweb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// piggyweb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with piggyweb.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schellingx/piggyweb/internal/models"
	"gorm.io/gorm"
)

// maxDerivedTitleLen bounds titles derived from the first message.
const maxDerivedTitleLen = 40

// ListChatSessions returns all sessions for a user with full message
// histories, most recently updated first.
func ListChatSessions(db *gorm.DB, userID string) ([]models.ChatSession, error) {
	var records []models.ChatSessionRecord
	if err := db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	sessions := make([]models.ChatSession, 0, len(records))
	for _, r := range records {
		sessions = append(sessions, r.Session())
	}
	return sessions, nil
}

// SaveChatSession persists one conversation transcript. A nil sessionID
// creates a new session with a fresh id and a title derived from the first
// message when none is supplied. A non-nil sessionID replaces that session's
// messages wholesale and bumps updatedAt. Returns the resulting session so
// the caller can track its id for subsequent saves in the same conversation.
func SaveChatSession(db *gorm.DB, userID string, sessionID *string, messages []models.ChatMessage, title string) (models.ChatSession, error) {
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	encoded, err := json.Marshal(messages)
	if err != nil {
		return models.ChatSession{}, fmt.Errorf("failed to encode messages: %w", err)
	}

	now := time.Now().UTC()

	if sessionID == nil || *sessionID == "" {
		if title == "" {
			title = deriveTitle(messages)
		}
		record := models.ChatSessionRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     title,
			Messages:  encoded,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(&record).Error; err != nil {
			return models.ChatSession{}, err
		}
		return record.Session(), nil
	}

	var record models.ChatSessionRecord
	if err := db.Where("id = ? AND user_id = ?", *sessionID, userID).
		First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.ChatSession{}, fmt.Errorf("not found")
		}
		return models.ChatSession{}, err
	}

	record.Messages = encoded
	record.UpdatedAt = now
	if title != "" {
		record.Title = title
	}
	if err := db.Save(&record).Error; err != nil {
		return models.ChatSession{}, err
	}
	return record.Session(), nil
}

// DeleteChatSession removes one session belonging to the user.
func DeleteChatSession(db *gorm.DB, userID, sessionID string) error {
	result := db.Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&models.ChatSessionRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("not found")
	}
	return nil
}

// ClearChatSessions removes all sessions for the user.
func ClearChatSessions(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).
		Delete(&models.ChatSessionRecord{}).Error
}

// deriveTitle builds a session title from the first user message,
// truncated on a rune boundary.
func deriveTitle(messages []models.ChatMessage) string {
	for _, m := range messages {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) > maxDerivedTitleLen {
			return string(runes[:maxDerivedTitleLen]) + "…"
		}
		return text
	}
	return "New chat"
}
