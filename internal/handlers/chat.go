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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/schellingx/piggyweb/internal/assistant"
	"github.com/schellingx/piggyweb/internal/models"
	"github.com/schellingx/piggyweb/internal/services"
	"github.com/schellingx/piggyweb/internal/types"
	"github.com/schellingx/piggyweb/internal/utils"
	"gorm.io/gorm"
)

// ChatHandler handles the per-user chat session routes
type ChatHandler struct {
	DB        *gorm.DB
	Assistant *assistant.Client // nil when no API key is configured
}

// GetSessions handles GET /api/chat/:userId
func (h *ChatHandler) GetSessions(c *fiber.Ctx) error {
	userID := c.Params("userId")

	sessions, err := services.ListChatSessions(h.DB, userID)
	if err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "getSessions"}
	}

	return utils.SuccessResponse(c, fiber.Map{
		"sessions": sessions,
	}, fiber.StatusOK)
}

// SaveSession handles POST /api/chat/:userId
// A null sessionId creates a new session; a known id replaces that session's
// messages in place. Responds with the saved session so the client can keep
// the id for follow-up saves.
func (h *ChatHandler) SaveSession(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var body struct {
		SessionID *string                            `json:"sessionId"`
		Messages  types.FlexList[models.ChatMessage] `json:"messages"`
		Title     string                             `json:"title"`
	}

	if err := c.BodyParser(&body); err != nil {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "Invalid input", Type: "chat.validation.input"}
	}

	session, err := services.SaveChatSession(h.DB, userID, body.SessionID, body.Messages.Slice(), body.Title)
	if err != nil {
		if err.Error() == "not found" {
			return utils.NotFoundResponse(c, "Session not found")
		}
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "saveSession"}
	}

	return utils.SuccessResponse(c, session, fiber.StatusOK)
}

// DeleteSessions handles DELETE /api/chat/:userId[?sessionId=X]
// With a sessionId query it removes one session; without it, all sessions
// for the user.
func (h *ChatHandler) DeleteSessions(c *fiber.Ctx) error {
	userID := c.Params("userId")
	sessionID := c.Query("sessionId")

	if sessionID != "" {
		if err := services.DeleteChatSession(h.DB, userID, sessionID); err != nil {
			if err.Error() == "not found" {
				return utils.NotFoundResponse(c, "Session not found")
			}
			return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "deleteSession"}
		}
		return utils.SavedResponse(c)
	}

	if err := services.ClearChatSessions(h.DB, userID); err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: err.Error(), Type: "clearSessions"}
	}
	return utils.SavedResponse(c)
}

// AssistantReply handles POST /api/chat/:userId/assistant
// Passes the accumulated conversation to the generative API and returns the
// model's reply. Mounted only when an API key is configured.
func (h *ChatHandler) AssistantReply(c *fiber.Ctx) error {
	if h.Assistant == nil {
		return &types.CustomError{Code: fiber.StatusServiceUnavailable, Message: "Assistant not configured", Type: "assistant"}
	}

	var body struct {
		Messages types.FlexList[models.ChatMessage] `json:"messages"`
	}

	if err := c.BodyParser(&body); err != nil {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "Invalid input", Type: "chat.validation.input"}
	}
	if len(body.Messages) == 0 {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "Invalid input", Type: "chat.validation.input"}
	}

	reply, err := h.Assistant.Reply(c.Context(), body.Messages.Slice())
	if err != nil {
		return &types.CustomError{Code: fiber.StatusBadGateway, Message: "Assistant request failed", Type: "assistant"}
	}

	return utils.SuccessResponse(c, fiber.Map{
		"reply": reply,
	}, fiber.StatusOK)
}
