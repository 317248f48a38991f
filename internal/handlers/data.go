// data.go
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
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/schellingx/piggyweb/internal/services"
	"github.com/schellingx/piggyweb/internal/types"
	"github.com/schellingx/piggyweb/internal/utils"
)

// DataHandler handles the whole-document state routes
type DataHandler struct {
	DataFile *services.DataFile
}

// GetData handles GET /api/data
// Returns the last-written state document verbatim, or {initialized:false}
// when no document has ever been written.
func (h *DataHandler) GetData(c *fiber.Ctx) error {
	raw, ok := h.DataFile.Load()
	if !ok {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"initialized": false,
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(raw)
}

// SetData handles POST /api/data
// Overwrites the state document wholesale. The body is stored byte for byte;
// no schema validation or merge is performed.
func (h *DataHandler) SetData(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 || !json.Valid(body) {
		return &types.CustomError{Code: fiber.StatusBadRequest, Message: "Invalid input", Type: "data.validation.input"}
	}

	// Fiber may reuse the request buffer after the handler returns
	stored := make([]byte, len(body))
	copy(stored, body)

	if err := h.DataFile.Save(stored); err != nil {
		return &types.CustomError{Code: fiber.StatusInternalServerError, Message: "Failed to save data", Type: "setData"}
	}

	return utils.SavedResponse(c)
}
