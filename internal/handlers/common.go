// common.go
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
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/schellingx/piggyweb/internal/types"
	"github.com/schellingx/piggyweb/internal/utils"
)

// ErrorHandler renders every error escaping a handler in the service's JSON
// error shape. Handlers signal expected failures by returning
// *types.CustomError; anything else is treated as internal.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return c.Status(code).JSON(utils.ErrorResponseStruct{
		Status:    code,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}
