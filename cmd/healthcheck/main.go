// main.go
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

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/schellingx/piggyweb/internal/config"
	"github.com/schellingx/piggyweb/internal/database"
	"github.com/schellingx/piggyweb/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the chat session database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Open the state document location
	dataFile, err := services.NewDataFile(cfg.DataFile)
	if err != nil {
		log.Fatalf("Failed to open data file: %v", err)
	}

	// Perform health check
	result := services.HealthCheck(cfg, db, dataFile)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
