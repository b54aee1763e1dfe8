// main.go
//
// Server-rendered-free JSON backend for the ScriptScope content sharing app
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scriptscope.
// scriptscope is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scriptscope is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scriptscope.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/localnerve/scriptscope/internal/config"
	"github.com/localnerve/scriptscope/internal/database"
	"github.com/localnerve/scriptscope/internal/services"
	"github.com/localnerve/scriptscope/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db)

	// Optionally verify the server itself is up
	if serverURL := os.Getenv("SERVER_URL"); serverURL != "" {
		if err := utils.PingServer(serverURL); err != nil {
			result.Status = "unhealthy"
			result.Details["server_error"] = err.Error()
		} else {
			result.Details["server_url"] = serverURL
		}
	}

	// Output result as JSON
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}
	fmt.Println(string(out))

	if result.Status != "healthy" {
		os.Exit(1)
	}
}
