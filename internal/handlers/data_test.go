package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/schellingx/piggyweb/internal/handlers"
	"github.com/schellingx/piggyweb/internal/services"
)

func setupDataApp(t *testing.T) *fiber.App {
	t.Helper()
	dataFile, err := services.NewDataFile(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("Failed to create data file: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handler := &handlers.DataHandler{DataFile: dataFile}
	app.Get("/api/data", handler.GetData)
	app.Post("/api/data", handler.SetData)
	return app
}

// TestGetDataUninitialized tests GET before any document exists
func TestGetDataUninitialized(t *testing.T) {
	app := setupDataApp(t)

	req := httptest.NewRequest("GET", "/api/data", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["initialized"] != false {
		t.Errorf("Expected initialized=false, got %v", result["initialized"])
	}
}

// TestSetThenGetData tests the POST/GET round trip
func TestSetThenGetData(t *testing.T) {
	app := setupDataApp(t)

	doc := []byte(`{"blogs":[]}`)
	req := httptest.NewRequest("POST", "/api/data", bytes.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var saved map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&saved); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if saved["success"] != true {
		t.Error("Expected success=true in response")
	}

	// The document comes back verbatim and is no longer uninitialized
	req = httptest.NewRequest("GET", "/api/data", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if !bytes.Equal(body, doc) {
		t.Errorf("Expected verbatim document %s, got %s", doc, body)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("Failed to decode document: %v", err)
	}
	if _, ok := result["blogs"]; !ok {
		t.Error("Expected blogs key in document")
	}
	if result["initialized"] == false {
		t.Error("Expected initialized to no longer be false")
	}
}

// TestGetDataIdempotent tests that two GETs with no POST between match
func TestGetDataIdempotent(t *testing.T) {
	app := setupDataApp(t)

	doc := []byte(`{"reminders":[{"id":"r1","text":"buy milk","completed":false}]}`)
	req := httptest.NewRequest("POST", "/api/data", bytes.NewReader(doc))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var bodies [][]byte
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/api/data", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response body: %v", err)
		}
		bodies = append(bodies, body)
	}

	if !bytes.Equal(bodies[0], bodies[1]) {
		t.Error("Expected byte-identical documents from consecutive GETs")
	}
}

// TestSetDataRejectsInvalidJSON tests the generic input error
func TestSetDataRejectsInvalidJSON(t *testing.T) {
	app := setupDataApp(t)

	req := httptest.NewRequest("POST", "/api/data", bytes.NewReader([]byte(`{"blogs": [oops`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}

	// The central error handler renders the standard error shape
	var errBody struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Ok      bool   `json:"ok"`
		Type    string `json:"type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if errBody.Status != 400 || errBody.Ok {
		t.Errorf("Unexpected error body: %+v", errBody)
	}
	if errBody.Type != "data.validation.input" {
		t.Errorf("Expected error type data.validation.input, got %q", errBody.Type)
	}

	// The slot stays uninitialized
	req = httptest.NewRequest("GET", "/api/data", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["initialized"] != false {
		t.Error("Expected store to remain uninitialized after rejected write")
	}
}
