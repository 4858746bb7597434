package main

import (
	"os"
	"testing"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "SweepBot Cleanup Game Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	// Create config directory if it doesn't exist for test
	if _, err := os.Stat("configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	gameService, err := initializeServices("configs")
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}

	if gameService == nil {
		t.Fatal("Expected game service to be initialized")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	_, err := initializeServices("/non/existent/path")
	if err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestGetConfigDirDefault(t *testing.T) {
	original := os.Getenv("CONFIG_DIR")
	defer os.Setenv("CONFIG_DIR", original)

	os.Unsetenv("CONFIG_DIR")
	if dir := getConfigDirDefault(); dir != "configs" {
		t.Errorf("Expected default 'configs', got %s", dir)
	}

	os.Setenv("CONFIG_DIR", "/tmp/rooms")
	if dir := getConfigDirDefault(); dir != "/tmp/rooms" {
		t.Errorf("Expected '/tmp/rooms', got %s", dir)
	}
}

func TestRunSolve(t *testing.T) {
	// Solvable room: 4 moves with energy 5
	if err := runSolve([]string{"L.S", "RXL"}, 5, false); err != nil {
		t.Errorf("runSolve failed: %v", err)
	}
}

func TestRunSolve_InvalidLayout(t *testing.T) {
	if err := runSolve([]string{"..."}, 5, false); err == nil {
		t.Error("Expected error for layout without a dock")
	}
}

func TestRunSolve_NoArgs(t *testing.T) {
	if err := runSolve(nil, 5, false); err == nil {
		t.Error("Expected error for empty layout")
	}
}

// Note: We can't easily test main(), runHTTPServer(), and runStdioMCPWithInternalServer()
// without significant mocking or refactoring, as they start servers and block.
// These functions would be better tested in integration tests that start actual servers
// and test their endpoints.
