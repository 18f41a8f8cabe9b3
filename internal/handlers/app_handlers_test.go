package handlers

import (
	"encoding/base64"
	"net/http"
	"testing"
)

func TestStatusEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	resp := performRequest(t, env.app, http.MethodGet, "/status", nil, nil)
	body := decodeJSONMap(t, resp)
	assertStatus(t, resp, http.StatusOK)

	if body["db"] != true {
		t.Fatalf("expected db to be alive, got %v", body["db"])
	}
	if body["redis"] != true {
		t.Fatalf("expected redis to be alive, got %v", body["redis"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "stats-user@test.com", "password123")

	resp := uploadFile(t, env, token, map[string]any{
		"name": "counted.txt",
		"type": "file",
		"data": base64.StdEncoding.EncodeToString([]byte("x")),
	})
	assertStatus(t, resp, http.StatusCreated)

	resp = performRequest(t, env.app, http.MethodGet, "/stats", nil, nil)
	body := decodeJSONMap(t, resp)
	assertStatus(t, resp, http.StatusOK)

	if body["users"] != float64(1) {
		t.Fatalf("expected 1 user, got %v", body["users"])
	}
	if body["files"] != float64(1) {
		t.Fatalf("expected 1 file, got %v", body["files"])
	}
}
