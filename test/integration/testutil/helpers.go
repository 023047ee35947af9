//go:build integration

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// Do performs a request with an optional JSON body and bearer token.
func (env *TestEnv) Do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodGet, path, nil, "")
}

// POST performs an unauthenticated POST request.
func (env *TestEnv) POST(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodPost, path, body, "")
}

// PUT performs an unauthenticated PUT request.
func (env *TestEnv) PUT(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodPut, path, body, "")
}

// PATCH performs an unauthenticated PATCH request.
func (env *TestEnv) PATCH(path string, body interface{}) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodPatch, path, body, "")
}

// DELETE performs an unauthenticated DELETE request.
func (env *TestEnv) DELETE(path string) *http.Response {
	env.t.Helper()
	return env.Do(http.MethodDelete, path, nil, "")
}

// CreatePlayer registers a player through the API and fails the test unless it is created.
func (env *TestEnv) CreatePlayer(id, name, email, password string) {
	env.t.Helper()
	env.mustCreate("/api/players/", map[string]interface{}{
		"id": id, "name": name, "email": email, "password": password,
	})
}

// CreateTable registers a foosball table through the API.
func (env *TestEnv) CreateTable(tableID, name string) {
	env.t.Helper()
	env.mustCreate("/api/foosball-tables/", map[string]interface{}{
		"table_id": tableID, "name": name, "condition_state": "good",
	})
}

// CreateGame records a game on tableID through the API.
func (env *TestEnv) CreateGame(id, tableID, winner string) {
	env.t.Helper()
	env.mustCreate("/api/games/", map[string]interface{}{
		"id": id, "table": tableID, "winner_team": winner, "score_red": 10, "score_blue": 7,
	})
}

// CreatePerformance records a performance and returns its generated id.
func (env *TestEnv) CreatePerformance(gameID, playerID, team, role string, goals int) int64 {
	env.t.Helper()
	resp := env.POST("/api/performances/", map[string]interface{}{
		"game": gameID, "player": playerID, "team_color": team, "role": role, "goals": goals,
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		env.t.Fatalf("CreatePerformance: expected 201, got %d", resp.StatusCode)
	}
	var out struct {
		ID int64 `json:"id"`
	}
	DecodeJSON(env.t, resp, &out)
	return out.ID
}

func (env *TestEnv) mustCreate(path string, body interface{}) {
	env.t.Helper()
	resp := env.POST(path, body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("POST %s: expected 201, got %d", path, resp.StatusCode)
	}
}

// Login exchanges credentials for a token.
func (env *TestEnv) Login(id, password string) string {
	env.t.Helper()
	resp := env.POST("/api/auth/login", map[string]string{"id": id, "password": password})
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		env.t.Fatalf("Login: expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	DecodeJSON(env.t, resp, &out)
	return out.Token
}
