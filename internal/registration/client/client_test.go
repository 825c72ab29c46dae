package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regdesk/internal/registration/models"
)

func testRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Name:        "Asha Rao",
		AdmissionNo: "123456",
		Branch:      "CSE",
		Phone:       "9876543210",
		Email:       "asha@example.com",
	}
}

func TestRegister_DecodesEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/register", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "asha@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.RegisterResponse{Success: true, Message: "Registered successfully!"})
	}))
	defer server.Close()

	resp, err := New(server.URL).Register(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Registered successfully!", resp.Message)
}

func TestRegister_NonSuccessStatusIsTransportFailure(t *testing.T) {
	// A gateway reply can be JSON without being our envelope; the status
	// alone must fail the call so the form shows its fallback instead of an
	// empty message.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Register(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestRegister_NonJSONBodyIsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	_, err := New(server.URL).Register(context.Background(), testRequest())
	require.Error(t, err)
}

func TestRegister_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := New(server.URL).Register(context.Background(), testRequest())
	require.Error(t, err)
}
