// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000, // keep the limiter out of the way
	})
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_Success(t *testing.T) {
	var gotBody ChatRequest
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		gotContentType = r.Header.Get("Content-Type")

		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, &gotBody))

		json.NewEncoder(w).Encode(ChatResponse{
			Response: "The Nike Air Max are $109.99.",
			History: []string{
				"User: how much are the air max?",
				"Assistant: The Nike Air Max are $109.99.",
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL)
	history := []string{"User: earlier turn"}
	resp, err := client.Chat(context.Background(), "how much are the air max?", history)

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "how much are the air max?", gotBody.Query)
	assert.Equal(t, history, gotBody.History)
	assert.Equal(t, "The Nike Air Max are $109.99.", resp.Response)
	assert.Len(t, resp.History, 2)
}

// The history field must serialize as an empty array, not null, when the
// conversation is fresh.
func TestChat_NilHistorySerializesAsEmptyArray(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		raw = string(data)
		json.NewEncoder(w).Encode(ChatResponse{Response: "hi"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Contains(t, raw, `"history":[]`)
	assert.NotContains(t, raw, `"history":null`)
}

// =============================================================================
// FAILURE TESTS
// =============================================================================

func TestChat_BadStatusPrefersBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "catalog backend is down")
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Chat(context.Background(), "hello", nil)

	require.Error(t, err)
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, ErrTypeBadStatus, clientErr.Type)
	assert.Equal(t, "catalog backend is down", clientErr.Message)
	assert.Equal(t, "catalog backend is down", ErrorMessage(err))
}

func TestChat_BadStatusEmptyBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Chat(context.Background(), "hello", nil)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(ErrorMessage(err), "chat request failed:"))
}

func TestChat_MalformedBodyIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{not json")
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Chat(context.Background(), "hello", nil)

	require.Error(t, err)
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, ErrTypeInvalidResponse, clientErr.Type)
}

func TestChat_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(ChatResponse{Response: "too late"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL).Chat(ctx, "hello", nil)

	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout error, got %v", err)
}

func TestChat_ConnectionRefused(t *testing.T) {
	// Nothing listens on this port.
	client := testClient("http://127.0.0.1:1")

	_, err := client.Chat(context.Background(), "hello", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			io.WriteString(w, `{"message": "Welcome to Ecommerce AI Assistant"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).CheckReachable(context.Background()))
}

func TestCheckReachable_Down(t *testing.T) {
	client := testClient("http://127.0.0.1:1")
	assert.Error(t, client.CheckReachable(context.Background()))
}

// =============================================================================
// ERROR MESSAGE TESTS
// =============================================================================

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "request timed out", ErrorMessage(ErrTimeout))
	assert.Equal(t, "plain error", ErrorMessage(errors.New("plain error")))
	assert.Equal(t, "Request failed", ErrorMessage(errors.New("")))
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
	assert.Equal(t, 30*time.Second, client.Timeout())
}

func TestNewClientWithConfig_TrimsTrailingSlash(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://example.test:9000/"})
	assert.Equal(t, "http://example.test:9000", client.BaseURL())
}
