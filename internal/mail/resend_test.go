package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netly-app/netly/internal/config"
)

func TestResendClientSend(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer server.Close()

	client := NewResendClient(config.ResendConfig{
		APIURL:         server.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
	resp, err := client.Send(context.Background(), &Message{
		From:    "noreply@netly.app",
		To:      []string{"u@example.com"},
		Subject: "hi",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"msg_1"}`, string(resp))
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "hi", gotBody["subject"])

	// Unset optional fields stay out of the payload entirely.
	_, hasCc := gotBody["cc"]
	require.False(t, hasCc)
	_, hasText := gotBody["text"]
	require.False(t, hasText)
}

func TestResendClientSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to"}`))
	}))
	defer server.Close()

	client := NewResendClient(config.ResendConfig{
		APIURL:         server.URL,
		APIKey:         "test-key",
		TimeoutSeconds: 5,
	})
	_, err := client.Send(context.Background(), &Message{To: []string{"bad"}, Subject: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "422")
}
