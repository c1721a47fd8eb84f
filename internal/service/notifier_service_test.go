package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierDelivers(t *testing.T) {
	received := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		received <- payload["content"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, 1, 0, time.Second, nil)
	notifier.Start(context.Background())
	defer notifier.Stop()

	notifier.Notify("CMPUT 174 lookup in term 1850")

	select {
	case content := <-received:
		assert.True(t, strings.HasPrefix(content, "**"))
		assert.True(t, strings.HasSuffix(content, "\nCMPUT 174 lookup in term 1850"))
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestWebhookNotifierDisabledWithoutURL(t *testing.T) {
	notifier := NewWebhookNotifier("", 1, 0, time.Second, nil)
	notifier.Start(context.Background())
	defer notifier.Stop()

	// Must be a silent no-op.
	notifier.Notify("dropped")
}

func TestWebhookNotifierFailureDoesNotPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, 1, 0, time.Second, nil)
	notifier.Start(context.Background())
	defer notifier.Stop()

	// Delivery fails with a 500; Notify itself must not surface it.
	notifier.Notify("best effort only")
	time.Sleep(100 * time.Millisecond)
}
