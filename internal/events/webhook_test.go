package events_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/varuna-collections/pos-api/internal/events"
)

func TestWebhookNotifierDelivers(t *testing.T) {
	var received []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	notifier := events.WebhookNotifier{URL: srv.URL, Client: events.HTTPClient(time.Second)}
	bus := &events.Bus{Notifiers: []events.Notifier{notifier}}

	err := bus.Emit(context.Background(), events.TopicSaleRecorded, map[string]string{"total": "220"})
	require.NoError(t, err)

	var payload struct {
		Topic  string            `json:"topic"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(received, &payload))
	require.Equal(t, events.TopicSaleRecorded, payload.Topic)
	require.Equal(t, "220", payload.Fields["total"])
}

func TestWebhookNotifierReportsEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	notifier := events.WebhookNotifier{URL: srv.URL, Client: events.HTTPClient(time.Second)}
	err := notifier.Notify(context.Background(), events.Event{Topic: events.TopicSaleRecorded})
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestWebhookNotifierNoURLIsNoop(t *testing.T) {
	err := events.WebhookNotifier{}.Notify(context.Background(), events.Event{Topic: events.TopicSaleRecorded})
	require.NoError(t, err)
}
