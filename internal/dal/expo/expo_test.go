package expo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gebeta/delivery/internal/service/models/notification"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsJob(t *testing.T) {
	var received notification.PushJob
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	viper.Set("push.expo_endpoint", srv.URL)
	defer viper.Set("push.expo_endpoint", "")

	client := NewClient()
	err := client.Send(context.Background(), notification.PushJob{
		To:    "ExponentPushToken[abc]",
		Sound: "default",
		Title: "Order Delivered!",
		Body:  "Enjoy your meal!",
	})
	require.NoError(t, err)

	assert.Equal(t, "ExponentPushToken[abc]", received.To)
	assert.Equal(t, "Order Delivered!", received.Title)
}

func TestSendReportsProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusBadRequest)
	}))
	defer srv.Close()

	viper.Set("push.expo_endpoint", srv.URL)
	defer viper.Set("push.expo_endpoint", "")

	client := NewClient()
	err := client.Send(context.Background(), notification.PushJob{To: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
