package infra

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundCloudOEmbedPreview(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "https://soundcloud.com/artist/demo", r.URL.Query().Get("url"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html":"<iframe></iframe>","title":"Demo","author_name":"Artist"}`))
	}))
	defer srv.Close()

	oe := &SoundCloudOEmbed{endpoint: srv.URL, client: srv.Client()}

	preview, err := oe.Preview(context.Background(), "https://soundcloud.com/artist/demo")
	require.NoError(t, err)
	assert.Equal(t, "<iframe></iframe>", preview.HTML)
	assert.Equal(t, "Demo", preview.Title)
	assert.Equal(t, "Artist", preview.AuthorName)
}

func TestSoundCloudOEmbedUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	oe := &SoundCloudOEmbed{endpoint: srv.URL, client: srv.Client()}

	_, err := oe.Preview(context.Background(), "https://soundcloud.com/artist/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
