package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/uxmedia/demoportal/internal/models"
	"github.com/uxmedia/demoportal/internal/ports"
)

const soundcloudOEmbedURL = "https://soundcloud.com/oembed"

type SoundCloudOEmbed struct {
	endpoint string
	client   *http.Client
}

var _ ports.PreviewService = (*SoundCloudOEmbed)(nil)

func NewSoundCloudOEmbed() ports.PreviewService {
	return &SoundCloudOEmbed{
		endpoint: soundcloudOEmbedURL,
		client:   http.DefaultClient,
	}
}

func (s *SoundCloudOEmbed) Preview(ctx context.Context, trackURL string) (*models.TrackPreview, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("url", trackURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oembed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed http %d", resp.StatusCode)
	}

	var preview models.TrackPreview
	if err := json.NewDecoder(resp.Body).Decode(&preview); err != nil {
		return nil, fmt.Errorf("oembed decode: %w", err)
	}
	return &preview, nil
}
