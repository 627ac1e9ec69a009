// Package speech is a thin client for the external text-to-speech service.
// The alarm driver calls it fire-and-forget: failures are logged by the
// caller and never block or crash the notification loop.
package speech

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// synthesizeRequest matches the request body of the /synthesize endpoint
type synthesizeRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice"`
	Format string `json:"format"`
}

// Client talks to a TTS endpoint accepting {text, voice, format} and
// returning audio bytes.
type Client struct {
	endpoint   string
	voice      string
	httpClient *http.Client
}

// NewClient creates a speech client for the given endpoint. An empty
// endpoint yields a nil client; callers skip speech in that case.
func NewClient(endpoint, voice string) *Client {
	if endpoint == "" {
		return nil
	}
	if voice == "" {
		voice = "sage"
	}
	return &Client{
		endpoint:   endpoint,
		voice:      voice,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Synthesize requests WAV audio for the given text.
func (c *Client) Synthesize(text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("no text to synthesize")
	}

	body, err := json.Marshal(synthesizeRequest{
		Text:   text,
		Voice:  c.voice,
		Format: "wav",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode TTS request: %w", err)
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS service returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}

	return audio, nil
}
