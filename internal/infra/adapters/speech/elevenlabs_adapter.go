package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
)

var _ adapter.SpeechSynthesizer = (*ElevenLabsAdapter)(nil)

// ElevenLabsAdapter synthesizes speech through the ElevenLabs TTS API.
// The chat core never touches this; only the web layer does.
type ElevenLabsAdapter struct {
	apiKey  string
	voiceID string
	modelID string
	base    string
	client  *http.Client
}

func NewElevenLabsAdapter(apiKey, voiceID, modelID string) (*ElevenLabsAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("elevenlabs api key empty")
	}
	return &ElevenLabsAdapter{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: modelID,
		base:    "https://api.elevenlabs.io/v1",
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

var (
	asteriskSpans = regexp.MustCompile(`\*.*?\*`)
	emojiRunes    = regexp.MustCompile("[\U0001F600-\U0001F64F]")
)

// CleanForSpeech strips stage directions (*...*) and emoticons that
// read poorly when spoken aloud.
func CleanForSpeech(text string) string {
	text = asteriskSpans.ReplaceAllString(text, "")
	return emojiRunes.ReplaceAllString(text, "")
}

func (e *ElevenLabsAdapter) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body := struct {
		Text    string `json:"text"`
		ModelID string `json:"model_id"`
	}{Text: CleanForSpeech(text), ModelID: e.modelID}

	b, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/text-to-speech/%s", e.base, e.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("elevenlabs http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
