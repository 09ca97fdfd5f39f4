package adapter

import "context"

// SpeechSynthesizer is the port for text-to-speech. The chat core does
// not depend on it; only the web layer does.
type SpeechSynthesizer interface {
	// Synthesize returns encoded audio bytes for the given text.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
