package speech

import "context"

// Transcriber converts recorded speech into text. Implementations are thin
// clients over third-party cloud services.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte, contentType string) (string, error)
}

// Synthesizer turns an agent response into an audio file and returns the
// public URL path it is served from.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}
