package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"voltvox/metrics"
)

const defaultWhisperURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperTranscriber calls the OpenAI Whisper transcription endpoint.
type WhisperTranscriber struct {
	APIKey string
	URL    string
	Client *http.Client
}

// NewWhisperTranscriber builds the default Whisper client.
func NewWhisperTranscriber(apiKey string) *WhisperTranscriber {
	return &WhisperTranscriber{
		APIKey: apiKey,
		URL:    defaultWhisperURL,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Transcribe implements Transcriber.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio []byte, contentType string) (string, error) {
	if w.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key not set")
	}
	if contentType == "" {
		contentType = "audio/wav"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio part: %w", err)
	}
	if err := writer.WriteField("model", "whisper-1"); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, &body)
	if err != nil {
		return "", fmt.Errorf("build whisper request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.Client.Do(req)
	if err != nil {
		metrics.SpeechCallsFailed.WithLabelValues("whisper").Inc()
		return "", fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SpeechCallsFailed.WithLabelValues("whisper").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("whisper returned status %d: %s", resp.StatusCode, detail)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode whisper response: %w", err)
	}
	return result.Text, nil
}
