package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"voltvox/metrics"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// GoogleTranscriber uses Google Cloud Speech-to-Text. It expects LINEAR16
// WAV input and reads the sample rate and channel count from the WAV header.
type GoogleTranscriber struct {
	CredentialsFile string
	Language        string
}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE file")
	}
	return &header, nil
}

// Transcribe implements Transcriber.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, filename string, audio []byte, contentType string) (string, error) {
	header, err := parseWaveHeader(audio)
	if err != nil {
		return "", fmt.Errorf("parse wav header: %w", err)
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(g.CredentialsFile))
	if err != nil {
		metrics.SpeechCallsFailed.WithLabelValues("google").Inc()
		return "", fmt.Errorf("create speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(header.SampleRate),
			LanguageCode:      g.Language,
			AudioChannelCount: int32(header.NumChannels),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audio,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		metrics.SpeechCallsFailed.WithLabelValues("google").Inc()
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
