package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"sahayak/internal/models"
	"sahayak/pkg/config"

	"go.uber.org/zap"
)

// SpeechCodec converts between audio and text. ChatService depends on this
// interface so tests can substitute a canned codec.
type SpeechCodec interface {
	Transcribe(ctx context.Context, audio []byte, format models.AudioFormat, lang string) (*models.Transcription, error)
	Synthesize(ctx context.Context, text, lang string, gender models.VoiceGender, rate float64) (*models.SynthesizedAudio, error)
	Close() error
}

// SpeechService wraps Google Cloud Speech-to-Text and Text-to-Speech.
// Synthesized audio is cached on disk keyed by the request hash, so
// repeated greetings and canned replies do not hit the API twice.
type SpeechService struct {
	sttClient *speech.Client
	ttsClient *texttospeech.Client
	config    *config.SpeechConfig
	logger    *zap.Logger
}

// regionCodes maps our short language codes to the Indian BCP-47 variants
// the Google APIs expect.
var regionCodes = map[string]string{
	"hi": "hi-IN",
	"en": "en-IN",
	"ta": "ta-IN",
	"te": "te-IN",
	"bn": "bn-IN",
	"mr": "mr-IN",
	"gu": "gu-IN",
	"kn": "kn-IN",
	"ml": "ml-IN",
	"pa": "pa-IN",
	"or": "or-IN",
}

func NewSpeechService(cfg *config.SpeechConfig, logger *zap.Logger) (*SpeechService, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	sttClient, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}

	ttsClient, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		sttClient.Close()
		return nil, fmt.Errorf("texttospeech client: %w", err)
	}

	if err := os.MkdirAll(cfg.AudioStoragePath, 0o755); err != nil {
		sttClient.Close()
		ttsClient.Close()
		return nil, fmt.Errorf("create audio storage dir: %w", err)
	}

	return &SpeechService{
		sttClient: sttClient,
		ttsClient: ttsClient,
		config:    cfg,
		logger:    logger,
	}, nil
}

// Transcribe converts a short utterance to text. If the requested language
// produces no transcript, the audio is retried as Indian English: rural
// users frequently code-switch mid-sentence.
func (s *SpeechService) Transcribe(ctx context.Context, audio []byte, format models.AudioFormat, lang string) (*models.Transcription, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	text, confidence, err := s.recognize(ctx, audio, format, regionCode(lang))
	if err != nil {
		return nil, err
	}

	if text == "" && lang != "en" {
		text, confidence, err = s.recognize(ctx, audio, format, "en-IN")
		if err != nil {
			return nil, err
		}
		if text != "" {
			lang = "en"
			// Retried transcripts are less trustworthy.
			if confidence == 0 {
				confidence = 0.70
			}
		}
	}
	if confidence == 0 && text != "" {
		confidence = 0.85
	}

	s.logger.Info("Transcribed audio",
		zap.String("language", lang),
		zap.Int("audio_bytes", len(audio)),
		zap.Int("text_length", len(text)),
	)

	return &models.Transcription{
		Text:       text,
		Language:   lang,
		Confidence: confidence,
	}, nil
}

func (s *SpeechService) recognize(ctx context.Context, audio []byte, format models.AudioFormat, languageCode string) (string, float64, error) {
	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   encodingFor(format),
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
			Model:                      "default",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.sttClient.Recognize(ctx, req)
	if err != nil {
		return "", 0, fmt.Errorf("speech recognize: %w", err)
	}

	var full strings.Builder
	var confidence float64
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		alt := r.Alternatives[0]
		if strings.TrimSpace(alt.Transcript) == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(strings.TrimSpace(alt.Transcript))
		if confidence == 0 {
			confidence = float64(alt.Confidence)
		}
	}
	return full.String(), confidence, nil
}

// Synthesize renders text as MP3. Results are cached under the audio
// storage path; a cache hit skips the API entirely.
func (s *SpeechService) Synthesize(ctx context.Context, text, lang string, gender models.VoiceGender, rate float64) (*models.SynthesizedAudio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	if rate <= 0 {
		rate = s.config.SpeechRate
	}

	filename := fmt.Sprintf("%x.mp3", md5.Sum([]byte(fmt.Sprintf("%s|%s|%s|%.2f", text, lang, gender, rate))))
	path := filepath.Join(s.config.AudioStoragePath, filename)

	if cached, err := os.ReadFile(path); err == nil {
		return s.audioResult(filename, cached), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: regionCode(lang),
			SsmlGender:   ssmlGender(gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  rate,
		},
	}

	resp, err := s.ttsClient.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}

	if err := os.WriteFile(path, resp.AudioContent, 0o644); err != nil {
		s.logger.Warn("Failed to cache synthesized audio", zap.Error(err))
	}

	s.logger.Info("Synthesized speech",
		zap.String("language", lang),
		zap.Int("text_length", len(text)),
		zap.Int("audio_bytes", len(resp.AudioContent)),
	)

	return s.audioResult(filename, resp.AudioContent), nil
}

func (s *SpeechService) audioResult(filename string, audio []byte) *models.SynthesizedAudio {
	return &models.SynthesizedAudio{
		AudioURL:   strings.TrimSuffix(s.config.AudioBaseURL, "/") + "/" + filename,
		AudioBytes: audio,
		// Rough estimate for 32 kbps MP3, good enough for UI progress bars.
		DurationSeconds: float64(len(audio)) / 4000,
		Format:          models.AudioMP3,
		SizeBytes:       len(audio),
	}
}

// CleanupOldFiles deletes cached audio older than the retention period.
func (s *SpeechService) CleanupOldFiles() (int, error) {
	entries, err := os.ReadDir(s.config.AudioStoragePath)
	if err != nil {
		return 0, fmt.Errorf("read audio storage dir: %w", err)
	}

	cutoff := time.Now().Add(-s.config.RetentionPeriod)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.config.AudioStoragePath, entry.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("Cleaned up cached audio", zap.Int("removed", removed))
	}
	return removed, nil
}

func (s *SpeechService) Close() error {
	var firstErr error
	if s.sttClient != nil {
		firstErr = s.sttClient.Close()
	}
	if s.ttsClient != nil {
		if err := s.ttsClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func regionCode(lang string) string {
	if code, ok := regionCodes[lang]; ok {
		return code
	}
	return "en-IN"
}

func encodingFor(format models.AudioFormat) speechpb.RecognitionConfig_AudioEncoding {
	switch format {
	case models.AudioWAV:
		return speechpb.RecognitionConfig_LINEAR16
	case models.AudioMP3:
		return speechpb.RecognitionConfig_MP3
	case models.AudioWEBM, models.AudioOGG:
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func ssmlGender(gender models.VoiceGender) texttospeechpb.SsmlVoiceGender {
	switch gender {
	case models.VoiceMale:
		return texttospeechpb.SsmlVoiceGender_MALE
	case models.VoiceNeutral:
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	default:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	}
}
