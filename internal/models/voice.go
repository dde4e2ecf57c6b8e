package models

type AudioFormat string

const (
	AudioWAV  AudioFormat = "wav"
	AudioMP3  AudioFormat = "mp3"
	AudioWEBM AudioFormat = "webm"
	AudioOGG  AudioFormat = "ogg"
)

type VoiceGender string

const (
	VoiceMale    VoiceGender = "male"
	VoiceFemale  VoiceGender = "female"
	VoiceNeutral VoiceGender = "neutral"
)

// Transcription is the result of a speech-to-text call.
type Transcription struct {
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// SynthesizedAudio is the result of a text-to-speech call.
type SynthesizedAudio struct {
	AudioURL        string      `json:"audio_url"`
	AudioBytes      []byte      `json:"-"`
	DurationSeconds float64     `json:"duration_seconds"`
	Format          AudioFormat `json:"format"`
	SizeBytes       int         `json:"size_bytes"`
}
