package dto

import "sahayak/internal/models"

type TranscribeRequest struct {
	AudioBase64 string             `json:"audio_base64"`
	AudioFormat models.AudioFormat `json:"audio_format,omitempty"`
	Language    string             `json:"language,omitempty"`
}

type TranscribeResponse struct {
	Success    bool    `json:"success"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

type SynthesizeRequest struct {
	Text        string             `json:"text"`
	Language    string             `json:"language,omitempty"`
	VoiceGender models.VoiceGender `json:"voice_gender,omitempty"`
	SpeechRate  float64            `json:"speech_rate,omitempty"`
	Pitch       float64            `json:"pitch,omitempty"`
}

type SynthesizeResponse struct {
	Success         bool               `json:"success"`
	AudioURL        string             `json:"audio_url"`
	DurationSeconds float64            `json:"duration_seconds"`
	Format          models.AudioFormat `json:"format"`
	SizeBytes       int                `json:"size_bytes"`
}
