// Package language holds language code utilities for the supported
// Indian languages.
package language

import "strings"

var names = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"ta": "Tamil",
	"te": "Telugu",
	"bn": "Bengali",
	"mr": "Marathi",
	"gu": "Gujarati",
	"kn": "Kannada",
	"ml": "Malayalam",
	"pa": "Punjabi",
	"or": "Odia",
}

// ISO 639-2 three-letter codes to our two-letter codes.
var iso3 = map[string]string{
	"eng": "en",
	"hin": "hi",
	"tam": "ta",
	"tel": "te",
	"ben": "bn",
	"mar": "mr",
	"guj": "gu",
	"kan": "kn",
	"mal": "ml",
	"pan": "pa",
	"ori": "or",
}

var greetings = map[string]string{
	"hi": "नमस्ते! मैं सहायक हूं। मैं आपको सरकारी योजनाओं के बारे में जानकारी देने में मदद करूंगा। आप मुझसे क्या जानना चाहते हैं?",
	"en": "Hello! I am Sahayak. I will help you with information about government schemes. What would you like to know?",
	"ta": "வணக்கம்! நான் சகாயக். அரசு திட்டங்கள் பற்றிய தகவல்களில் உங்களுக்கு உதவுவேன். நீங்கள் என்ன தெரிந்து கொள்ள விரும்புகிறீர்கள்?",
	"te": "నమస్కారం! నేను సహాయక్. ప్రభుత్వ పథకాల గురించి మీకు సమాచారం అందించడంలో సహాయం చేస్తాను. మీరు ఏమి తెలుసుకోవాలనుకుంటున్నారు?",
	"bn": "নমস্কার! আমি সহায়ক। সরকারি প্রকল্প সম্পর্কে তথ্যে আপনাকে সাহায্য করব। আপনি কী জানতে চান?",
	"mr": "नमस्कार! मी सहायक आहे. मी तुम्हाला सरकारी योजनांबद्दल माहिती देण्यात मदत करेन. तुम्हाला काय जाणून घ्यायचे आहे?",
}

// Name returns the display name for a language code, or the code itself
// when unknown.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// IsSupported reports whether the language code is one we handle.
func IsSupported(code string) bool {
	_, ok := names[code]
	return ok
}

// Normalize lowers and trims a language code and maps ISO 639-2
// three-letter codes to two-letter ones.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) == 3 {
		if two, ok := iso3[code]; ok {
			return two
		}
		return code[:2]
	}
	return code
}

// Greeting returns the session greeting in the given language, falling back
// to Hindi.
func Greeting(code string) string {
	if g, ok := greetings[code]; ok {
		return g
	}
	return greetings["hi"]
}
