package moderation

import "github.com/abadojack/whatlanggo"

// minConfidence below which a detection is not worth storing; short messages rarely reach it.
const minConfidence = 0.5

// DetectLanguage returns the ISO 639-1 code of text, or "" when unsure.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if info.Confidence < minConfidence {
		return ""
	}
	return info.Lang.Iso6391()
}
