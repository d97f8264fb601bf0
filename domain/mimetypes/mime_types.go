// Package mimetypes lists the content types accepted as chat attachments.
package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown   MIME = "unknown"
	TextPlain MIME = "text/plain"

	ApplicationPDF MIME = "application/pdf"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWebP MIME = "image/webp"

	AudioWebM MIME = "audio/webm"
	AudioOgg  MIME = "audio/ogg"
	AudioMPEG MIME = "audio/mpeg"
	AudioWAV  MIME = "audio/wav"
	AudioMP4  MIME = "audio/mp4"

	// browsers record voice notes in a webm container that sniffs as video
	VideoWebM MIME = "video/webm"
	VideoMP4  MIME = "video/mp4"
)

var attachments = map[MIME]struct{}{
	TextPlain: {}, ApplicationPDF: {},
	ImagePNG: {}, ImageJPEG: {}, ImageGIF: {}, ImageWebP: {},
	AudioWebM: {}, AudioOgg: {}, AudioMPEG: {}, AudioWAV: {}, AudioMP4: {},
	VideoWebM: {}, VideoMP4: {},
}

// Matches strips parameters such as charset before comparing.
func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// Attachment returns the bare media type of detected and whether it may be attached to a message.
func Attachment(detected string) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	m := MIME(strings.ToLower(mt))
	_, ok := attachments[m]
	return m, ok
}

// IsVoice reports whether an attachment is played back as a voice note.
func IsVoice(m MIME) bool {
	return strings.HasPrefix(string(m), "audio/") || m == VideoWebM
}
