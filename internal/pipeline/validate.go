package pipeline

import (
	"mime"
	"path/filepath"
	"strings"

	"ecoacustica/internal/services"
)

// MaxUploadBytes is the fixed upload size ceiling.
const MaxUploadBytes = 50 << 20

// Mode selects which declared media types a submission may carry.
type Mode string

const (
	// ModeUpload accepts audio recordings only.
	ModeUpload Mode = "upload"
	// ModeIdentification additionally accepts spectrogram images.
	ModeIdentification Mode = "identification"
)

// ParseMode converts a string into a known Mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeUpload, "":
		return ModeUpload, true
	case ModeIdentification:
		return ModeIdentification, true
	default:
		return "", false
	}
}

// mediaTypesByExtension covers the recording formats field hardware produces.
// The system mime table is consulted for anything else.
var mediaTypesByExtension = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// DetectMediaType returns the declared type for a file name when the caller
// did not supply one.
func DetectMediaType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if mediaType, ok := mediaTypesByExtension[ext]; ok {
		return mediaType
	}
	if mediaType := mime.TypeByExtension(ext); mediaType != "" {
		return mediaType
	}
	return "application/octet-stream"
}

func validateSubmission(mode Mode, sub Submission) error {
	mediaType := strings.ToLower(strings.TrimSpace(sub.MediaType))
	isAudio := strings.HasPrefix(mediaType, "audio/")
	isImage := strings.HasPrefix(mediaType, "image/")

	switch mode {
	case ModeIdentification:
		if !isAudio && !isImage {
			return services.Wrap(services.ErrUnsupportedMediaType, "pipeline", "submit",
				"expected an audio or image file, got "+sub.MediaType, nil)
		}
	default:
		if !isAudio {
			return services.Wrap(services.ErrUnsupportedMediaType, "pipeline", "submit",
				"expected an audio file, got "+sub.MediaType, nil)
		}
	}

	if sub.Size > MaxUploadBytes {
		return services.Wrap(services.ErrFileTooLarge, "pipeline", "submit",
			"uploads are limited to 50 MiB", nil)
	}
	if strings.TrimSpace(sub.FileName) == "" {
		return services.Wrap(services.ErrValidation, "pipeline", "submit", "file name is required", nil)
	}
	if sub.Location != nil && !sub.Location.Valid() {
		return services.Wrap(services.ErrValidation, "pipeline", "submit", "location coordinates out of range", nil)
	}
	return nil
}
