package records

import "strings"

// MediaType classifies a message's content.
type MediaType string

const (
	MediaTypeMedia    MediaType = "Media"
	MediaTypeImage    MediaType = "Image"
	MediaTypeVideo    MediaType = "Video"
	MediaTypeAudio    MediaType = "Audio"
	MediaTypeDocument MediaType = "Document"
	MediaTypeText     MediaType = "Text"
)

// mediaRule maps file extensions to a media type.
type mediaRule struct {
	mediaType  MediaType
	extensions []string
}

// Checked in order; first match wins.
var mediaRules = []mediaRule{
	{MediaTypeImage, []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}},
	{MediaTypeVideo, []string{".mp4", ".avi", ".mov", ".mkv"}},
	{MediaTypeAudio, []string{".mp3", ".ogg", ".wav", ".m4a"}},
	{MediaTypeDocument, []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".xls"}},
}

// ClassifyMedia returns the media type of content. The omitted-media
// placeholder is matched exactly (ignoring case) before extension sniffing.
func ClassifyMedia(content string) MediaType {
	lower := strings.ToLower(content)

	if lower == strings.ToLower(MediaPlaceholder) {
		return MediaTypeMedia
	}

	for _, rule := range mediaRules {
		for _, ext := range rule.extensions {
			if strings.Contains(lower, ext) {
				return rule.mediaType
			}
		}
	}

	return MediaTypeText
}
