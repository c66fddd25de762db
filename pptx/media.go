package pptx

import (
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// extension based types for formats content sniffing does not recognize
var mimeByExt = map[string]string{
	"svg":  "image/svg+xml",
	"emf":  "image/x-emf",
	"wmf":  "image/x-wmf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"webp": "image/webp",
	"mp4":  "video/mp4",
	"m4v":  "video/mp4",
	"webm": "video/webm",
	"ogv":  "video/ogg",
	"avi":  "video/x-msvideo",
	"wmv":  "video/x-ms-wmv",
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"wma":  "audio/x-ms-wma",
	"m4a":  "audio/mp4",
}

// DetectMIME determines media type of a part, content first and extension
// second. Unknown data yields application/octet-stream.
func DetectMIME(name string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if mime, ok := mimeByExt[Ext(name)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// Ext returns lower case extension of part name without the dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// PlayableVideo reports whether browsers play the video container natively.
func PlayableVideo(mime string) bool {
	switch mime {
	case "video/mp4", "video/webm", "video/ogg":
		return true
	}
	return false
}

// PlayableAudio reports whether browsers play the audio container natively.
func PlayableAudio(mime string) bool {
	switch mime {
	case "audio/mpeg", "audio/wav", "audio/x-wav", "audio/ogg":
		return true
	}
	return false
}
