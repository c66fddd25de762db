package pptx

import "testing"

func TestDetectMIME(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0}

	tests := []struct {
		name string
		part string
		data []byte
		want string
	}{
		{"png content wins over extension", "ppt/media/image1.jpeg", png, "image/png"},
		{"jpeg content", "ppt/media/image2.bin", jpeg, "image/jpeg"},
		{"svg by extension", "ppt/media/image3.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`), "image/svg+xml"},
		{"emf by extension", "ppt/media/image4.EMF", []byte{1, 2, 3}, "image/x-emf"},
		{"unknown", "ppt/media/blob", []byte{1, 2, 3}, "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMIME(tt.part, tt.data); got != tt.want {
				t.Errorf("DetectMIME() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlayable(t *testing.T) {
	if !PlayableVideo("video/mp4") || PlayableVideo("video/x-msvideo") {
		t.Error("PlayableVideo")
	}
	if !PlayableAudio("audio/mpeg") || PlayableAudio("audio/x-ms-wma") {
		t.Error("PlayableAudio")
	}
}
