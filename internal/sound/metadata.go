package sound

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// SampleTitle reads the ID3v2 title of an audio file, falling back to the
// filename.
func SampleTitle(path string) string {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		if title := strings.TrimSpace(tag.Title()); title != "" {
			return title
		}
	}

	// Fallback: use filename without extension
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
