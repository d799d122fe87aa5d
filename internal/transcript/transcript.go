package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk transcript format.
type Format string

const (
	FormatText Format = "txt"
	FormatDocx Format = "docx"
)

var ErrUnsupportedFormat = errors.New("unsupported transcript format")

// Transcript is the loaded content of one handover meeting recording.
type Transcript struct {
	Path     string
	Format   Format
	Text     string
	Speakers []Speaker
}

// Project derives the project name from the transcript filename.
func (t *Transcript) Project() string {
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads a transcript from a .txt or .docx file. Any other extension
// fails with ErrUnsupportedFormat before anything is read.
func Load(path string) (*Transcript, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		text   string
		format Format
		err    error
	)

	switch ext {
	case ".txt":
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		text = strings.TrimSpace(string(data))
		format = FormatText

	case ".docx":
		text, err = extractDocx(path)
		if err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		format = FormatDocx

	default:
		return nil, fmt.Errorf("%w: %q (only .txt and .docx are supported)", ErrUnsupportedFormat, ext)
	}

	return &Transcript{
		Path:     path,
		Format:   format,
		Text:     text,
		Speakers: CountTurns(text),
	}, nil
}
