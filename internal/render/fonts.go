package render

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	scoreFontSize  = 12
	bannerFontSize = 32
)

// faces holds the font faces, loaded once at startup.
type faces struct {
	score  font.Face
	banner font.Face
}

// loadFaces parses the TTF at path, or the embedded Go Regular font when
// path is empty.
func loadFaces(path string) (*faces, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = b
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	score, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    scoreFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create score face: %w", err)
	}

	banner, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    bannerFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create banner face: %w", err)
	}

	return &faces{score: score, banner: banner}, nil
}
