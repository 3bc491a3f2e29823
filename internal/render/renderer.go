// Package render draws game snapshots to images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sync"

	"github.com/fogleman/gg"

	"cobra/internal/config"
	"cobra/internal/game"
)

var (
	colorBackground = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorSnake      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorFood       = color.RGBA{0xff, 0x00, 0x00, 0xff}
	colorText       = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Renderer draws snapshots onto a reusable gg context.
// Safe for concurrent use; frames are drawn one at a time.
type Renderer struct {
	mu       sync.Mutex
	dc       *gg.Context
	tileSize int
	width    int
	height   int
	faces    *faces
}

// NewRenderer creates a renderer sized for the board.
func NewRenderer(board config.BoardConfig) (*Renderer, error) {
	if board.Cols < 1 || board.Rows < 1 || board.TileSize < 1 {
		return nil, fmt.Errorf("invalid board %dx%d with tile %d", board.Cols, board.Rows, board.TileSize)
	}

	f, err := loadFaces(board.FontPath)
	if err != nil {
		return nil, err
	}
	if board.FontPath != "" {
		log.Printf("✅ Fonts loaded from: %s", board.FontPath)
	}

	return &Renderer{
		dc:       gg.NewContext(board.PixelWidth(), board.PixelHeight()),
		tileSize: board.TileSize,
		width:    board.PixelWidth(),
		height:   board.PixelHeight(),
		faces:    f,
	}, nil
}

// Size returns the frame size in pixels.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws snap and returns a copy of the frame.
func (r *Renderer) Render(snap *game.Snapshot) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draw(snap)

	src := r.dc.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.(*image.RGBA).Pix)
	return out
}

// EncodePNG draws snap and writes it to w as PNG.
func (r *Renderer) EncodePNG(w io.Writer, snap *game.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.draw(snap)
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

// draw paints one frame: background, snake, food, score and banner.
func (r *Renderer) draw(snap *game.Snapshot) {
	dc := r.dc
	tile := float64(r.tileSize)

	dc.SetColor(colorBackground)
	dc.Clear()

	dc.SetColor(colorSnake)
	for _, seg := range snap.Snake {
		dc.DrawRectangle(float64(seg.Col)*tile, float64(seg.Row)*tile, tile, tile)
	}
	dc.Fill()

	// The food cell is under the head after a win
	if !snap.Won {
		dc.SetColor(colorFood)
		dc.DrawRectangle(float64(snap.Food.Col)*tile, float64(snap.Food.Row)*tile, tile, tile)
		dc.Fill()
	}

	dc.SetColor(colorText)
	dc.SetFontFace(r.faces.score)
	dc.DrawString(fmt.Sprintf("Score: %d", snap.Score), 8, 20)

	if banner := Banner(snap); banner != "" {
		dc.SetFontFace(r.faces.banner)
		dc.DrawStringAnchored(banner, float64(r.width)/2, float64(r.height)/2, 0.5, 0.5)
	}
}

// Banner returns the overlay text for a finished round, or "" while running.
func Banner(snap *game.Snapshot) string {
	switch {
	case snap.Won:
		return "YOU WON!"
	case snap.GameOver:
		return "YOU DIED!"
	default:
		return ""
	}
}
