// Package render draws the dodge world with Ebiten.
package render

import (
	"fmt"
	"image/color"
	_ "image/png"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Images loads sprite images once per path. A path that fails to load is
// replaced by a 1x1 white image, so tinted sprites still show as solid squares.
type Images struct {
	logger   *log.Logger
	loaded   map[string]*ebiten.Image
	fallback *ebiten.Image
}

func NewImages(logger *log.Logger) *Images {
	return &Images{
		logger: logger,
		loaded: make(map[string]*ebiten.Image),
	}
}

// Get returns the image for path, loading it on first use.
func (c *Images) Get(path string) *ebiten.Image {
	if img, ok := c.loaded[path]; ok {
		return img
	}

	img, err := loadImage(path)
	if err != nil {
		c.logger.Warn("using fallback sprite", "path", path, "err", err)
		img = c.fallbackImage()
	}
	c.loaded[path] = img
	return img
}

func (c *Images) fallbackImage() *ebiten.Image {
	if c.fallback == nil {
		c.fallback = ebiten.NewImage(1, 1)
		c.fallback.Fill(color.White)
	}
	return c.fallback
}

func loadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("assets: empty image path")
	}
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot load %s: %w", path, err)
	}
	return img, nil
}
