// internal/assets/library.go
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"go-rack-editor/internal/config"
	"go-rack-editor/internal/rack"
)

const (
	BlankPlateName = "blank_plate"

	// Plate textures are stored at this many pixels per rack unit.
	TextureScale = 4
)

// PlateSize is the pixel size of a 1HP plate texture.
func PlateSize() (w, h int) {
	unit, rail := config.GridUnit, config.RailHeight
	return int(unit * TextureScale), int(rail * TextureScale)
}

// Library owns the GPU images plugins are drawn with and hands out
// rack.Resource handles for them.
type Library struct {
	dir    string
	images map[rack.Resource]*ebiten.Image
	names  map[string]rack.Resource
	next   rack.Resource
	logger *log.Logger
}

// NewLibrary looks for textures under dir/textures.
func NewLibrary(dir string, logger *log.Logger) *Library {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Library{
		dir:    dir,
		images: make(map[rack.Resource]*ebiten.Image),
		names:  make(map[string]rack.Resource),
		next:   rack.NoResource + 1,
		logger: logger,
	}
}

// Register stores img under name. Registering a name twice replaces the
// image but keeps the handle.
func (l *Library) Register(name string, img *ebiten.Image) rack.Resource {
	if res, ok := l.names[name]; ok {
		if old := l.images[res]; old != nil && old != img {
			old.Deallocate()
		}
		l.images[res] = img
		return res
	}
	res := l.next
	l.next++
	l.names[name] = res
	l.images[res] = img
	return res
}

// Lookup returns the handle registered for name.
func (l *Library) Lookup(name string) (rack.Resource, bool) {
	res, ok := l.names[name]
	return res, ok
}

// Image returns the image behind res, or nil.
func (l *Library) Image(res rack.Resource) *ebiten.Image {
	return l.images[res]
}

// BlankPlate returns the blank 1HP plate, loading textures/blank_plate.png
// on first use and falling back to a generated one.
func (l *Library) BlankPlate() rack.Resource {
	if res, ok := l.names[BlankPlateName]; ok {
		return res
	}
	w, h := PlateSize()
	path := filepath.Join(l.dir, "textures", BlankPlateName+".png")
	src, err := LoadTexture(path, w, h)
	switch {
	case err == nil:
		l.logger.Info("loaded plate texture", "path", path)
		return l.Register(BlankPlateName, ebiten.NewImageFromImage(src))
	case !errors.Is(err, os.ErrNotExist):
		l.logger.Warn("plate texture unusable, drawing one", "path", path, "err", err)
	}
	return l.Register(BlankPlateName, ebiten.NewImageFromImage(PlateImage(w, h)))
}

// Cleanup frees every registered image.
func (l *Library) Cleanup() {
	for res, img := range l.images {
		if img != nil {
			img.Deallocate()
		}
		delete(l.images, res)
	}
	for name := range l.names {
		delete(l.names, name)
	}
}

// LoadTexture decodes a PNG and scales it to w x h.
func LoadTexture(path string, w, h int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if b := src.Bounds(); b.Dx() == w && b.Dy() == h {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// PlateImage draws a brushed blank panel with a mounting screw at the top
// and bottom.
func PlateImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(config.PlateColor), image.Point{}, draw.Src)

	for y := 0; y < h; y += 3 {
		shade := config.PlateColor
		shade.R -= 6
		shade.G -= 6
		shade.B -= 6
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, shade)
		}
	}

	edge := image.NewUniform(config.PlateEdgeColor)
	draw.Draw(img, image.Rect(0, 0, w, 1), edge, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, h-1, w, h), edge, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 1, h), edge, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w-1, 0, w, h), edge, image.Point{}, draw.Src)

	r := w / 5
	if r < 1 {
		r = 1
	}
	margin := h / 50
	drawScrew(img, w/2, margin+r, r, config.PlateScrewColor)
	drawScrew(img, w/2, h-margin-r-1, r, config.PlateScrewColor)
	return img
}

func drawScrew(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.SetRGBA(cx+x, cy+y, c)
			}
		}
	}
}
