package obj

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hiltonjp/journey/common"
)

// Tile values stored in a level's flat tile array.
const (
	TileEmpty = iota
	TileSolid
	TileDeadly
)

// Level is a tile map stored as JSON: a flat row-major tile array plus the
// spawn cell and the dynamic objects placed in the map.
type Level struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Tiles  []int `json:"tiles"`

	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x"`
	SpawnY int `json:"spawn_y"`

	// display color for solid tiles ("#rrggbb")
	TileColor string `json:"tile_color,omitempty"`

	Items     []ItemEntry     `json:"items,omitempty"`
	Platforms []PlatformEntry `json:"platforms,omitempty"`

	tileImg     *ebiten.Image
	triangleImg *ebiten.Image
}

// ItemEntry places a carriable crate at a tile cell.
type ItemEntry struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlatformEntry places a moving platform patrolling between two points in
// world pixels. Width is in tiles.
type PlatformEntry struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	ToX   float64 `json:"to_x"`
	ToY   float64 `json:"to_y"`
	Width int     `json:"width"`
	Speed float64 `json:"speed"`
}

// LoadLevel loads a level from a JSON file at path.
func LoadLevel(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadLevelFromBytes(b)
}

// LoadLevelFromFS loads a level JSON from an fs.FS (e.g. embedded levels).
func LoadLevelFromFS(fsys fs.FS, path string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, err
	}
	return loadLevelFromBytes(b)
}

func loadLevelFromBytes(b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, err
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %dx%d", l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("tile array length %d does not match %dx%d", len(l.Tiles), l.Width, l.Height)
	}
	for i, v := range l.Tiles {
		if v < TileEmpty || v > TileDeadly {
			return fmt.Errorf("unknown tile value %d at index %d", v, i)
		}
	}
	if l.SpawnX < 0 || l.SpawnX >= l.Width || l.SpawnY < 0 || l.SpawnY >= l.Height {
		return fmt.Errorf("spawn (%d,%d) outside the %dx%d map", l.SpawnX, l.SpawnY, l.Width, l.Height)
	}
	for i, it := range l.Items {
		if it.X < 0 || it.X >= l.Width || it.Y < 0 || it.Y >= l.Height {
			return fmt.Errorf("item %d at (%d,%d) outside the map", i, it.X, it.Y)
		}
	}
	for i, p := range l.Platforms {
		if p.Width <= 0 {
			return fmt.Errorf("platform %d has width %d", i, p.Width)
		}
		if p.Speed <= 0 {
			return fmt.Errorf("platform %d has speed %v", i, p.Speed)
		}
	}
	return nil
}

// TileAt returns the tile value at (x, y), TileEmpty when out of bounds.
func (l *Level) TileAt(x, y int) int {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return TileEmpty
	}
	return l.Tiles[y*l.Width+x]
}

// PixelSize returns the map dimensions in world pixels.
func (l *Level) PixelSize() (float64, float64) {
	return float64(l.Width * common.TileSize), float64(l.Height * common.TileSize)
}

// GetSpawnPosition returns the player's spawn position in world pixels (the
// center of the spawn cell).
func (l *Level) GetSpawnPosition() (float64, float64) {
	half := float64(common.TileSize) / 2
	return float64(l.SpawnX*common.TileSize) + half, float64(l.SpawnY*common.TileSize) + half
}

// Draw renders the map. camX/camY are the camera view's top-left in world
// coordinates. Solid tiles draw as colored squares, deadly tiles as red
// triangles.
func (l *Level) Draw(screen *ebiten.Image, camX, camY, zoom float64) {
	if l == nil {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}
	if l.tileImg == nil {
		l.tileImg = ebiten.NewImage(common.TileSize, common.TileSize)
		l.tileImg.Fill(parseHexColor(l.TileColor))
	}
	if l.triangleImg == nil {
		l.triangleImg = triangleImage(common.TileSize, color.RGBA{R: 0xff, A: 0xff})
	}

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			var img *ebiten.Image
			switch l.Tiles[y*l.Width+x] {
			case TileSolid:
				img = l.tileImg
			case TileDeadly:
				img = l.triangleImg
			default:
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(zoom, zoom)
			op.GeoM.Translate((float64(x*common.TileSize)-camX)*zoom, (float64(y*common.TileSize)-camY)*zoom)
			screen.DrawImage(img, op)
		}
	}
}

// triangleImage builds an image with a filled upward-pointing triangle.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		progress := float64(y) / float64(size-1)
		rowWidth := progress * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// parseHexColor parses a color in the form #rrggbb. Returns blue if the
// parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x3c, 0x78, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
