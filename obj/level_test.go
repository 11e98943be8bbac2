package obj

import (
	"testing"
)

func validLevelJSON() []byte {
	return []byte(`{
		"width": 3,
		"height": 2,
		"tiles": [0, 0, 0, 1, 1, 2],
		"spawn_x": 1,
		"spawn_y": 0,
		"items": [{"x": 0, "y": 0}],
		"platforms": [{"x": 16, "y": 16, "to_x": 48, "to_y": 16, "width": 2, "speed": 30}]
	}`)
}

func TestLoadLevel(t *testing.T) {
	lvl, err := loadLevelFromBytes(validLevelJSON())
	if err != nil {
		t.Fatalf("loadLevelFromBytes: %v", err)
	}
	if lvl.Width != 3 || lvl.Height != 2 {
		t.Fatalf("dimensions = %dx%d", lvl.Width, lvl.Height)
	}
	if got := lvl.TileAt(2, 1); got != TileDeadly {
		t.Fatalf("TileAt(2,1) = %d, want deadly", got)
	}
	if got := lvl.TileAt(-1, 0); got != TileEmpty {
		t.Fatalf("out of bounds must read empty, got %d", got)
	}
	x, y := lvl.GetSpawnPosition()
	if x != 48 || y != 16 {
		t.Fatalf("spawn = (%v, %v), want cell center (48, 16)", x, y)
	}
	w, h := lvl.PixelSize()
	if w != 96 || h != 64 {
		t.Fatalf("pixel size = %vx%v", w, h)
	}
}

func TestLoadLevelErrors(t *testing.T) {
	cases := []struct {
		name string
		json string
	}{
		{"bad_dimensions", `{"width": 0, "height": 2, "tiles": []}`},
		{"tile_count_mismatch", `{"width": 2, "height": 2, "tiles": [0, 1]}`},
		{"unknown_tile_value", `{"width": 2, "height": 1, "tiles": [0, 9]}`},
		{"spawn_out_of_bounds", `{"width": 2, "height": 1, "tiles": [0, 0], "spawn_x": 5}`},
		{"item_out_of_bounds", `{"width": 2, "height": 1, "tiles": [0, 0], "items": [{"x": 3, "y": 0}]}`},
		{"platform_zero_speed", `{"width": 2, "height": 1, "tiles": [0, 0], "platforms": [{"x": 0, "y": 0, "to_x": 8, "to_y": 0, "width": 1}]}`},
		{"not_json", `tiles?`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := loadLevelFromBytes([]byte(c.json)); err == nil {
				t.Fatalf("expected a load error")
			}
		})
	}
}
