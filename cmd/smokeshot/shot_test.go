package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/osusproperties/ignite-growth-uae-15668aa5/logging"
	"github.com/osusproperties/ignite-growth-uae-15668aa5/tuning"
)

func TestParsePath(t *testing.T) {
	for _, name := range []string{"circle", "line", "idle", " Circle "} {
		if _, err := parsePath(name); err != nil {
			t.Fatalf("parsePath(%q): %v", name, err)
		}
	}
	if _, err := parsePath("spiral"); err == nil {
		t.Fatalf("expected an error for an unknown path")
	}
}

func TestPathsStayInViewport(t *testing.T) {
	const w, h, n = 200, 100, 60
	for name, p := range map[string]pointerPath{"circle": circlePath, "line": linePath} {
		t.Run(name, func(t *testing.T) {
			for f := 0; f < n; f++ {
				x, y := p(f, n, w, h)
				if x < 0 || y < 0 || x >= w || y >= h {
					t.Fatalf("frame %d at (%d, %d) is outside %dx%d", f, x, y, w, h)
				}
			}
		})
	}

	if x, y := idlePath(0, n, w, h); x >= 0 || y >= 0 {
		t.Fatalf("idle path should stay outside the viewport, got (%d, %d)", x, y)
	}
}

func TestLinePathEndpoints(t *testing.T) {
	if x, y := linePath(0, 11, 100, 50); x != 10 || y != 25 {
		t.Fatalf("start = (%d, %d), want (10, 25)", x, y)
	}
	if x, _ := linePath(10, 11, 100, 50); x != 90 {
		t.Fatalf("end x = %d, want 90", x)
	}
}

func quiet() context.Context {
	return logging.WithLogger(context.Background(), logging.Discard())
}

func testShot(path pointerPath, seed uint64) shot {
	return shot{
		config: tuning.Default(),
		frames: 12,
		width:  64,
		height: 48,
		seed:   seed,
		path:   path,
	}
}

func TestShoot(t *testing.T) {
	tests := []struct {
		name      string
		path      pointerPath
		wantBlank bool
	}{
		{"idle_stays_blank", idlePath, true},
		{"circle_draws", circlePath, false},
		{"line_draws", linePath, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := shoot(quiet(), testShot(tt.path, 7))
			if err != nil {
				t.Fatalf("shoot: %v", err)
			}
			if res.frames != 12 {
				t.Fatalf("frames = %d, want 12", res.frames)
			}

			blank := true
			for _, b := range res.image.Pix {
				if b != 0 {
					blank = false
					break
				}
			}
			if blank != tt.wantBlank {
				t.Fatalf("blank = %v, want %v", blank, tt.wantBlank)
			}
			if tt.wantBlank && res.particles != 0 {
				t.Fatalf("idle pointer spawned %d particles", res.particles)
			}
			if !tt.wantBlank && res.particles != 12 {
				t.Fatalf("particles = %d, want 12", res.particles)
			}
		})
	}
}

func TestShootIsReproducible(t *testing.T) {
	a, err := shoot(quiet(), testShot(circlePath, 3))
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	b, err := shoot(quiet(), testShot(circlePath, 3))
	if err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if !bytes.Equal(a.image.Pix, b.image.Pix) {
		t.Fatalf("same seed produced different images")
	}
}

func TestShootCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := shoot(logging.WithLogger(ctx, logging.Discard()), testShot(circlePath, 1)); err == nil {
		t.Fatalf("expected the cancelled context error")
	}
}

func TestRootCommandWritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shot.png")

	cmd := newRootCmd()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--frames", "5", "--width", "40", "--height", "30", "--seed", "9", "--out", out})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("image is %dx%d, want 40x30", b.Dx(), b.Dy())
	}
}

func TestRootCommandRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero_frames", []string{"--frames", "0"}},
		{"bad_size", []string{"--width", "0"}},
		{"bad_path", []string{"--path", "spiral"}},
		{"missing_config", []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(append(tt.args, "--out", filepath.Join(t.TempDir(), "x.png")))
			if err := cmd.ExecuteContext(context.Background()); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}
