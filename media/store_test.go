package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/tsawler/reflow/model"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.Gray{Y: 200})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func TestNewCreatesEmptyDirectory(t *testing.T) {
	base := t.TempDir()
	store, err := New(base, "reflow-")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !filepath.IsAbs(store.Dir()) {
		t.Errorf("Dir() = %q, want absolute path", store.Dir())
	}
	if !strings.HasPrefix(filepath.Base(store.Dir()), "reflow-") {
		t.Errorf("Dir() = %q, want reflow- prefix", store.Dir())
	}
	entries, err := os.ReadDir(store.Dir())
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty directory, got %d entries", len(entries))
	}
}

func TestNewDistinctDirectories(t *testing.T) {
	base := t.TempDir()
	a, err := New(base, "conv-")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(base, "conv-")
	if err != nil {
		t.Fatal(err)
	}
	if a.Dir() == b.Dir() {
		t.Fatalf("two stores share directory %q", a.Dir())
	}

	pa, err := a.Put(0, 0, "png", []byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	pb, err := b.Put(0, 0, "png", []byte("b"))
	if err != nil {
		t.Fatal(err)
	}
	if pa == pb {
		t.Errorf("identical keys collided across stores: %q", pa)
	}
}

func TestNewFailure(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing", "deeper")
	_, err := New(base, "x-")
	if err == nil {
		t.Fatal("expected error for missing base directory")
	}
	var ioErr *model.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "mkdir" {
		t.Errorf("expected mkdir IOError, got %v", err)
	}
}

func TestPut(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}

	data := []byte{1, 2, 3}
	path, err := store.Put(2, 5, "jpeg", data)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if want := filepath.Join(store.Dir(), "img_p2_5.jpeg"); path != want {
		t.Errorf("Put() = %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("file content = %v, want %v", got, data)
	}
}

func TestPutDistinctIndices(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}

	p0, _ := store.Put(0, 0, "png", []byte("0"))
	p1, _ := store.Put(0, 1, "png", []byte("1"))
	q0, _ := store.Put(1, 0, "png", []byte("2"))
	if p0 == p1 || p0 == q0 || p1 == q0 {
		t.Errorf("paths collided: %q %q %q", p0, p1, q0)
	}

	paths := store.Paths()
	if len(paths) != 3 || paths[0] != p0 || paths[1] != p1 || paths[2] != q0 {
		t.Errorf("Paths() = %v", paths)
	}
}

func TestPutWriteFailure(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.RemoveAll(store.Dir()); err != nil {
		t.Fatal(err)
	}

	_, err = store.Put(0, 0, "png", []byte("x"))
	if !errors.Is(err, model.ErrIO) {
		t.Fatalf("expected IOError, got %v", err)
	}
	var ioErr *model.IOError
	if errors.As(err, &ioErr) && ioErr.Op != "write" {
		t.Errorf("Op = %q, want write", ioErr.Op)
	}
	if len(store.Paths()) != 0 {
		t.Error("failed write must not be recorded")
	}
}

func TestPutConcurrent(t *testing.T) {
	store, err := New(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for page := 0; page < 8; page++ {
		wg.Add(1)
		go func(page int) {
			defer wg.Done()
			for i := 0; i < 4; i++ {
				if _, err := store.Put(page, i, "bin", []byte{byte(page), byte(i)}); err != nil {
					t.Error(err)
				}
			}
		}(page)
	}
	wg.Wait()

	if got := len(store.Paths()); got != 32 {
		t.Errorf("expected 32 files, got %d", got)
	}
}

func TestNormalizeExt(t *testing.T) {
	pngData := makePNG(t, 2, 2)

	tests := []struct {
		name string
		ext  string
		data []byte
		want string
	}{
		{"plain", "png", nil, "png"},
		{"upper", "JPEG", nil, "jpeg"},
		{"leading dot", ".jpg", nil, "jpg"},
		{"padded", "  tif ", nil, "tif"},
		{"path characters stripped", "../png", nil, "png"},
		{"empty sniffed", "", pngData, "png"},
		{"garbage sniffed", "...", pngData, "png"},
		{"unknown data", "", []byte("not an image"), "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeExt(tt.ext, tt.data); got != tt.want {
				t.Errorf("NormalizeExt(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestProbe(t *testing.T) {
	info, err := Probe(makePNG(t, 7, 3))
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Format != "png" || info.Width != 7 || info.Height != 3 {
		t.Errorf("Probe() = %+v", info)
	}
	if info.Ext() != "png" {
		t.Errorf("Ext() = %q", info.Ext())
	}

	if _, err := Probe(nil); err == nil {
		t.Error("expected error for empty data")
	}
	if _, err := Probe([]byte("GIF? no")); err == nil {
		t.Error("expected error for unknown data")
	}
}

func TestInfoExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"jpeg", "jpg"},
		{"tiff", "tif"},
		{"webp", "webp"},
		{"bmp", "bmp"},
	}
	for _, tt := range tests {
		if got := (Info{Format: tt.format}).Ext(); got != tt.want {
			t.Errorf("Info{%q}.Ext() = %q, want %q", tt.format, got, tt.want)
		}
	}
}
