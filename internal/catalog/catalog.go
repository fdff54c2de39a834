// Package catalog keeps the images known to the server in memory.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/image-fx-mcp/internal/codec"
	"github.com/ironsheep/image-fx-mcp/internal/hasher"
)

// ErrNotFound is returned for ids that are not in the catalog.
var ErrNotFound = errors.New("image not found")

// dirExtensions lists the file extensions LoadDir registers.
var dirExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Image is one stored image: its encoded bytes plus the metadata needed to
// list it without decoding again.
type Image struct {
	ID     string
	Name   string
	Format codec.Format
	Data   []byte
	Hash   string
	Width  int
	Height int
	Bands  int
	Frames int
}

// Size returns the image size in the "W*H*B" form.
func (img *Image) Size() string {
	return fmt.Sprintf("%d*%d*%d", img.Width, img.Height, img.Bands)
}

// Info is the listing entry for one image.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
}

// Info returns the listing entry for img.
func (img *Image) Info() Info {
	return Info{ID: img.ID, Name: img.Name, Type: img.Format.MediaType(), Size: img.Size()}
}

// Catalog is a thread-safe in-memory image store keyed by random UUIDs.
type Catalog struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		images: make(map[string]*Image),
	}
}

// Add decodes data to validate it and stores it under a new id. An empty
// format is detected from the data.
func (c *Catalog) Add(name string, data []byte, format codec.Format) (*Image, error) {
	var err error
	if format == "" {
		if format, err = codec.Detect(data); err != nil {
			return nil, err
		}
	}
	seq, err := codec.Decode(data, format)
	if err != nil {
		return nil, err
	}
	first := seq.First()

	img := &Image{
		ID:     uuid.NewString(),
		Name:   name,
		Format: format,
		Data:   data,
		Hash:   hasher.ContentHash(data),
		Width:  first.Width(),
		Height: first.Height(),
		Bands:  first.Bands(),
		Frames: len(seq.Frames),
	}

	c.mu.Lock()
	c.images[img.ID] = img
	c.mu.Unlock()

	return img, nil
}

// LoadFile reads and registers one image file. An empty name defaults to the
// file's base name.
func (c *Catalog) LoadFile(path, name string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if name == "" {
		name = filepath.Base(path)
	}
	format, err := codec.FormatFromFilename(path)
	if err != nil {
		format = ""
	}
	img, err := c.Add(name, data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// LoadDir recursively registers every .png, .jpg, .jpeg and .gif file under
// dir and returns how many were added. Files that fail to decode are logged
// and skipped.
func (c *Catalog) LoadDir(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to open image directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", dir)
	}

	loaded := 0
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !dirExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		if _, err := c.LoadFile(path, ""); err != nil {
			slog.Warn("catalog: skipping image", "path", path, "error", err)
			return nil
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("failed to walk image directory: %w", err)
	}

	slog.Info("catalog: loaded image directory", "dir", dir, "images", loaded)
	return loaded, nil
}

// Get returns the image stored under id.
func (c *Catalog) Get(id string) (*Image, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return img, nil
}

// Delete removes the image stored under id.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(c.images, id)
	return nil
}

// List returns every image sorted by name, then id.
func (c *Catalog) List() []Info {
	c.mu.RLock()
	out := make([]Info, 0, len(c.images))
	for _, img := range c.images {
		out = append(out, img.Info())
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of stored images.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes every image.
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Image)
	c.mu.Unlock()
}
