package game

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/stagefx/pkg/render"
)

// ResourceManager is responsible for centralized management of particle images.
// It loads and caches image files, generates the builtin procedural sprites,
// and resolves the image references used by effect layers.
//
// Reference forms accepted by Resolve:
//   - "builtin:ring"           procedural sprite (see BuiltinSpriteNames)
//   - "IMAGE_SPARK"            ID from the loaded ResourceConfig
//   - "assets/particles/a.png" plain file path
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Resolve is called from the game loop
// while particles are spawned, which is single-threaded.
type ResourceManager struct {
	imageCache  map[string]*ebiten.Image // Cache for loaded images: path -> Image
	resourceMap map[string]string        // Resource ID -> file path mapping
	spriteSize  int                      // Edge length of builtin sprites
}

// NewResourceManager creates a ResourceManager with empty caches.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		imageCache:  make(map[string]*ebiten.Image),
		resourceMap: make(map[string]string),
		spriteSize:  builtinSpriteSize,
	}
}

// SetSpriteSize changes the edge length used for builtin sprites generated afterwards.
func (rm *ResourceManager) SetSpriteSize(size int) {
	if size > 0 {
		rm.spriteSize = size
	}
}

// LoadResourceConfig loads an image alias table and registers its IDs.
func (rm *ResourceManager) LoadResourceConfig(path string) error {
	config, err := LoadResourceConfig(path)
	if err != nil {
		return err
	}
	rm.RegisterConfig(config)
	log.Printf("[ResourceManager] 已注册 %d 个图片资源", len(config.Images))
	return nil
}

// RegisterConfig registers every image ID of an already parsed configuration.
func (rm *ResourceManager) RegisterConfig(config *ResourceConfig) {
	for _, img := range config.Images {
		rm.resourceMap[img.ID] = buildFullPath(config.BasePath, img.Path)
	}
}

// LookupPath maps a resource ID to its path. Unknown IDs are returned unchanged.
func (rm *ResourceManager) LookupPath(ref string) string {
	if path, ok := rm.resourceMap[ref]; ok {
		return path
	}
	return ref
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
//
// Error handling:
//   - Returns an error if the file does not exist or cannot be opened.
//   - Returns an error if the image format is not supported or the file is corrupted.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadBuiltin generates (or returns the cached) procedural sprite.
func (rm *ResourceManager) LoadBuiltin(name string) (*ebiten.Image, error) {
	key := BuiltinPrefix + name
	if cachedImage, exists := rm.imageCache[key]; exists {
		return cachedImage, nil
	}
	img, err := GenerateBuiltinSprite(name, rm.spriteSize)
	if err != nil {
		return nil, err
	}
	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[key] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(path string) *ebiten.Image {
	return rm.imageCache[path]
}

// Resolve implements particle.ImageResolver.
func (rm *ResourceManager) Resolve(ref string) (render.Image, error) {
	path := rm.LookupPath(strings.TrimSpace(ref))
	if path == "" {
		return nil, fmt.Errorf("empty image reference")
	}
	if IsBuiltinRef(path) {
		img, err := rm.LoadBuiltin(strings.TrimPrefix(path, BuiltinPrefix))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
		}
		return img, nil
	}
	img, err := rm.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
	}
	return img, nil
}

// CachedCount returns the number of cached images.
func (rm *ResourceManager) CachedCount() int {
	return len(rm.imageCache)
}
