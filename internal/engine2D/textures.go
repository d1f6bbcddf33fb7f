package engine2D

import (
	"fmt"
	"image"
	"sync"

	"ambient-portfolio/internal/convert"
	"ambient-portfolio/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxBackgroundDecodes = 4

// TextureCache decodes artworks off the render goroutine and uploads them
// to the GPU on it. Decoding is safe from any goroutine; Upload, Get and
// Close must run on the render loop.
type TextureCache struct {
	Resolve func(name string) string
	Decode  func(path string) (image.Image, error)

	mu       sync.Mutex
	decoded  map[string]image.Image
	pending  map[string]bool
	failed   map[string]error
	textures map[string]rl.Texture2D
	sem      chan struct{}
	wg       sync.WaitGroup
}

func NewTextureCache(resolve func(name string) string) *TextureCache {
	if resolve == nil {
		resolve = utils.FindImageFile
	}
	return &TextureCache{
		Resolve:  resolve,
		Decode:   convert.DecodeImage,
		decoded:  make(map[string]image.Image),
		pending:  make(map[string]bool),
		failed:   make(map[string]error),
		textures: make(map[string]rl.Texture2D),
		sem:      make(chan struct{}, maxBackgroundDecodes),
	}
}

// Load decodes name now and queues it for upload. The readiness probe for
// critical images calls it directly.
func (c *TextureCache) Load(name string) error {
	c.mu.Lock()
	if _, ok := c.textures[name]; ok {
		c.mu.Unlock()
		return nil
	}
	if _, ok := c.decoded[name]; ok {
		c.mu.Unlock()
		return nil
	}
	if err, ok := c.failed[name]; ok {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	path := c.Resolve(name)
	var img image.Image
	err := fmt.Errorf("artwork %s not found", name)
	if path != "" {
		img, err = c.Decode(path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, name)
	if err != nil {
		c.failed[name] = err
		return err
	}
	c.decoded[name] = img
	return nil
}

// Request starts a background decode unless one is known already.
func (c *TextureCache) Request(name string) {
	c.mu.Lock()
	_, uploaded := c.textures[name]
	_, decoded := c.decoded[name]
	_, failed := c.failed[name]
	if uploaded || decoded || failed || c.pending[name] {
		c.mu.Unlock()
		return
	}
	c.pending[name] = true
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.sem <- struct{}{}
		defer func() { <-c.sem }()
		if err := c.Load(name); err != nil {
			utils.Warn("Textures: %v", err)
		}
	}()
}

// Upload moves up to budget decoded images to the GPU.
func (c *TextureCache) Upload(budget int) int {
	c.mu.Lock()
	batch := make(map[string]image.Image, budget)
	for name, img := range c.decoded {
		if len(batch) >= budget {
			break
		}
		batch[name] = img
		delete(c.decoded, name)
	}
	c.mu.Unlock()

	for name, img := range batch {
		rlImg := rl.NewImageFromImage(img)
		tex := rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		c.mu.Lock()
		c.textures[name] = tex
		c.mu.Unlock()
		utils.Debug("Textures: uploaded %s (%dx%d)", name, tex.Width, tex.Height)
	}
	return len(batch)
}

// Get returns the texture for name, requesting it when it is not loaded.
func (c *TextureCache) Get(name string) (rl.Texture2D, bool) {
	c.mu.Lock()
	tex, ok := c.textures[name]
	c.mu.Unlock()
	if !ok {
		c.Request(name)
	}
	return tex, ok
}

// Close waits for running decodes and frees every texture.
func (c *TextureCache) Close() {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, tex := range c.textures {
		rl.UnloadTexture(tex)
		delete(c.textures, name)
	}
	c.decoded = make(map[string]image.Image)
}
