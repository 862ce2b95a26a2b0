// Package assets describes the game's artwork and sounds. The manifest gives
// each sprite its size in field units, which is what collision sizing uses.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ErrRequiredAsset is returned by Verify when a required asset is missing.
var ErrRequiredAsset = errors.New("required asset missing")

//go:embed manifest.yaml
var embeddedManifest []byte

// RequiredSprites and RequiredSounds must be present for the game to start.
var (
	RequiredSprites = []string{"player", "asteroid"}
	RequiredSounds  = []string{"music"}
)

// Sprite is one entry of the manifest.
type Sprite struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Glyph    string  `yaml:"glyph"`
	File     string  `yaml:"file"` // Artwork, relative to the manifest
	Required bool    `yaml:"required"`
}

// Sound is one sound entry. A sound without a file plays as a terminal bell.
type Sound struct {
	File     string `yaml:"file"`
	Required bool   `yaml:"required"`
}

// Manifest lists the available assets.
type Manifest struct {
	Sprites map[string]Sprite `yaml:"sprites"`
	Sounds  map[string]Sound  `yaml:"sounds"`
}

// Provider answers asset queries from a loaded manifest.
type Provider struct {
	manifest Manifest
	source   string
	dir      string // Base for relative asset files
}

// Load reads the manifest at path, or the embedded one when path is empty.
func Load(path string) (*Provider, error) {
	if path == "" {
		return Parse(embeddedManifest, "embedded")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	p, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	p.dir = filepath.Dir(path)
	return p, nil
}

// Parse builds a provider from manifest YAML.
func Parse(data []byte, source string) (*Provider, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: parse %s: %w", source, err)
	}
	if m.Sprites == nil {
		m.Sprites = make(map[string]Sprite)
	}
	if m.Sounds == nil {
		m.Sounds = make(map[string]Sound)
	}
	return &Provider{manifest: m, source: source}, nil
}

// Source returns where the manifest came from.
func (p *Provider) Source() string {
	return p.source
}

// Size returns a sprite's dimensions. A missing sprite is not an error:
// callers fall back to their configured sizes.
func (p *Provider) Size(key string) (w, h float64, ok bool) {
	s, ok := p.manifest.Sprites[key]
	if !ok || s.Width <= 0 || s.Height <= 0 {
		return 0, 0, false
	}
	return s.Width, s.Height, true
}

// Glyph returns the display rune for a sprite, or fallback if it has none.
func (p *Provider) Glyph(key string, fallback rune) rune {
	s, ok := p.manifest.Sprites[key]
	if !ok || s.Glyph == "" {
		return fallback
	}
	return []rune(s.Glyph)[0]
}

// HasSound reports whether a sound key is in the manifest and ready to play.
func (p *Provider) HasSound(key string) bool {
	s, ok := p.manifest.Sounds[key]
	return ok && p.ready(s.File)
}

// ready reports whether an asset file can be read. An entry without a file
// is always ready.
func (p *Provider) ready(file string) bool {
	if file == "" {
		return true
	}
	if !filepath.IsAbs(file) && p.dir != "" {
		file = filepath.Join(p.dir, file)
	}
	f, err := os.Open(file) //#nosec G304 -- paths come from the operator's manifest
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// Counts returns the number of sprites and sounds.
func (p *Provider) Counts() (sprites, sounds int) {
	return len(p.manifest.Sprites), len(p.manifest.Sounds)
}

// Verify checks that every required asset is present and usable.
// All missing keys are reported together.
func (p *Provider) Verify() error {
	var missing []string
	for _, key := range requiredSpriteKeys(p.manifest) {
		if _, _, ok := p.Size(key); !ok || !p.ready(p.manifest.Sprites[key].File) {
			missing = append(missing, "sprite "+key)
		}
	}
	for _, key := range requiredSoundKeys(p.manifest) {
		if !p.HasSound(key) {
			missing = append(missing, "sound "+key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("assets: %w: %v", ErrRequiredAsset, missing)
	}
	return nil
}

// requiredSpriteKeys merges the fixed required sprites with any the manifest
// marks required.
func requiredSpriteKeys(m Manifest) []string {
	keys := append([]string(nil), RequiredSprites...)
	for key, s := range m.Sprites {
		if s.Required && !contains(keys, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func requiredSoundKeys(m Manifest) []string {
	keys := append([]string(nil), RequiredSounds...)
	for key, s := range m.Sounds {
		if s.Required && !contains(keys, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
