package game

import (
	"fmt"
	"log"
	"path"

	"github.com/decker502/acclimation/pkg/embedded"
	"github.com/decker502/acclimation/pkg/types"
	"gopkg.in/yaml.v3"
)

// AssetManifest represents the asset manifest loaded from YAML.
// It maps asset identifiers to paths relative to BasePath.
//
// Structure:
//
//	version: "1.0"
//	base_path: data
//	assets:
//	  Model.MainLevel: levels/level1.yaml
//	  VoiceOver.PleaseRemainCalm: audio/vo/pleaseRemainCalm.ogg
//
// Assets that are not listed are simply absent; callers decide how to degrade.
type AssetManifest struct {
	Version  string            `yaml:"version"`
	BasePath string            `yaml:"base_path"`
	Assets   map[string]string `yaml:"assets"`
}

// ParseAssetManifest parses manifest YAML and returns the identifier -> full path map.
func ParseAssetManifest(data []byte) (map[types.AssetID]string, error) {
	var manifest AssetManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse asset manifest: %w", err)
	}
	return manifest.resolve(), nil
}

// LoadAssetManifest reads the manifest at manifestPath (embedded first, then disk).
func LoadAssetManifest(manifestPath string) (map[types.AssetID]string, error) {
	data, err := embedded.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset manifest %s: %w", manifestPath, err)
	}
	urls, err := ParseAssetManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}
	for id, p := range urls {
		if !embedded.Exists(p) {
			log.Printf("[ResourceManager] Warning: %s 指向不存在的文件 %s", id, p)
		}
	}
	return urls, nil
}

func (m *AssetManifest) resolve() map[types.AssetID]string {
	urls := make(map[types.AssetID]string, len(m.Assets))
	for id, rel := range m.Assets {
		if rel == "" {
			continue
		}
		urls[types.AssetID(id)] = buildFullPath(m.BasePath, rel)
	}
	return urls
}

// buildFullPath constructs the full path of an asset from the manifest base path.
//
//	buildFullPath("data", "gui/title.yaml") == "data/gui/title.yaml"
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return path.Clean(relativePath)
	}
	return path.Join(basePath, relativePath)
}
