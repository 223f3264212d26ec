// Package assets validates, inspects and stages model files before they are
// handed to the renderer.
package assets

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported model format")
	ErrInvalidModel      = errors.New("invalid model file")
)

// Supported extensions, lower case.
var supported = map[string]string{
	".glb":  "glb",
	".gltf": "gltf",
}

// Format returns "glb" or "gltf" for a supported path.
func Format(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := supported[ext]; ok {
		return f, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func IsSupported(path string) bool {
	_, err := Format(path)
	return err == nil
}

// Info summarizes a glTF document.
type Info struct {
	Name       string
	Format     string
	Generator  string
	Version    string
	Scenes     int
	Nodes      int
	Meshes     int
	Primitives int
	Materials  int
	Textures   int
	Animations int

	// External lists sidecar files (buffers, images) referenced by relative
	// URI, slash separated and unescaped.
	External []string
}

// Inspect decodes the document at path. Files that qmuntal/gltf cannot decode
// are reported as ErrInvalidModel.
func Inspect(path string) (Info, error) {
	format, err := Format(path)
	if err != nil {
		return Info{}, err
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %s: %v", ErrInvalidModel, filepath.Base(path), err)
	}

	info := Info{
		Name:       filepath.Base(path),
		Format:     format,
		Generator:  doc.Asset.Generator,
		Version:    doc.Asset.Version,
		Scenes:     len(doc.Scenes),
		Nodes:      len(doc.Nodes),
		Meshes:     len(doc.Meshes),
		Materials:  len(doc.Materials),
		Textures:   len(doc.Textures),
		Animations: len(doc.Animations),
	}
	for _, m := range doc.Meshes {
		info.Primitives += len(m.Primitives)
	}
	if info.Meshes == 0 {
		return info, fmt.Errorf("%w: %s has no meshes", ErrInvalidModel, info.Name)
	}

	seen := make(map[string]bool)
	add := func(uri string) error {
		rel, err := sidecarPath(uri)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidModel, info.Name, err)
		}
		if !seen[rel] {
			seen[rel] = true
			info.External = append(info.External, rel)
		}
		return nil
	}
	for _, b := range doc.Buffers {
		if b.URI == "" || b.IsEmbeddedResource() {
			continue
		}
		if err := add(b.URI); err != nil {
			return info, err
		}
	}
	for _, img := range doc.Images {
		if img.URI == "" || img.IsEmbeddedResource() {
			continue
		}
		if err := add(img.URI); err != nil {
			return info, err
		}
	}
	return info, nil
}

// sidecarPath turns a relative URI into a slash separated path that stays
// inside the model's directory.
func sidecarPath(uri string) (string, error) {
	p, err := url.PathUnescape(uri)
	if err != nil {
		return "", fmt.Errorf("bad uri %q: %v", uri, err)
	}
	if strings.Contains(p, "://") || !filepath.IsLocal(filepath.FromSlash(p)) {
		return "", fmt.Errorf("uri %q points outside the model directory", uri)
	}
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(p))), nil
}
