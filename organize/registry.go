package organize

import (
	"path/filepath"
	"strings"
)

// Category is a named bucket of file extensions. Extensions are stored
// lower-case with the leading dot and compared case-insensitively.
type Category struct {
	Name       string
	Extensions []string
}

// Registry is an ordered list of categories. Order matters: when a
// misconfigured registry maps one extension to several categories,
// classification picks the first match in registry order.
type Registry []Category

// DefaultRegistry returns the built-in categories.
func DefaultRegistry() Registry {
	return Registry{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tiff", ".heic"}},
		{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".md", ".xls", ".xlsx", ".ppt", ".pptx"}},
		{Name: "Videos", Extensions: []string{".mp4", ".webm", ".mov", ".flv", ".mkv", ".avi", ".wmv", ".mpg"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".ogg", ".aac", ".m4a"}},
	}
}

// Names returns the category names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, cat := range r {
		names[i] = cat.Name
	}
	return names
}

// ExtensionsOf looks up a category by name. The match is case-insensitive,
// so "images" finds the canonical "Images" category.
func (r Registry) ExtensionsOf(name string) ([]string, error) {
	for _, cat := range r {
		if strings.EqualFold(cat.Name, name) {
			return cat.Extensions, nil
		}
	}
	return nil, &ConfigError{Reason: "unknown category " + name}
}

// Classify returns the category name for an extension, or false when no
// category recognizes it. First match in registry order wins.
func (r Registry) Classify(ext string) (string, bool) {
	ext = NormalizeExt(ext)
	for _, cat := range r {
		for _, e := range cat.Extensions {
			if e == ext {
				return cat.Name, true
			}
		}
	}
	return "", false
}

// NormalizeExt lower-cases an extension and ensures the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtOf returns the normalized extension of a path.
func ExtOf(path string) string {
	return NormalizeExt(filepath.Ext(path))
}
