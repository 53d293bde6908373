package files

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DefaultImageExtensions are accepted when no allow-list is configured.
var DefaultImageExtensions = []string{"jpg", "jpeg", "png", "gif"}

// Filter accepts uploads whose file name carries an allowed extension.
type Filter struct {
	allowed map[string]bool
}

// NewFilter builds a filter for the given extensions, with or without the dot.
func NewFilter(extensions []string) *Filter {
	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[normalize(ext)] = true
	}
	return &Filter{allowed: allowed}
}

// Allow reports whether fh survives the filter. A nil header never does.
func (f *Filter) Allow(fh *multipart.FileHeader) bool {
	if fh == nil {
		return false
	}
	return f.AllowName(fh.Filename)
}

// AllowName applies the filter to a bare file name.
func (f *Filter) AllowName(name string) bool {
	ext := normalize(filepath.Ext(name))
	return ext != "" && f.allowed[ext]
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
