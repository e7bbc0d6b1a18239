// Package loader turns textual tree descriptions into bt descriptors.
//
// Four formats are built in: an indentation based text notation ("text",
// *.bt), YAML, JSON and HCL. All of them produce the same bt.Descriptor shape
// and report structural problems as bt.ErrMalformedDescriptor.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeusync/behave/internal/core/bt"
)

// ErrUnknownFormat is returned when a format name or file extension is not recognized.
var ErrUnknownFormat = errors.New("unknown tree format")

// Format is a concrete syntax for tree descriptors.
type Format interface {
	bt.Parser
	Name() string
	Extensions() []string
}

var formats = []Format{Text{}, YAML{}, JSON{}, HCL{}}

// Formats lists the built-in formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	for _, f := range formats {
		if strings.EqualFold(f.Name(), name) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ForPath picks a format from the file extension of path.
func ForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range formats {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
}

// Resolve returns the named format, or the one matching path when name is empty.
func Resolve(name, path string) (Format, error) {
	if name != "" {
		return Lookup(name)
	}
	return ForPath(path)
}

// LoadFile reads and parses path. format may be empty to choose by extension.
func LoadFile(path, format string) (*bt.Descriptor, error) {
	f, err := Resolve(format, path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", path, err)
	}
	desc, err := f.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", bt.ErrMalformedDescriptor, fmt.Sprintf(format, args...))
}
