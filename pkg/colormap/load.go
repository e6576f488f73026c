package colormap

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/viewgrid/pkg/errors"
)

// Set is the collection of named colormaps found in one file.
type Set struct {
	Source string
	maps   map[string]*CTF
}

func newSet(source string) *Set {
	return &Set{Source: source, maps: make(map[string]*CTF)}
}

// add stores c under its name. Names must be unique within one file; an
// unnamed colormap counts as the name "".
func (s *Set) add(c *CTF) error {
	if _, dup := s.maps[c.Name()]; dup {
		if c.Name() == "" {
			return errors.New(errors.ErrCodeInvalidColorMap, "%s: more than one unnamed colormap", s.Source)
		}
		return errors.New(errors.ErrCodeInvalidColorMap, "%s: duplicate colormap name %s", s.Source, c.Name())
	}
	s.maps[c.Name()] = c
	return nil
}

// Len returns the number of colormaps.
func (s *Set) Len() int { return len(s.maps) }

// Names returns the colormap names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.maps))
	for n := range s.maps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the colormap called name. An empty name selects the only
// colormap of a single-entry set.
func (s *Set) Get(name string) (*CTF, error) {
	switch {
	case len(s.maps) == 0:
		return nil, errors.New(errors.ErrCodeInvalidColorMap, "%s: no named colormaps found", s.Source)
	case name == "" && len(s.maps) == 1:
		for _, c := range s.maps {
			return c, nil
		}
	case name == "":
		return nil, errors.New(errors.ErrCodeInvalidColorMap,
			"a colormap name is required, choose one of: %s", strings.Join(s.Names(), ", "))
	}
	c, ok := s.maps[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidColorMap,
			"unknown colormap name %s, choose one of: %s", name, strings.Join(s.Names(), ", "))
	}
	return c, nil
}

// ResolvePath appends ".json" to paths without an extension.
func ResolvePath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".json"
	}
	return path
}

// LoadFile reads a .json or .xml colormap file.
func LoadFile(path string) (*Set, error) {
	path = ResolvePath(path)
	if err := errors.RequireFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingFile, err, "open %s", path)
	}
	defer f.Close()

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(f, name)
	case ".xml":
		return ParseXML(f, name)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: unsupported colormap format %q", path, filepath.Ext(path))
}

// Load reads path and selects one colormap, applying discretization.
func Load(path, name string, discretize bool, tableSize int) (*CTF, error) {
	set, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := set.Get(name)
	if err != nil {
		return nil, err
	}
	return c.With(discretize, tableSize)
}
