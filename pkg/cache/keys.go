package cache

import "fmt"

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the layout report of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the composition inputs that change a layout.
type LayoutKeyOpts struct {
	Rows        int  `json:"rows"`
	Cols        int  `json:"cols"`
	Size        int  `json:"size"`
	ShareCamera bool `json:"share_camera"`
}

// ArtifactKeyOpts are the render inputs that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Quality int    `json:"quality,omitempty"`
	Fonts   bool   `json:"fonts,omitempty"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return fmt.Sprintf("%s.%s", hashKey("artifact", sceneHash, opts), opts.Format)
}
