package cache

// Keyer builds cache keys. Implementations must be deterministic: the same
// inputs always give the same key.
type Keyer interface {
	// StatsKey identifies a stats snapshot from a source.
	StatsKey(source string) string
	// ArtifactKey identifies one rendered chart of the snapshot with the given
	// content hash.
	ArtifactKey(statsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Chart     string  `json:"chart"`
	Format    string  `json:"format"`
	Width     float64 `json:"width"`
	Scale     float64 `json:"scale,omitempty"`
	ThemeHash string  `json:"theme,omitempty"`
}

// DefaultKeyer produces "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) StatsKey(source string) string {
	return hashKey("stats", source)
}

func (DefaultKeyer) ArtifactKey(statsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", statsHash, opts)
}
