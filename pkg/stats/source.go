package stats

import (
	"context"
	"sync"
)

// Source produces a stats snapshot. Implementations must be safe for
// concurrent use; the HTTP service calls Stats once per request.
type Source interface {
	Stats(ctx context.Context) (*Stats, error)
}

// StaticSource always returns the same snapshot.
type StaticSource struct {
	s *Stats
}

// NewStaticSource wraps s. A nil s is served as empty stats.
func NewStaticSource(s *Stats) *StaticSource {
	if s == nil {
		s = &Stats{}
	}
	return &StaticSource{s: s}
}

func (src *StaticSource) Stats(context.Context) (*Stats, error) { return src.s, nil }

// FileSource re-reads a stats file on every call, so edits show up without a
// restart. The last good snapshot is kept if a later read fails validation.
type FileSource struct {
	Path string

	mu   sync.Mutex
	last *Stats
}

// NewFileSource returns a source reading path.
func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (src *FileSource) Stats(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := Load(src.Path)

	src.mu.Lock()
	defer src.mu.Unlock()
	if err != nil {
		if src.last != nil {
			return src.last, nil
		}
		return nil, err
	}
	src.last = s
	return s, nil
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*MongoSource)(nil)
)
