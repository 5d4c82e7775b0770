// Package fonts provides the typefaces used to rasterize charts.
//
// The Go font family is compiled into the binary through
// golang.org/x/image/font/gofont, so PNG output needs no system fonts.
// Parsed faces are cached per (family, bold, size).
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// CSS font-family stacks written into SVG output. The monospace stack is used
// for numbers so counts line up.
const (
	SansFamily = `'Inter', 'Segoe UI', 'Helvetica Neue', Arial, sans-serif`
	MonoFamily = `'JetBrains Mono', 'Fira Code', Menlo, Consolas, monospace`
)

type key struct {
	mono bool
	bold bool
	size float64
}

var (
	mu     sync.Mutex
	parsed = map[key]*truetype.Font{}
	faces  = map[key]font.Face{}
)

// TTF returns the raw TrueType data for the requested variant.
func TTF(mono, bold bool) []byte {
	switch {
	case mono && bold:
		return gomonobold.TTF
	case mono:
		return gomono.TTF
	case bold:
		return gobold.TTF
	default:
		return goregular.TTF
	}
}

// Face returns a font face of the given pixel size. Faces are shared; callers
// must not Close them.
func Face(mono, bold bool, size float64) (font.Face, error) {
	k := key{mono: mono, bold: bold, size: size}

	mu.Lock()
	defer mu.Unlock()

	if f, ok := faces[k]; ok {
		return f, nil
	}

	tk := key{mono: mono, bold: bold}
	tt, ok := parsed[tk]
	if !ok {
		var err error
		tt, err = truetype.Parse(TTF(mono, bold))
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		parsed[tk] = tt
	}

	f := truetype.NewFace(tt, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	faces[k] = f
	return f, nil
}
