// Package config loads font-audit settings from a YAML file.
//
// Every key is optional; omitted keys keep the defaults of
// fontscan.DefaultConfig and summary.DefaultStyle.
//
//	fallback:
//	  family: Default
//	  size: 11
//	labels:
//	  page: Slide
//	  family: Font
//	  sizes: Sizes
//	pageFormat: "Slide %d"
//	sizes:
//	  separator: ", "
//	  suffix: pt
//	header:
//	  fontSize: 12
//	  fill: "#4285F4"
//	  foreground: white
//	rows:
//	  odd: "#FFFFFF"
//	  even: whitesmoke
//	geometry:
//	  maxWidth: 500
//	  rowHeight: 24
//	  top: 40
//	  columnWeights: [1, 2, 2]
//
// Colors are hex triplets (#RGB or #RRGGBB, the '#' optional) or SVG color
// names.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/fontaudit/fontscan"
	"github.com/tsawler/fontaudit/model"
	"github.com/tsawler/fontaudit/summary"
)

// Settings is the resolved configuration.
type Settings struct {
	Scan  fontscan.Config
	Style summary.Style
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Scan:  fontscan.DefaultConfig(),
		Style: summary.DefaultStyle(),
	}
}

// file mirrors the YAML document. Pointers distinguish omitted keys from
// zero values.
type file struct {
	Fallback *struct {
		Family *string  `yaml:"family"`
		Size   *float64 `yaml:"size"`
	} `yaml:"fallback"`
	Labels *struct {
		Page   *string `yaml:"page"`
		Family *string `yaml:"family"`
		Sizes  *string `yaml:"sizes"`
	} `yaml:"labels"`
	PageFormat *string `yaml:"pageFormat"`
	Sizes      *struct {
		Separator *string `yaml:"separator"`
		Suffix    *string `yaml:"suffix"`
	} `yaml:"sizes"`
	Header *struct {
		FontSize   *float64 `yaml:"fontSize"`
		Fill       *string  `yaml:"fill"`
		Foreground *string  `yaml:"foreground"`
	} `yaml:"header"`
	Rows *struct {
		Odd  *string `yaml:"odd"`
		Even *string `yaml:"even"`
	} `yaml:"rows"`
	Geometry *struct {
		MaxWidth      *float64  `yaml:"maxWidth"`
		RowHeight     *float64  `yaml:"rowHeight"`
		Top           *float64  `yaml:"top"`
		ColumnWeights []float64 `yaml:"columnWeights"`
	} `yaml:"geometry"`
}

// Load reads settings from a YAML file.
func Load(filename string) (Settings, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Parse reads settings from YAML. Unknown keys are errors.
func Parse(r io.Reader) (Settings, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}
	return doc.apply(Default())
}

func (doc *file) apply(s Settings) (Settings, error) {
	if fb := doc.Fallback; fb != nil {
		if fb.Family != nil {
			if strings.TrimSpace(*fb.Family) == "" {
				return s, errors.New("fallback.family must not be empty")
			}
			s.Scan.FallbackFamily = *fb.Family
		}
		if fb.Size != nil {
			if !(*fb.Size >= 1 && *fb.Size < fontscan.MaxPointSize) {
				return s, fmt.Errorf("fallback.size must be between 1 and %d, got %v", fontscan.MaxPointSize, *fb.Size)
			}
			s.Scan.FallbackSize = int(*fb.Size + 0.5)
		}
	}

	if l := doc.Labels; l != nil {
		setString(&s.Style.PageLabel, l.Page)
		setString(&s.Style.FamilyLabel, l.Family)
		setString(&s.Style.SizesLabel, l.Sizes)
	}

	if doc.PageFormat != nil {
		format, err := pageFormat(*doc.PageFormat)
		if err != nil {
			return s, err
		}
		s.Style.PageFormat = format
	}

	if sz := doc.Sizes; sz != nil {
		setString(&s.Style.SizeSeparator, sz.Separator)
		setString(&s.Style.SizeSuffix, sz.Suffix)
	}

	if h := doc.Header; h != nil {
		if h.FontSize != nil {
			if *h.FontSize <= 0 {
				return s, fmt.Errorf("header.fontSize must be positive, got %v", *h.FontSize)
			}
			s.Style.HeaderFontSize = *h.FontSize
		}
		if err := setColor(&s.Style.HeaderFill, h.Fill, "header.fill"); err != nil {
			return s, err
		}
		if err := setColor(&s.Style.HeaderForeground, h.Foreground, "header.foreground"); err != nil {
			return s, err
		}
	}

	if r := doc.Rows; r != nil {
		if err := setColor(&s.Style.OddRowFill, r.Odd, "rows.odd"); err != nil {
			return s, err
		}
		if err := setColor(&s.Style.EvenRowFill, r.Even, "rows.even"); err != nil {
			return s, err
		}
	}

	if g := doc.Geometry; g != nil {
		for _, v := range []struct {
			name string
			src  *float64
			dst  *float64
		}{
			{"geometry.maxWidth", g.MaxWidth, &s.Style.MaxWidth},
			{"geometry.rowHeight", g.RowHeight, &s.Style.RowHeight},
			{"geometry.top", g.Top, &s.Style.Top},
		} {
			if v.src == nil {
				continue
			}
			if *v.src < 0 {
				return s, fmt.Errorf("%s must not be negative, got %v", v.name, *v.src)
			}
			*v.dst = *v.src
		}
		if g.ColumnWeights != nil {
			if len(g.ColumnWeights) != summary.Columns {
				return s, fmt.Errorf("geometry.columnWeights needs %d values, got %d", summary.Columns, len(g.ColumnWeights))
			}
			copy(s.Style.ColumnWeight[:], g.ColumnWeights)
		}
	}

	return s, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setColor(dst *model.Color, src *string, key string) error {
	if src == nil {
		return nil
	}
	c, err := ParseColor(*src)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = c
	return nil
}

// ParseColor parses a hex triplet or an SVG color name.
func ParseColor(s string) (model.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Color{}, errors.New("empty color")
	}

	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return model.Color{R: named.R, G: named.G, B: named.B}, nil
	}

	hex := s
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return model.Color{}, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return model.Color{R: r, G: g, B: b}, nil
}

// pageFormat turns a printf pattern with one %d verb into a page formatter.
func pageFormat(pattern string) (func(int) string, error) {
	if strings.Count(pattern, "%d") != 1 || strings.Count(pattern, "%") != strings.Count(pattern, "%%")*2+1 {
		return nil, fmt.Errorf("pageFormat %q must contain exactly one %%d", pattern)
	}
	return func(page int) string {
		return fmt.Sprintf(pattern, page)
	}, nil
}
