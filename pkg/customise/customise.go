// Package customise models the customisations a user can apply to a
// selected icon: rotation, flips, color and size.
package customise

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/iconfinder/pkg/errors"
	"github.com/matzehuels/iconfinder/pkg/iconset"
)

// Customisations of a selected icon. The zero value is the default.
type Customisations struct {
	Rotate int    `json:"rotate,omitempty"` // quarter turns, 0-3 after Normalize
	HFlip  bool   `json:"hFlip,omitempty"`
	VFlip  bool   `json:"vFlip,omitempty"`
	Color  string `json:"color,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

var sizeRe = regexp.MustCompile(`^(auto|unset|none|\d+(\.\d+)?(px|em|rem|%)?)$`)

// ParseRotation parses a rotation into quarter turns. Accepted forms are
// plain quarter turns ("1"), degrees ("90deg") and percentages ("25%").
// Values that are not whole quarter turns are rejected.
func ParseRotation(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	unit := 1.0
	value := s
	switch {
	case strings.HasSuffix(s, "deg"):
		value, unit = strings.TrimSuffix(s, "deg"), 90
	case strings.HasSuffix(s, "%"):
		value, unit = strings.TrimSuffix(s, "%"), 25
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid rotation %q", s)
	}
	turns := n / unit
	if turns != float64(int(turns)) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "rotation %q is not a multiple of 90 degrees", s)
	}
	return ((int(turns) % 4) + 4) % 4, nil
}

// ValidateSize checks a width or height value. Empty means unset.
func ValidateSize(s string) error {
	if s == "" || sizeRe.MatchString(s) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid size %q", s)
}

// Normalize returns c with rotation reduced to 0-3 and whitespace trimmed.
func (c Customisations) Normalize() Customisations {
	c.Rotate = ((c.Rotate % 4) + 4) % 4
	c.Color = strings.TrimSpace(c.Color)
	c.Width = strings.TrimSpace(c.Width)
	c.Height = strings.TrimSpace(c.Height)
	return c
}

// Validate checks the size fields.
func (c Customisations) Validate() error {
	if err := ValidateSize(c.Width); err != nil {
		return err
	}
	return ValidateSize(c.Height)
}

// IsDefault reports whether c changes nothing.
func (c Customisations) IsDefault() bool {
	return c.Normalize() == Customisations{}
}

// Equal compares normalized customisations.
func (c Customisations) Equal(o Customisations) bool {
	return c.Normalize() == o.Normalize()
}

// Transform returns the rotate and flip part of c.
func (c Customisations) Transform() iconset.Transform {
	return iconset.NewTransform(c.Rotate, c.HFlip, c.VFlip)
}

// Merge applies c on top of the transform an icon already carries, as
// for a transformed alias, and returns the transform to render the body
// with.
func (c Customisations) Merge(t iconset.Transform) iconset.Transform {
	return t.Compose(c.Transform())
}

// Params encodes c as Iconify API query parameters. Default fields are
// omitted.
func (c Customisations) Params() url.Values {
	c = c.Normalize()
	v := url.Values{}
	if c.Rotate != 0 {
		v.Set("rotate", strconv.Itoa(c.Rotate*90)+"deg")
	}
	switch {
	case c.HFlip && c.VFlip:
		v.Set("flip", "horizontal,vertical")
	case c.HFlip:
		v.Set("flip", "horizontal")
	case c.VFlip:
		v.Set("flip", "vertical")
	}
	if c.Color != "" {
		v.Set("color", c.Color)
	}
	if c.Width != "" {
		v.Set("width", c.Width)
	}
	if c.Height != "" {
		v.Set("height", c.Height)
	}
	return v
}
