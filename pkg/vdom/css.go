package vdom

import "strconv"

// CSSValue is a structured CSS value.
type CSSValue interface {
	CSS() string
}

// CSSRaw is a CSS value used verbatim.
type CSSRaw string

func (v CSSRaw) CSS() string { return string(v) }

// Px is a length in pixels.
type Px float64

func (v Px) CSS() string { return formatFloat(float64(v)) + "px" }

// Rem is a length relative to the root font size.
type Rem float64

func (v Rem) CSS() string { return formatFloat(float64(v)) + "rem" }

// Percent is a percentage.
type Percent float64

func (v Percent) CSS() string { return formatFloat(float64(v)) + "%" }

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) CSS() string {
	return "rgb(" + strconv.Itoa(int(c.R)) + ", " + strconv.Itoa(int(c.G)) + ", " + strconv.Itoa(int(c.B)) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
