package render

import "image/color"

// Theme selects a color scheme
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// Colors is the palette used to draw a document
type Colors struct {
	Background color.NRGBA
	Grid       color.NRGBA

	Body  color.NRGBA // rectangles, arcs and lines
	Arrow color.NRGBA
	Text  color.NRGBA
	Join  color.NRGBA
	Wire  color.NRGBA

	// Current is used for the selected element's drawing
	Current color.NRGBA
	// Selection shades the selected element's bounds
	Selection color.NRGBA
}

// GetColors returns the palette for theme
func GetColors(theme Theme) *Colors {
	if theme == ThemeDark {
		return &Colors{
			Background: color.NRGBA{R: 30, G: 30, B: 30, A: 255},
			Grid:       color.NRGBA{R: 60, G: 60, B: 60, A: 255},
			Body:       color.NRGBA{R: 255, G: 100, B: 100, A: 255},
			Arrow:      color.NRGBA{R: 100, G: 255, B: 255, A: 255},
			Text:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},
			Join:       color.NRGBA{R: 0, G: 255, B: 0, A: 255},
			Wire:       color.NRGBA{R: 0, G: 255, B: 0, A: 255},
			Current:    color.NRGBA{R: 255, G: 255, B: 100, A: 255},
			Selection:  color.NRGBA{R: 255, G: 255, B: 100, A: 96},
		}
	}
	return &Colors{
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Grid:       color.NRGBA{R: 220, G: 220, B: 220, A: 255},
		Body:       color.NRGBA{R: 132, G: 0, B: 0, A: 255},
		Arrow:      color.NRGBA{R: 0, G: 100, B: 100, A: 255},
		Text:       color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		Join:       color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Wire:       color.NRGBA{R: 0, G: 132, B: 0, A: 255},
		Current:    color.NRGBA{R: 255, G: 0, B: 0, A: 255},
		Selection:  color.NRGBA{R: 255, G: 0, B: 0, A: 64},
	}
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme maps a config value to a Theme; anything unknown is light
func ParseTheme(s string) Theme {
	if s == "dark" {
		return ThemeDark
	}
	return ThemeLight
}
