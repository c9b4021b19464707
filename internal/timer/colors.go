// Purpose: Color arithmetic, looping color trajectories, and text decoration per ColorOption.
// Exports: Color, FromHex, LinearTrajectory, MultiColorLinearLoop, Decoration, Colorize.
// Role: Display collaborator of the snapshot writer; pure functions of the clock values.
// Invariants: Channels saturate at 0 and 255; trajectories are deterministic and loop.
// Notes: Animation phase is whole elapsed seconds, so paused timers hold their colors.
package timer

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

type Color struct {
	R, G, B int
}

func clampChannel(v int) int {
	return min(max(v, 0), 255)
}

func (c Color) Add(other Color) Color {
	return Color{clampChannel(c.R + other.R), clampChannel(c.G + other.G), clampChannel(c.B + other.B)}
}

func (c Color) Sub(other Color) Color {
	return Color{clampChannel(c.R - other.R), clampChannel(c.G - other.G), clampChannel(c.B - other.B)}
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{int(r), int(g), int(b)}
}

// FromHex parses "#RGB" or "#RRGGBB".
func FromHex(text string) (Color, error) {
	digits := strings.TrimPrefix(text, "#")
	if len(digits) != 3 && len(digits) != 6 {
		return Color{}, newError(ErrBadColor, "%s must have 3 or 6 hex digits.", text)
	}
	parsed, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, newError(ErrBadColor, "%s has invalid hex chars", text)
	}
	return fromColorful(parsed), nil
}

func mustHex(text string) Color {
	c, err := FromHex(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Trajectory maps a step index to a color.
type Trajectory func(step int) Color

func blend(from, to Color, i, steps int) Color {
	mix := func(a, b int) int {
		return clampChannel((a*(steps-i) + b*i) / steps)
	}
	return Color{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B)}
}

// LinearTrajectory walks from `from` (step 0) to `to` (step `steps`), clamping outside.
func LinearTrajectory(steps int, from, to Color) Trajectory {
	steps = max(steps, 1)
	return func(step int) Color {
		return blend(from, to, min(max(step, 0), steps), steps)
	}
}

// MultiColorLinearLoop blends between consecutive control colors, `steps` per segment,
// and wraps from the last color back to the first.
func MultiColorLinearLoop(steps int, colors []Color) Trajectory {
	steps = max(steps, 1)
	period := steps * len(colors)
	return func(step int) Color {
		if len(colors) == 0 {
			return Color{}
		}
		n := ((step % period) + period) % period
		segment, i := n/steps, n%steps
		return blend(colors[segment], colors[(segment+1)%len(colors)], i, steps)
	}
}

var (
	colorRed     = mustHex("#BB0A21")
	colorDarkRed = mustHex("#4A040D")
	colorYellow  = mustHex("#FFBC42")
	colorGreen   = mustHex("#04F06A")
	colorBlack   = mustHex("#000000")

	palette = []Color{
		colorRed,
		colorYellow,
		mustHex("#5EB1BF"),
		mustHex("#F564A9"),
		colorGreen,
	}

	rainbow = rainbowColors(6)
)

func rainbowColors(n int) []Color {
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = fromColorful(colorful.Hsv(float64(i)*360/float64(n), 1, 1))
	}
	return colors
}

const (
	rainbowSteps      = 8
	trafficLightSteps = 100
)

// Decoration is decorated text plus optional bar-level color and background.
type Decoration struct {
	Text       string
	Color      string
	Background string
}

func span(text string, c Color) string {
	return fmt.Sprintf("<span color='%s'>%s</span>", c.Hex(), text)
}

func spanRunes(text string, colorAt func(i int) Color) string {
	var b strings.Builder
	i := 0
	for _, r := range text {
		b.WriteString(span(string(r), colorAt(i)))
		i++
	}
	return b.String()
}

func paletteSpans(text string, phase int) string {
	return spanRunes(text, func(i int) Color {
		return palette[(phase+i)%len(palette)]
	})
}

// Colorize decorates text according to option.
func Colorize(text string, option ColorOption, elapsed, remaining float64) Decoration {
	phase := int(math.Max(elapsed, 0))
	switch option {
	case ColorColorful:
		return Decoration{Text: paletteSpans(text, phase)}
	case ColorColorfulOnNegatives:
		if remaining < 0 {
			return Decoration{Text: paletteSpans(text, phase)}
		}
	case ColorRedOnNegatives:
		if remaining < 0 {
			return Decoration{Text: span(text, colorRed)}
		}
	case ColorPulsatingTrafficLight:
		return Decoration{Text: text, Color: trafficLight(elapsed, remaining, phase).Hex()}
	case ColorRainbowRoad:
		road := MultiColorLinearLoop(rainbowSteps, rainbow)
		return Decoration{Text: spanRunes(text, func(i int) Color { return road(phase + i) })}
	case ColorBackgroundRainbowRoad:
		road := MultiColorLinearLoop(rainbowSteps, rainbow)
		return Decoration{Text: text, Color: colorBlack.Hex(), Background: road(phase).Hex()}
	}
	return Decoration{Text: text}
}

// trafficLight goes green→yellow→red as the countdown runs out, then pulses.
func trafficLight(elapsed, remaining float64, phase int) Color {
	if remaining < 0 {
		return MultiColorLinearLoop(1, []Color{colorRed, colorDarkRed})(phase)
	}
	total := elapsed + remaining
	if total <= 0 {
		return colorRed
	}
	step := int(elapsed / total * 2 * trafficLightSteps)
	if step <= trafficLightSteps {
		return LinearTrajectory(trafficLightSteps, colorGreen, colorYellow)(step)
	}
	return LinearTrajectory(trafficLightSteps, colorYellow, colorRed)(step - trafficLightSteps)
}
