// Text template expansion for text_format, alarm_command, and read_input_command.
//
// Grammar:
//
//	{elapsed_time} {start_time} {remaining_time} {timer_name}
//	{remaining_time:pretty}  -> 1h2m3s
//	{remaining_time:clock}   -> 1:02:03
//	{{ and }}                -> literal braces
package timer

import (
	"math"
	"strconv"
	"strings"
)

type templateValues struct {
	elapsed   float64
	start     int
	remaining float64
	timerName string
}

func expandTemplate(text string, values templateValues) (string, error) {
	var out strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			out.WriteByte('{')
			i++
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			out.WriteByte('}')
			i++
		case c == '}':
			return "", newError(ErrBadFormat, "single '}' in %s", text)
		case c == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return "", newError(ErrBadFormat, "bad syntax in %s", text)
			}
			field := text[i+1 : i+end]
			rendered, err := renderField(field, values)
			if err != nil {
				return "", err
			}
			out.WriteString(rendered)
			i += end
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), nil
}

func renderField(field string, values templateValues) (string, error) {
	key, style, _ := strings.Cut(field, ":")
	var seconds float64
	switch key {
	case "elapsed_time":
		seconds = values.elapsed
	case "start_time":
		seconds = float64(values.start)
	case "remaining_time":
		seconds = values.remaining
	case "timer_name":
		if style != "" {
			return "", newError(ErrBadFormat, "unknown style %q for timer_name", style)
		}
		return values.timerName, nil
	default:
		return "", newError(ErrBadFormat, "bad key %q", key)
	}

	switch style {
	case "":
		if key == "start_time" {
			return strconv.Itoa(values.start), nil
		}
		return formatFloat(seconds), nil
	case "pretty":
		return SecondsToPretty(wholeSeconds(seconds)), nil
	case "clock":
		return SecondsToClock(wholeSeconds(seconds)), nil
	default:
		return "", newError(ErrBadFormat, "unknown style %q for %s", style, key)
	}
}

// wholeSeconds truncates toward zero so -0.4s renders as "0s". Out-of-range
// values clamp to ±math.MaxInt.
func wholeSeconds(seconds float64) int {
	switch {
	case seconds >= math.MaxInt:
		return math.MaxInt
	case seconds <= -math.MaxInt:
		return -math.MaxInt
	}
	return int(math.Trunc(seconds))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
