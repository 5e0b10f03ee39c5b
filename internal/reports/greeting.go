package reports

import "time"

// Greeting returns the time-of-day greeting for the reference instant.
func Greeting(ref time.Time) string {
	switch h := ref.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 18:
		return "Good afternoon"
	case h >= 18 && h < 23:
		return "Good evening"
	default:
		return "Good night"
	}
}
