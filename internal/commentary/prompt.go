// Package commentary produces the end-screen flavor text: a short line from
// Gemini about the player's result, with fixed lines whenever the service
// cannot answer.
package commentary

import (
	"fmt"

	"github.com/vovakirdan/office-saver/internal/games/saver"
)

// Fixed lines used when no generated text is available.
const (
	NoClientLine = saver.FallbackFeedback
	EmptyLine    = "Energy saved! Great job."
	LostLine     = "System Overload! Try to move faster next time."
)

// Prompt builds the request text for a finished game.
func Prompt(watts int, survived bool) string {
	if survived {
		return fmt.Sprintf("I just played a game where I turned off computer screens to save electricity. "+
			"I saved %d Watts in 30 seconds. Write a very short, witty, and enthusiastic compliment "+
			"(max 2 sentences) about my energy-saving skills and one quick real-world tip for saving PC power.", watts)
	}
	return fmt.Sprintf("I played a game about turning off screens but I failed and the system overloaded. "+
		"I only saved %d Watts. Give me a short, encouraging roast (gentle humor) telling me to be faster "+
		"next time to save the planet (max 2 sentences).", watts)
}

// ErrorLine is shown when the request failed.
func ErrorLine(watts int, survived bool) string {
	if survived {
		return fmt.Sprintf("Amazing reflex! You saved %d Watts of pure energy.", watts)
	}
	return LostLine
}
