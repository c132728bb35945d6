package translation

import (
	"fmt"
	"strings"
)

// Styles is the closed set of tone-rewrite styles.
var Styles = []string{
	"joy", "sadness", "anger", "fear", "disgust",
	"sarcastic", "polite", "formal", "casual", "motivational",
}

// InvalidStyleError reports a style outside the recognized set; it carries
// the full allowed set so callers can surface it.
type InvalidStyleError struct {
	Style   string
	Allowed []string
}

func (e InvalidStyleError) Error() string {
	return fmt.Sprintf("invalid style %q, allowed: %s", e.Style, strings.Join(e.Allowed, ", "))
}

// ValidateStyle checks membership in the style set.
func ValidateStyle(style string) error {
	for _, s := range Styles {
		if s == style {
			return nil
		}
	}
	return InvalidStyleError{Style: style, Allowed: Styles}
}
