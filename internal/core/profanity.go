package core

import (
	"regexp"
	"strings"
)

const profanityMask = "****"

var denylist = []string{"fuck", "shit", "bitch", "asshole", "dick", "pussy", "cunt", "nigger", "faggot"}

var profanity = regexp.MustCompile(`(?i)\b(?:` + strings.Join(denylist, "|") + `)\b`)

// MaskProfanity replaces whole-word denylist matches, ignoring case.
func MaskProfanity(s string) string {
	return profanity.ReplaceAllString(s, profanityMask)
}
