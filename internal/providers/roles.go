package providers

import (
	"fmt"
	"strings"
)

var sovitsLanguages = map[string]bool{"zh": true, "ja": true, "en": true}

// ParseRoles checks a role list and returns the role a test action uses.
// An empty list is valid and yields "".
//
// RolesNone lists are comma separated and yield their first entry. The
// other formats hold one role per line and yield the last line's name.
func ParseRoles(format RoleFormat, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	if format == RolesNone || format == "" {
		return Split(text)[0], nil
	}

	role := ""
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		parts := strings.Split(line, "#")
		switch format {
		case RolesSovits:
			if len(parts) != 3 {
				return "", roleLineError(n, "must have three #-separated parts: name.wav#text#lang")
			}
			if !strings.HasSuffix(parts[0], ".wav") {
				return "", roleLineError(n, "first part must be a .wav file name")
			}
			if !sovitsLanguages[parts[2]] {
				return "", roleLineError(n, "language must be zh, ja or en")
			}
		case RolesPair:
			if len(parts) != 2 {
				return "", roleLineError(n, "must have two #-separated parts: name.wav#text")
			}
		case RolesPairWAV:
			if len(parts) != 2 {
				return "", roleLineError(n, "must have two #-separated parts: name.wav#text")
			}
			if !strings.HasSuffix(parts[0], ".wav") {
				return "", roleLineError(n, "first part must be a .wav file name")
			}
		default:
			return "", fmt.Errorf("unknown role format %q", format)
		}
		role = parts[0]
	}
	return role, nil
}

func roleLineError(n int, msg string) error {
	return fmt.Errorf("role line %d %s", n+1, msg)
}
