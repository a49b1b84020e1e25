package search

import (
	"strings"

	"github.com/Cyclone1070/counterpart/internal/host"
)

func validate(q host.Query) error {
	if q.Name == "" {
		return ErrNameRequired
	}
	if strings.ContainsAny(q.Name, `/\`) {
		return ErrNameHasSlash
	}
	if q.Limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}

// escapeGlob makes name match itself literally in a glob by putting each
// metacharacter in its own character class.
func escapeGlob(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', '{', '}':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
