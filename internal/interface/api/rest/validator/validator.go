package validator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParsePositiveInt reads the leading integer of s, ignoring surrounding
// space and trailing garbage ("12abc" is 12). Missing, unparsable or
// non-positive values yield def.
func ParsePositiveInt(s string, def int) int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 1 {
		return def
	}

	return n
}

func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	return id, err == nil
}
