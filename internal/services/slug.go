package services

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

func Slugify(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}

// uniqueSlug returns the first of base, base-2, base-3, ... for which taken
// reports false. exceptID excludes the row being updated.
func uniqueSlug(ctx context.Context, base string, exceptID int64, taken func(ctx context.Context, slug string, exceptID int64) (bool, error)) (string, error) {
	candidate := base
	counter := 2
	for {
		exists, err := taken(ctx, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(counter)
		counter++
	}
}
