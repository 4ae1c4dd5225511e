// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package models

import (
	"strconv"
	"strings"
	"time"
)

// Slugify derives the URL-safe slug for a blog title: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, leading and
// trailing hyphens stripped, with a millisecond timestamp suffix for
// uniqueness. The slug is generated once, at creation.
func Slugify(title string, now time.Time) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	suffix := strconv.FormatInt(now.UnixMilli(), 10)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
