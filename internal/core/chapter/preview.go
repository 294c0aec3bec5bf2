// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "unicode/utf8"

const (
	// PreviewLength is the number of characters kept in a content preview.
	PreviewLength = 100

	// previewFetchLength is how much of a body listing queries read; one extra
	// character tells a truncated body from one that fits exactly.
	previewFetchLength = PreviewLength + 1

	previewEllipsis = "..."
)

// Preview shortens content for listings.
//
// Bodies longer than [PreviewLength] characters are cut to that many
// characters and suffixed with "..."; shorter ones are returned unchanged.
// Nil or empty content has no preview (nil).
func Preview(content *string) *string {
	if content == nil || *content == "" {
		return nil
	}

	text := *content
	if utf8.RuneCountInString(text) <= PreviewLength {
		return &text
	}

	count := 0
	for index := range text {
		if count == PreviewLength {
			truncated := text[:index] + previewEllipsis
			return &truncated
		}
		count++
	}

	return &text
}
