// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"github.com/taibuivan/ranoberead/internal/platform/database/schema"
	"github.com/taibuivan/ranoberead/internal/platform/validate"
)

// Language selects which translation of a chapter is read.
type Language string

const (
	LanguageRu Language = "ru"
	LanguageEn Language = "en"

	// DefaultLanguage is used when the caller does not ask for one.
	DefaultLanguage = LanguageEn
)

// ParseLanguage maps a query value to a [Language]. The empty string selects
// [DefaultLanguage]; anything other than "ru" or "en" is a validation error.
func ParseLanguage(raw string) (Language, error) {
	if raw == "" {
		return DefaultLanguage, nil
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldLanguage, raw, string(LanguageRu), string(LanguageEn))
	if err := validator.Err(); err != nil {
		return "", err
	}
	return Language(raw), nil
}

// contentColumn is the storage column holding this language's body.
func (language Language) contentColumn() string {
	if language == LanguageRu {
		return schema.LibraryChapter.ContentRu
	}
	return schema.LibraryChapter.ContentEn
}
