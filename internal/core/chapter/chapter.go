// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "time"

// Chapter is one installment of a work, held in Russian and/or English.
//
// Titles and bodies are nullable: nil means the text has not been ingested
// (English, by the scraper) or translated (Russian, by the translator) yet.
type Chapter struct {
	ID                   int64     `json:"id"`
	WorkID               int64     `json:"work_id"`
	ExternalChapterID    int       `json:"external_chapter_id"`
	OriginSequenceNumber int       `json:"origin_sequence_number"`
	TitleRu              *string   `json:"title_ru"`
	TitleEn              *string   `json:"title_en"`
	ContentRu            *string   `json:"content_ru"`
	ContentEn            *string   `json:"content_en"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Summary is the listing projection of a chapter. It never carries full bodies.
type Summary struct {
	ID                   int64   `json:"id"`
	ExternalChapterID    int     `json:"external_chapter_id"`
	OriginSequenceNumber int     `json:"origin_sequence_number"`
	TitleRu              *string `json:"title_ru"`
	TitleEn              *string `json:"title_en"`
	ContentPreviewRu     *string `json:"content_preview_ru"`
	ContentPreviewEn     *string `json:"content_preview_en"`
}

// View is a single chapter read in one language.
//
// Only the content field matching Language is populated.
type View struct {
	ID                   int64    `json:"id"`
	WorkID               int64    `json:"work_id"`
	ExternalChapterID    int      `json:"external_chapter_id"`
	OriginSequenceNumber int      `json:"origin_sequence_number"`
	TitleRu              *string  `json:"title_ru"`
	TitleEn              *string  `json:"title_en"`
	Language             Language `json:"language"`
	ContentRu            *string  `json:"content_ru,omitempty"`
	ContentEn            *string  `json:"content_en,omitempty"`
}

// Content returns the body in the view's language.
func (view *View) Content() *string {
	if view.Language == LanguageRu {
		return view.ContentRu
	}
	return view.ContentEn
}

func (view *View) setContent(content *string) {
	if view.Language == LanguageRu {
		view.ContentRu = content
		return
	}
	view.ContentEn = content
}

// UpsertInput is the ingestion payload keyed by (WorkID, ExternalChapterID).
//
// Nil fields leave stored values unchanged on update. OriginSequenceNumber is
// mandatory only when the chapter does not exist yet.
type UpsertInput struct {
	WorkID               int64   `json:"work_id"`
	ExternalChapterID    *int    `json:"external_chapter_id"`
	OriginSequenceNumber *int    `json:"origin_sequence_number"`
	TitleRu              *string `json:"title_ru"`
	TitleEn              *string `json:"title_en"`
	ContentRu            *string `json:"content_ru"`
	ContentEn            *string `json:"content_en"`
}

// TranslationPatch carries the Russian fields produced by the translator.
type TranslationPatch struct {
	ContentRu *string `json:"content_ru"`
	TitleRu   *string `json:"title_ru"`
}

// Empty reports whether the patch would change nothing.
func (patch TranslationPatch) Empty() bool {
	return patch.ContentRu == nil && patch.TitleRu == nil
}

// Global field names for validation
const (
	FieldWorkID               = "work_id"
	FieldExternalChapterID    = "external_chapter_id"
	FieldOriginSequenceNumber = "origin_sequence_number"
	FieldLanguage             = "language"
	FieldContentRu            = "content_ru"
	FieldTitleRu              = "title_ru"
)
