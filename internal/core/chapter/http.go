// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ranoberead/internal/platform/request"
	"github.com/taibuivan/ranoberead/internal/platform/respond"
)

// URL parameter names.
const (
	paramWorkID            = "workID"
	paramExternalChapterID = "externalChapterID"
	queryLanguage          = "language"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapters.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter endpoints to the API router.
// Listing lives under /works/{workID}/chapters; the rest under /chapters.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/works/{workID}/chapters", handler.ListChapters)

	api.Post("/chapters", handler.UpsertChapter)
	api.Get("/chapters/{workID}/{externalChapterID}", handler.GetChapter)
	api.Put("/chapters/{workID}/{externalChapterID}/translation", handler.UpdateTranslation)
}

/*
POST /api/v1/chapters.

Description: Idempotent ingestion keyed by (work_id, external_chapter_id).

Request:
  - body: UpsertInput

Response:
  - 201: Chapter: Created
  - 200: Chapter: Updated
  - 400: ValidationError: Missing key, or origin_sequence_number on create
  - 404: NotFound: Work does not exist
*/
func (handler *Handler) UpsertChapter(writer http.ResponseWriter, request *http.Request) {
	var input UpsertInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, created, err := handler.service.UpsertChapter(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, chapter)
		return
	}
	respond.OK(writer, chapter)
}

/*
GET /api/v1/chapters/{workID}/{externalChapterID}?language=ru|en.

Response:
  - 200: View
  - 400: ValidationError: Malformed ids or unsupported language
  - 404: NotFound / ContentUnavailable
*/
func (handler *Handler) GetChapter(writer http.ResponseWriter, request *http.Request) {
	workID, externalChapterID, ok := chapterKey(writer, request)
	if !ok {
		return
	}

	view, err := handler.service.GetChapter(request.Context(), workID, externalChapterID, request.URL.Query().Get(queryLanguage))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
PUT /api/v1/chapters/{workID}/{externalChapterID}/translation.

Request:
  - body: TranslationPatch

Response:
  - 200: Chapter
  - 400: ValidationError: Empty patch
  - 404: NotFound: Chapter does not exist
*/
func (handler *Handler) UpdateTranslation(writer http.ResponseWriter, request *http.Request) {
	workID, externalChapterID, ok := chapterKey(writer, request)
	if !ok {
		return
	}

	var patch TranslationPatch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.UpdateTranslation(request.Context(), workID, externalChapterID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
GET /api/v1/works/{workID}/chapters.

Response:
  - 200: []Summary: Ordered, possibly empty
  - 404: NotFound: Work does not exist
*/
func (handler *Handler) ListChapters(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summaries, err := handler.service.ListChapters(request.Context(), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summaries)
}

// chapterKey parses the natural key from the path, writing a 400 on failure.
func chapterKey(writer http.ResponseWriter, request *http.Request) (int64, int, bool) {
	workID, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return 0, 0, false
	}

	externalChapterID, err := requestutil.IntParam(request, paramExternalChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return 0, 0, false
	}

	return workID, externalChapterID, true
}
