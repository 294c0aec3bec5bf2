// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ranoberead/internal/platform/request"
	"github.com/taibuivan/ranoberead/internal/platform/respond"
)

const paramWorkID = "workID"

// # Handler Implementation

// Handler implements the HTTP layer for bookmarks.
type Handler struct {
	service *Service
}

// NewHandler constructs a new bookmark [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches bookmark endpoints to the API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/bookmarks", handler.ListBookmarks)
	api.Post("/bookmarks", handler.SetBookmark)
	api.Get("/bookmarks/{workID}", handler.GetBookmark)
}

// ListBookmarks handles GET /api/v1/bookmarks.
func (handler *Handler) ListBookmarks(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.service.ListBookmarks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
POST /api/v1/bookmarks.

Request:
  - body: SetInput

Response:
  - 200: View
  - 400: ValidationError: Missing fields or no such chapter in the work
  - 404: NotFound: Work does not exist
*/
func (handler *Handler) SetBookmark(writer http.ResponseWriter, request *http.Request) {
	var input SetInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.SetBookmark(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

// GetBookmark handles GET /api/v1/bookmarks/{workID}.
func (handler *Handler) GetBookmark(writer http.ResponseWriter, request *http.Request) {
	workID, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.GetBookmark(request.Context(), workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}
