// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package work

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ranoberead/internal/platform/request"
	"github.com/taibuivan/ranoberead/internal/platform/respond"
)

const paramWorkID = "workID"

// # Handler Implementation

// Handler implements the HTTP layer for works.
type Handler struct {
	service *Service
}

// NewHandler constructs a new work [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches work endpoints to the API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/works", handler.ListWorks)
	api.Post("/works", handler.CreateWork)
	api.Get("/works/{workID}", handler.GetWork)
	api.Put("/works/{workID}", handler.UpdateWork)
	api.Delete("/works/{workID}", handler.DeleteWork)
}

// titleRequest is the inbound JSON schema for create and rename.
type titleRequest struct {
	Title string `json:"title"`
}

/*
GET /api/v1/works.

Response:
  - 200: []ListItem
*/
func (handler *Handler) ListWorks(writer http.ResponseWriter, request *http.Request) {
	items, err := handler.service.ListWorks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

/*
POST /api/v1/works.

Request:
  - body: titleRequest

Response:
  - 201: Work
  - 400: ValidationError: Empty or overlong title
*/
func (handler *Handler) CreateWork(writer http.ResponseWriter, request *http.Request) {
	var input titleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work, err := handler.service.CreateWork(request.Context(), input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, work)
}

/*
GET /api/v1/works/{workID}.

Response:
  - 200: Detail
  - 404: NotFound
*/
func (handler *Handler) GetWork(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetWorkDetail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
PUT /api/v1/works/{workID}.

Response:
  - 200: Work
  - 400: ValidationError
  - 404: NotFound
*/
func (handler *Handler) UpdateWork(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input titleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	work, err := handler.service.UpdateWork(request.Context(), id, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, work)
}

/*
DELETE /api/v1/works/{workID}.

Response:
  - 204: Deleted with chapters and bookmark
  - 404: NotFound
*/
func (handler *Handler) DeleteWork(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, paramWorkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteWork(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
