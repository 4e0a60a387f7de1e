// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package transmission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/syncbridge/internal/platform/request"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	service *Service
	admin   func(http.Handler) http.Handler
}

// NewHandler builds the handler. admin guards every write route.
func NewHandler(service *Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, admin: admin}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listTransmissions)
	router.Get("/latest", handler.latestTransmission)
	router.Get("/{id}", handler.getTransmission)

	// Admin Only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(handler.admin)

		adminRoute.Post("/", handler.createTransmission)
		adminRoute.Put("/{id}", handler.updateTransmission)
		adminRoute.Delete("/{id}", handler.deleteTransmission)
	})
}

func (handler *Handler) listTransmissions(writer http.ResponseWriter, request *http.Request) {
	transmissions, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, transmissions)
}

func (handler *Handler) latestTransmission(writer http.ResponseWriter, request *http.Request) {
	transmission, err := handler.service.Latest(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	// A missing entry is encoded as JSON null.
	respond.OK(writer, transmission)
}

func (handler *Handler) getTransmission(writer http.ResponseWriter, request *http.Request) {
	transmission, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, transmission)
}

func (handler *Handler) createTransmission(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	transmission, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, transmission)
}

func (handler *Handler) updateTransmission(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	transmission, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, transmission)
}

func (handler *Handler) deleteTransmission(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
