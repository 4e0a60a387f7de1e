// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guardian

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/syncbridge/internal/platform/constants"
	requestutil "github.com/taibuivan/syncbridge/internal/platform/request"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the guardian endpoints under /api/guardians.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/count", handler.countGuardians)
	router.Get("/lookup", handler.lookupGuardian)
	router.Get("/registry", handler.listRegistry)
	router.Post("/register", handler.registerGuardian)
	router.Get("/{scrollId}", handler.getGuardian)
}

// RegisterCertificateRoutes mounts the certificate view under /api/certificate.
func (handler *Handler) RegisterCertificateRoutes(router chi.Router) {
	router.Get("/{scrollId}", handler.getCertificate)
}

type registerRequest struct {
	Email string `json:"email"`
}

func (handler *Handler) registerGuardian(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	guardian, created, err := handler.service.Register(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if created {
		respond.Created(writer, guardian)
		return
	}
	respond.OK(writer, guardian)
}

func (handler *Handler) lookupGuardian(writer http.ResponseWriter, request *http.Request) {
	guardian, err := handler.service.Lookup(request.Context(), requestutil.Query(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guardian)
}

func (handler *Handler) getGuardian(writer http.ResponseWriter, request *http.Request) {
	guardian, err := handler.service.LookupByScrollID(request.Context(), requestutil.ID(request, "scrollId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guardian)
}

func (handler *Handler) countGuardians(writer http.ResponseWriter, request *http.Request) {
	total, err := handler.service.Count(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{constants.FieldCount: total})
}

func (handler *Handler) listRegistry(writer http.ResponseWriter, request *http.Request) {
	guardians, err := handler.service.Registry(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, guardians)
}

func (handler *Handler) getCertificate(writer http.ResponseWriter, request *http.Request) {
	certificate, err := handler.service.Certificate(request.Context(), requestutil.ID(request, "scrollId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, certificate)
}
