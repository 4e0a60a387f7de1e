// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/syncbridge/internal/platform/middleware"
	requestutil "github.com/taibuivan/syncbridge/internal/platform/request"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the login check under /api/admin.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/login", handler.login)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Authenticated bool `json:"authenticated"`
}

// login lets the admin UI confirm a credential before storing it client side.
// Basic auth wins over a JSON body.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	username, password, ok := request.BasicAuth()
	if !ok {
		var input loginRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, ErrInvalidCredentials)
			return
		}
		username, password = input.Username, input.Password
	}

	if err := handler.service.Verify(request.Context(), username, password, middleware.RealIP(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{Authenticated: true})
}
