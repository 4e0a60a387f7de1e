// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mission

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	clock *Clock
}

func NewHandler(clock *Clock) *Handler {
	return &Handler{clock: clock}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/status", handler.getStatus)
}

func (handler *Handler) getStatus(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.clock.Status())
}
