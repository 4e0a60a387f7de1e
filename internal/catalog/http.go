// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/syncbridge/internal/platform/request"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listProducts)
	router.Get("/{type}", handler.getProduct)
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalog.All())
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.catalog.Product(requestutil.ID(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}
