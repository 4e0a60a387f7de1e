// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/syncbridge/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/syncbridge/internal/platform/request"
	"github.com/taibuivan/syncbridge/internal/platform/respond"
)

type Handler struct {
	service *Service
	admin   func(http.Handler) http.Handler
}

// NewHandler builds the handler. admin guards every ledger read and status
// change.
func NewHandler(service *Service, admin func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, admin: admin}
}

// RegisterRoutes mounts the ledger under /api/orders.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Post("/", handler.submitOrder)

	// Admin Only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(handler.admin)

		adminRoute.Get("/", handler.listOrders)
		adminRoute.Get("/{id}", handler.getOrder)
		adminRoute.Patch("/{id}/status", handler.updateStatus)
	})
}

// RegisterCartRoutes mounts the cart quote under /api/cart.
func (handler *Handler) RegisterCartRoutes(router chi.Router) {
	router.Post("/quote", handler.quoteCart)
}

type quoteRequest struct {
	Items []LineInput `json:"items"`
}

func (handler *Handler) quoteCart(writer http.ResponseWriter, request *http.Request) {
	var input quoteRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	quote, err := handler.service.Quote(input.Items)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, quote)
}

func (handler *Handler) submitOrder(writer http.ResponseWriter, request *http.Request) {
	var input SubmitInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	order, err := handler.service.Submit(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, order)
}

func (handler *Handler) listOrders(writer http.ResponseWriter, request *http.Request) {
	orders, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, orders)
}

func (handler *Handler) getOrder(writer http.ResponseWriter, request *http.Request) {
	order, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

// updateStatus reads the target from ?status=, falling back to a JSON body.
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	status := requestutil.Query(request, FieldStatus)
	if status == "" && request.ContentLength != 0 {
		var input statusRequest
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
		status = input.Status
	}

	actor := ctxutil.GetAdmin(request.Context())
	order, err := handler.service.UpdateStatus(request.Context(), requestutil.ID(request, "id"), status, actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}
