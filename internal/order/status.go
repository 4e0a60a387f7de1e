// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import (
	"fmt"
	"strings"

	"github.com/taibuivan/syncbridge/internal/platform/apperr"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// fulfilment is the forward path. cancelled sits outside it.
var fulfilment = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

// ParseStatus reads a status value, ignoring case and surrounding space.
func ParseStatus(value string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Statuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// IsTerminal reports whether no transition leaves the status.
func (status Status) IsTerminal() bool {
	return status == StatusDelivered || status == StatusCancelled
}

/*
CheckTransition validates moving an order from one status to another.

Rules:
  - delivered and cancelled are terminal.
  - Fulfilment moves forward only and may skip steps (pending → shipped).
  - cancelled is reachable from pending and processing.
  - Staying on the same status is not a transition.

Returns:
  - error: nil when allowed, Conflict otherwise
*/
func CheckTransition(from, to Status) error {
	switch {
	case from.IsTerminal():
		return transitionConflict(from, to, fmt.Sprintf("%s is a final status", from))
	case from == to:
		return transitionConflict(from, to, "order already has this status")
	case to == StatusCancelled:
		if from == StatusPending || from == StatusProcessing {
			return nil
		}
		return transitionConflict(from, to, "only pending or processing orders can be cancelled")
	case fulfilment[to] < fulfilment[from]:
		return transitionConflict(from, to, "status cannot move backwards")
	}
	return nil
}

func transitionConflict(from, to Status, reason string) error {
	return apperr.Conflict(fmt.Sprintf("Cannot change order status from %s to %s: %s", from, to, reason))
}
