package entity

import "fmt"

// OrderStatus is the closed set of escrow order states.
type OrderStatus string

const (
	OrderStatusEscrow               OrderStatus = "escrow"
	OrderStatusDelivering           OrderStatus = "delivering"
	OrderStatusAwaitingConfirmation OrderStatus = "awaiting_confirmation"
	OrderStatusCompleted            OrderStatus = "completed"
	OrderStatusCancelled            OrderStatus = "cancelled"
)

// ParseOrderStatus rejects anything outside the closed set so malformed rows
// surface as explicit errors instead of silently defaulting.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusEscrow, OrderStatusDelivering, OrderStatusAwaitingConfirmation,
		OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("malformed order status %q", s)
}

// Terminal reports whether no further transition may leave this state.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// RequestStatus is the closed set of deposit/withdraw request states.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("malformed request status %q", s)
}

// TicketStatus is the closed set of support ticket states.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	switch TicketStatus(s) {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(s), nil
	}
	return "", fmt.Errorf("malformed ticket status %q", s)
}

// ticketTransitions is the allowed ticket status graph. Closed is terminal.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:    {TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed},
	TicketStatusInProgress: {TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:   {TicketStatusClosed},
}

// CanTransitionTo reports whether a ticket may move from s to next.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
