package chat

import (
	"fmt"
	"pair-chat/errors"
)

// DeliveryState only moves forward: Sent, Delivered, Read.
type DeliveryState int

const (
	Sent DeliveryState = iota + 1
	Delivered
	Read
)

func (s DeliveryState) String() string {
	switch s {
	case Sent:
		return "sent"
	case Delivered:
		return "delivered"
	case Read:
		return "read"
	default:
		return "unknown"
	}
}

func (s DeliveryState) Valid() bool {
	return s >= Sent && s <= Read
}

// CanAdvanceTo is true for a strictly forward move.
func (s DeliveryState) CanAdvanceTo(next DeliveryState) bool {
	return next.Valid() && next > s
}

// Advance returns the new state, or ErrStateRegression when next is not ahead of s.
func (s DeliveryState) Advance(next DeliveryState) (DeliveryState, error) {
	if !s.CanAdvanceTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", errors.ErrStateRegression, s, next)
	}
	return next, nil
}

func (s DeliveryState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid delivery state %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *DeliveryState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "sent":
		*s = Sent
	case "delivered":
		*s = Delivered
	case "read":
		*s = Read
	default:
		return fmt.Errorf("unknown delivery state %q", text)
	}
	return nil
}
