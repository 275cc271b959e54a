package appointment

import "strings"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusPostponed Status = "POSTPONED"
)

// ParseStatus aceita qualquer capitalização.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusPostponed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Transitions
// ===============================

// StockEffect é o efeito de uma transição sobre o estoque.
type StockEffect int

const (
	StockNone StockEffect = iota
	StockConsume
	StockReverse
)

// TransitionEffect: o grafo de status é aberto (qualquer status vai para qualquer
// outro); só entrar ou sair de COMPLETED mexe no estoque.
func TransitionEffect(from, to Status) StockEffect {
	switch {
	case to == StatusCompleted && from != StatusCompleted:
		return StockConsume
	case from == StatusCompleted && to != StatusCompleted:
		return StockReverse
	}
	return StockNone
}
