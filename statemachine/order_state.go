package statemachine

import (
	"errors"

	"easyfood/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "restaurant", "customer", "system"
}

// validTransitions is the authoritative lifecycle definition. The store
// itself does not enforce ordering; this table serves the vendor dashboard
// and the simulated auto-advance driver.
var validTransitions = []Transition{
	// Restaurant moves the order through preparation and delivery
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "restaurant"},
	{From: models.StatusReady, To: models.StatusDelivering, Actor: "restaurant"},
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: "restaurant"},
	// The demo auto-advance timer walks the same path
	{From: models.StatusPreparing, To: models.StatusReady, Actor: "system"},
	{From: models.StatusReady, To: models.StatusDelivering, Actor: "system"},
	{From: models.StatusDelivering, To: models.StatusCompleted, Actor: "system"},
	// Cancellation is reachable from any non-terminal state
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusReady, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusDelivering, To: models.StatusCancelled, Actor: "restaurant"},
	{From: models.StatusDelivering, To: models.StatusCancelled, Actor: "customer"},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
