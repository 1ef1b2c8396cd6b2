package model

import "github.com/ymjo140/rendezvous-merchant-sub000/internal/assignment"

var transitions = map[assignment.Status][]assignment.Status{
	assignment.StatusPending:   {assignment.StatusConfirmed, assignment.StatusCancelled, assignment.StatusNoShow, assignment.StatusCompleted},
	assignment.StatusConfirmed: {assignment.StatusCompleted, assignment.StatusCancelled, assignment.StatusNoShow},
	assignment.StatusBlocked:   {assignment.StatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to another.
// Completed, cancelled and no_show are final.
func CanTransition(from, to assignment.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}
