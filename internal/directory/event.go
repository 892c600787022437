// Package directory owns the query state and the detail modal, and turns
// discrete input events into renders.
package directory

import "roster-cli/internal/model"

// Event is one of the closed set of inputs the controller understands.
type Event interface {
	isEvent()
}

// DataLoaded carries the outcome of a (re)load of the people source.
type DataLoaded struct {
	Records []model.Person
	Err     error
}

type SearchChanged struct{ Text string }

// RoleChanged selects a role; "" means any role.
type RoleChanged struct{ Role string }

type SortChanged struct{ Order model.SortOrder }

type ViewToggled struct{}

type CardActivated struct{ ID int }

// CloseRequested is the modal's designated close control.
type CloseRequested struct{}

type EscapePressed struct{}

// OverlayClicked is a click outside the modal content.
type OverlayClicked struct{}

func (DataLoaded) isEvent()     {}
func (SearchChanged) isEvent()  {}
func (RoleChanged) isEvent()    {}
func (SortChanged) isEvent()    {}
func (ViewToggled) isEvent()    {}
func (CardActivated) isEvent()  {}
func (CloseRequested) isEvent() {}
func (EscapePressed) isEvent()  {}
func (OverlayClicked) isEvent() {}
