package model

import (
	"fmt"
	"strings"
)

// Person is one directory entry as delivered by the data source.
type Person struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image"`
	Story string `json:"story"`
}

type SortOrder string

const (
	SortNameAsc  SortOrder = "name-asc"
	SortNameDesc SortOrder = "name-desc"
)

func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.TrimSpace(strings.ToLower(s))) {
	case "", SortNameAsc:
		return SortNameAsc, nil
	case SortNameDesc:
		return SortNameDesc, nil
	default:
		return "", fmt.Errorf("unknown sort order: %q (want name-asc|name-desc)", s)
	}
}

// Toggle flips between ascending and descending name order.
func (s SortOrder) Toggle() SortOrder {
	if s == SortNameAsc {
		return SortNameDesc
	}
	return SortNameAsc
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.TrimSpace(strings.ToLower(s))) {
	case "", ViewGrid:
		return ViewGrid, nil
	case ViewList:
		return ViewList, nil
	default:
		return "", fmt.Errorf("unknown view mode: %q (want grid|list)", s)
	}
}

func (v ViewMode) Toggle() ViewMode {
	if v == ViewGrid {
		return ViewList
	}
	return ViewGrid
}

// QueryState is the user-adjustable filter/sort/layout configuration.
// Role "" means any role.
type QueryState struct {
	Search string    `json:"search"`
	Role   string    `json:"role"`
	Sort   SortOrder `json:"sort"`
	View   ViewMode  `json:"view"`
}

func DefaultQueryState() QueryState {
	return QueryState{Sort: SortNameAsc, View: ViewGrid}
}

type ModalStatus int

const (
	ModalClosed ModalStatus = iota
	ModalOpen
)

func (s ModalStatus) String() string {
	switch s {
	case ModalOpen:
		return "open"
	default:
		return "closed"
	}
}
