package domain

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryGold     Category = "Gold"
	CategorySilver   Category = "Silver"
	CategoryPlatinum Category = "Platinum"
)

// Categories in the order they are listed on an event.
var Categories = []Category{CategoryGold, CategorySilver, CategoryPlatinum}

func (c Category) Valid() bool {
	switch c {
	case CategoryGold, CategorySilver, CategoryPlatinum:
		return true
	}
	return false
}

// ParseCategory accepts the exact, case-sensitive category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid pass category %q", s)
	}
	return c, nil
}

type Status string

const (
	StatusActive    Status = "Active"
	StatusUsed      Status = "Used"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusUsed, StatusCancelled:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("invalid pass status %q", s)
	}
	return st, nil
}

type Pass struct {
	ID        int64
	EventID   int64
	UserID    int64
	Category  Category
	Status    Status
	CreatedAt time.Time
}

// HeldPass is a pass as listed for its holder, with the event it belongs to.
type HeldPass struct {
	Pass
	EventName string
	EventDate time.Time
}
