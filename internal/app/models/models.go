package models

import "strings"

// Category classifies a group. The set is fixed.
type Category string

const (
	CategoryStudy Category = "study"
	CategoryClub  Category = "club"
	CategoryEvent Category = "event"
)

// DefaultCategory is used when a group is created without one.
const DefaultCategory = CategoryStudy

// Categories lists every valid category in display order.
var Categories = []Category{CategoryStudy, CategoryClub, CategoryEvent}

// ParseCategory normalises s and reports whether it names a valid category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryStudy, CategoryClub, CategoryEvent:
		return c, true
	}
	return "", false
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}
