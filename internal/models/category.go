package models

import (
	"errors"
	"strings"
)

// Category is one of the four sustainability domains tracked on campus.
type Category string

const (
	CategoryEnergy    Category = "energy"
	CategoryWater     Category = "water"
	CategoryWaste     Category = "waste"
	CategoryTransport Category = "transport"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryEnergy, CategoryWater, CategoryWaste, CategoryTransport}

var ErrUnknownCategory = errors.New("unknown category: must be energy, water, waste or transport")

// ParseCategory matches s case-insensitively, ignoring surrounding spaces.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", ErrUnknownCategory
}

func (c Category) Valid() bool {
	switch c {
	case CategoryEnergy, CategoryWater, CategoryWaste, CategoryTransport:
		return true
	}
	return false
}

// CategoryCounts holds one number per category.
type CategoryCounts struct {
	Energy    int `json:"energy"`
	Water     int `json:"water"`
	Waste     int `json:"waste"`
	Transport int `json:"transport"`
}

// Inc bumps the counter for c; unknown categories are ignored.
func (cc *CategoryCounts) Inc(c Category) {
	switch c {
	case CategoryEnergy:
		cc.Energy++
	case CategoryWater:
		cc.Water++
	case CategoryWaste:
		cc.Waste++
	case CategoryTransport:
		cc.Transport++
	}
}

// CategoryValues holds one float per category.
type CategoryValues struct {
	Energy    float64 `json:"energy"`
	Water     float64 `json:"water"`
	Waste     float64 `json:"waste"`
	Transport float64 `json:"transport"`
}

// Set stores v for c; unknown categories are ignored.
func (cv *CategoryValues) Set(c Category, v float64) {
	switch c {
	case CategoryEnergy:
		cv.Energy = v
	case CategoryWater:
		cv.Water = v
	case CategoryWaste:
		cv.Waste = v
	case CategoryTransport:
		cv.Transport = v
	}
}
