package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetreat_HasDate(t *testing.T) {
	r := Retreat{Dates: []string{"2024-10-15", "2024-11-01"}}

	assert.True(t, r.HasDate("2024-10-15"))
	assert.True(t, r.HasDate("2024-11-01"))
	assert.False(t, r.HasDate("2024-12-15"))
	assert.False(t, (&Retreat{}).HasDate("2024-10-15"))
}

func TestRetreat_Matches(t *testing.T) {
	r := Retreat{
		Title:    "Bali Vinyasa & Healing Flow",
		Category: "Yoga",
		Location: Location{City: "Ubud", Country: "Indonesia"},
	}

	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"empty query matches everything", "", true},
		{"whitespace query matches everything", "   ", true},
		{"title match is case insensitive", "vinyasa", true},
		{"city match", "ubud", true},
		{"country match", "INDONESIA", true},
		{"category match", "yoga", true},
		{"no match", "kyoto", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Matches(tt.query))
		})
	}
}

func TestRetreat_Place(t *testing.T) {
	r := Retreat{Location: Location{City: "Kyoto", Country: "Japan"}}
	assert.Equal(t, "Kyoto, Japan", r.Place())
}

func TestIsValidCategory(t *testing.T) {
	assert.Len(t, Categories, 20)
	assert.True(t, IsValidCategory("Yoga"))
	assert.True(t, IsValidCategory("Forest Bathing"))
	assert.False(t, IsValidCategory("yoga"))
	assert.False(t, IsValidCategory("Skydiving"))
}

func TestCartItem_Subtotal(t *testing.T) {
	item := CartItem{Retreat: &Retreat{Price: 950}, Guests: 3}
	assert.Equal(t, 2850, item.Subtotal())

	assert.Equal(t, 0, CartItem{Guests: 2}.Subtotal())
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		ratio AspectRatio
		valid bool
		w, h  int
	}{
		{AspectSquare, true, 1, 1},
		{AspectPortrait, true, 3, 4},
		{AspectLandscape, true, 4, 3},
		{AspectTall, true, 9, 16},
		{AspectWide, true, 16, 9},
		{AspectRatio("2:1"), false, 16, 9},
	}

	for _, tt := range tests {
		t.Run(string(tt.ratio), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.ratio.IsValid())
			w, h := tt.ratio.Dimensions()
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, MockUser.Role.IsValid())
	assert.True(t, UserRoleAdmin.IsValid())
	assert.False(t, UserRole("user").IsValid())
}
