// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/clubbies/pkg/slug"
)

/*
TestFrom covers the full normalization pipeline on realistic venue names.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Berghain", "berghain"},
		{"spaces", "Ministry of Sound", "ministry-of-sound"},
		{"accents", "Café Möller", "cafe-moller"},
		{"punctuation", "Club 54: The Return!", "club-54-the-return"},
		{"multiple_separators", "The  --  Warehouse", "the-warehouse"},
		{"leading_trailing", "  ~Fabric~  ", "fabric"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slug.From(tt.input))
		})
	}
}
