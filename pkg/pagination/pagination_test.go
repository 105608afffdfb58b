// Copyright (c) 2026 Clubbies. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/clubbies/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of hostile input.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "/venues", 1, 20},
		{"explicit", "/venues?page=3&limit=50", 3, 50},
		{"zero_page", "/venues?page=0", 1, 20},
		{"negative_page", "/venues?page=-5", 1, 20},
		{"zero_limit", "/venues?limit=0", 1, 20},
		{"excessive_limit", "/venues?limit=5000", 1, 20},
		{"garbage", "/venues?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.expectedPage, params.Page)
			assert.Equal(t, tt.expectedLimit, params.Limit)
		})
	}
}

/*
TestParams_Offset checks the SQL OFFSET derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta checks total page rounding.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(1, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)

	meta = pagination.NewMeta(1, 20, 40)
	assert.Equal(t, 2, meta.TotalPages)

	meta = pagination.NewMeta(1, 20, 0)
	assert.Equal(t, 0, meta.TotalPages)
}
