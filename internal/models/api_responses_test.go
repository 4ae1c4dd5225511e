// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package models

import "testing"

func TestNewBlogPagination(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		limit       int
		total       int
		wantPages   int
		wantHasNext bool
		wantHasPrev bool
	}{
		{name: "first of three pages", page: 1, limit: 10, total: 25, wantPages: 3, wantHasNext: true, wantHasPrev: false},
		{name: "middle page", page: 2, limit: 10, total: 25, wantPages: 3, wantHasNext: true, wantHasPrev: true},
		{name: "last page", page: 3, limit: 10, total: 25, wantPages: 3, wantHasNext: false, wantHasPrev: true},
		{name: "beyond last page", page: 9, limit: 10, total: 25, wantPages: 3, wantHasNext: false, wantHasPrev: true},
		{name: "empty collection", page: 1, limit: 10, total: 0, wantPages: 0, wantHasNext: false, wantHasPrev: false},
		{name: "exact page boundary", page: 2, limit: 5, total: 10, wantPages: 2, wantHasNext: false, wantHasPrev: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewBlogPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantHasNext)
			}
			if p.HasPrevPage != tt.wantHasPrev {
				t.Errorf("HasPrevPage = %v, want %v", p.HasPrevPage, tt.wantHasPrev)
			}
			if p.TotalBlogs != tt.total {
				t.Errorf("TotalBlogs = %d, want %d", p.TotalBlogs, tt.total)
			}
			if p.CurrentPage != tt.page || p.Limit != tt.limit {
				t.Errorf("CurrentPage/Limit = %d/%d, want %d/%d", p.CurrentPage, p.Limit, tt.page, tt.limit)
			}
		})
	}
}

func TestUserPublicOmitsSecrets(t *testing.T) {
	u := User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$12$secret",
	}
	p := u.Public()
	if p.ID != "u1" || p.Username != "alice" || p.Email != "alice@example.com" {
		t.Errorf("unexpected public profile: %+v", p)
	}
}
