// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package models

// APIResponse is the uniform envelope wrapping every HTTP response.
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "message": "Blog created successfully",
//	  "data": {...}
//	}
//
// Example validation failure:
//
//	{
//	  "success": false,
//	  "message": "Validation error",
//	  "errors": [{"field": "title", "message": "title must be at least 5 characters"}]
//	}
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single failed input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BlogPagination is the metadata block returned alongside a paged blog list.
// The total is serialized under its legacy collection-specific key.
type BlogPagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalBlogs  int  `json:"totalBlogs"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

// CommentPagination mirrors BlogPagination for comment threads.
type CommentPagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalComments int  `json:"totalComments"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
	Limit         int  `json:"limit"`
}

// NewBlogPagination computes pagination metadata for a blog page.
func NewBlogPagination(page, limit, total int) BlogPagination {
	totalPages := (total + limit - 1) / limit
	return BlogPagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBlogs:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}

// NewCommentPagination computes pagination metadata for a comment page.
func NewCommentPagination(page, limit, total int) CommentPagination {
	totalPages := (total + limit - 1) / limit
	return CommentPagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalComments: total,
		HasNextPage:   page < totalPages,
		HasPrevPage:   page > 1,
		Limit:         limit,
	}
}

// BlogListData is the data payload of GET /api/blogs.
type BlogListData struct {
	Blogs      []Blog         `json:"blogs"`
	Pagination BlogPagination `json:"pagination"`
}

// CommentListData is the data payload of GET /api/comments/blog/:blogId.
type CommentListData struct {
	Comments   []Comment         `json:"comments"`
	Pagination CommentPagination `json:"pagination"`
}

// AuthData is the data payload of register, login, and reset-password.
type AuthData struct {
	User  PublicProfile `json:"user"`
	Token string        `json:"token"`
}
