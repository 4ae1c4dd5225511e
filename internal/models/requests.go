// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package models

// Request payloads, one struct per endpoint, validated with
// go-playground/validator before any handler logic runs.

// RegisterRequest is the payload of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// ForgotPasswordRequest is the payload of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the payload of PUT /api/auth/reset-password/:resettoken.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// ChangePasswordRequest is the payload of PUT /api/auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=6,max=100"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=100"`
}

// CreateBlogRequest is the payload of POST /api/blogs.
type CreateBlogRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Content     string   `json:"content" validate:"required,min=20"`
	Author      string   `json:"author" validate:"required,min=2,max=20"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Category    string   `json:"category" validate:"omitempty,min=2,max=20"`
	IsPublished *bool    `json:"isPublished"`
}

// UpdateBlogRequest is the payload of PUT /api/blogs/:id. All fields are
// optional; nil means "leave unchanged".
type UpdateBlogRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Content     *string  `json:"content" validate:"omitempty,min=10"`
	Author      *string  `json:"author" validate:"omitempty,min=2,max=20"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	Category    *string  `json:"category" validate:"omitempty,min=2,max=20"`
	IsPublished *bool    `json:"isPublished"`
}

// ListBlogsQuery carries the validated query parameters of GET /api/blogs.
type ListBlogsQuery struct {
	Page      int    `validate:"min=1"`
	Limit     int    `validate:"min=1,max=100"`
	Search    string `validate:"omitempty,max=200"`
	Category  string `validate:"omitempty,max=50"`
	Author    string `validate:"omitempty,max=50"`
	SortBy    string `validate:"omitempty,oneof=createdAt updatedAt title views"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}

// AddCommentRequest is the payload of POST /api/comments/blog/:blogId.
type AddCommentRequest struct {
	Commenter   string `json:"commenter" validate:"required,min=2,max=50"`
	CommentText string `json:"commentText" validate:"required,min=5,max=500"`
}

// UpdateCommentRequest is the payload of PUT /api/comments/:commentId.
type UpdateCommentRequest struct {
	CommentText string `json:"commentText" validate:"required,min=5,max=500"`
}

// ListCommentsQuery carries the validated query parameters of
// GET /api/comments/blog/:blogId.
type ListCommentsQuery struct {
	Page      int    `validate:"min=1"`
	Limit     int    `validate:"min=1,max=100"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
}
