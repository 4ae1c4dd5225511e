// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// Package models defines the persisted entities, request payloads, and
// response shapes shared between the database and API layers.
package models

import "time"

// User is a registered account. The password hash and reset-token fields are
// never serialized; PublicProfile is the only user shape clients see.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`

	// ResetTokenHash holds sha256(plaintext reset token) while a reset is
	// pending. Only the hash is ever stored.
	ResetTokenHash    string     `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicProfile is the user shape embedded in API responses.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Public returns the externally visible profile for the user.
func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Blog is a post. Slug is derived once at creation from the title plus a
// millisecond timestamp and is unique across the store. CommentCount, Comments
// and Owner are read-side projections resolved by the database layer, never
// stored.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	UserID      string    `json:"userId"`
	Slug        string    `json:"slug"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	IsPublished bool      `json:"isPublished"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	CommentCount int            `json:"commentCount"`
	Comments     []Comment      `json:"comments,omitempty"`
	Owner        *PublicProfile `json:"owner,omitempty"`
}

// Comment belongs to exactly one blog. UserID is set when the author was
// authenticated at creation time and empty otherwise.
type Comment struct {
	ID          string    `json:"id"`
	BlogID      string    `json:"blogId"`
	Commenter   string    `json:"commenter"`
	CommentText string    `json:"commentText"`
	UserID      string    `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Parent blog info, resolved for single-comment reads.
	BlogTitle  string `json:"blogTitle,omitempty"`
	BlogAuthor string `json:"blogAuthor,omitempty"`
}
