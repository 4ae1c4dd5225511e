// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package models

import "time"

// Analytics result types for the read-only aggregation endpoints.

// AuthorStats is one row of the top-authors ranking.
type AuthorStats struct {
	Author     string    `json:"author"`
	PostCount  int       `json:"postCount"`
	LatestPost time.Time `json:"latestPost"`
}

// CommentedPost is one row of the most-commented ranking.
type CommentedPost struct {
	BlogID       string    `json:"blogId"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	CommentCount int       `json:"commentCount"`
}

// DailyPostCount is one day of the posts-per-day series. Date is formatted
// YYYY-MM-DD and DayName is the short weekday label (Mon, Tue, ...).
type DailyPostCount struct {
	Date    string `json:"date"`
	Count   int    `json:"count"`
	DayName string `json:"dayName"`
}

// RecentBlog is the trimmed blog shape in the dashboard payload.
type RecentBlog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// DashboardOverview aggregates store-wide counters. EngagementRate is
// comments-per-blog as a percentage, rounded to two decimals, zero when the
// store holds no blogs.
type DashboardOverview struct {
	TotalBlogs     int     `json:"totalBlogs"`
	TotalComments  int     `json:"totalComments"`
	TotalAuthors   int     `json:"totalAuthors"`
	EngagementRate float64 `json:"engagementRate"`
}

// DashboardStats is the data payload of GET /api/analytics/dashboard-stats.
type DashboardStats struct {
	Overview    DashboardOverview `json:"overview"`
	RecentBlogs []RecentBlog      `json:"recentBlogs"`
}
