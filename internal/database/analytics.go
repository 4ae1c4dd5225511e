// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

// This file contains the read-only aggregation queries backing the analytics
// endpoints. All shaping beyond grouping and sorting (day filling, rate
// rounding) happens here so handlers stay response-only.

package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/inkwell-hq/inkwell/internal/models"
)

// TopAuthors ranks authors by post count, ties broken by most recent post,
// top 10.
func (db *DB) TopAuthors(ctx context.Context) ([]models.AuthorStats, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT author, COUNT(*) AS post_count, MAX(created_at) AS latest_post
		 FROM blogs
		 GROUP BY author
		 ORDER BY post_count DESC, latest_post DESC
		 LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top authors: %w", err)
	}
	defer rows.Close()

	authors := []models.AuthorStats{}
	for rows.Next() {
		var a models.AuthorStats
		if err := rows.Scan(&a.Author, &a.PostCount, &a.LatestPost); err != nil {
			return nil, fmt.Errorf("failed to scan author stats: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate author stats: %w", err)
	}
	return authors, nil
}

// MostCommentedPosts groups comments by parent blog, takes the top 5 by
// count, and joins back to blogs for title, author, and creation time.
// Orphaned comments whose blog was deleted drop out of the join.
func (db *DB) MostCommentedPosts(ctx context.Context) ([]models.CommentedPost, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT c.blog_id, b.title, b.author, b.created_at, COUNT(*) AS comment_count
		 FROM comments c
		 JOIN blogs b ON b.id = c.blog_id
		 GROUP BY c.blog_id, b.title, b.author, b.created_at
		 ORDER BY comment_count DESC
		 LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("failed to query most commented posts: %w", err)
	}
	defer rows.Close()

	posts := []models.CommentedPost{}
	for rows.Next() {
		var p models.CommentedPost
		if err := rows.Scan(&p.BlogID, &p.Title, &p.Author, &p.CreatedAt, &p.CommentCount); err != nil {
			return nil, fmt.Errorf("failed to scan commented post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commented posts: %w", err)
	}
	return posts, nil
}

// PostsPerDay counts blog creations per calendar day over the trailing seven
// days, inclusive of today. Days without posts are filled with zero so the
// series always has exactly seven entries, ascending by date.
func (db *DB) PostsPerDay(ctx context.Context, now time.Time) ([]models.DailyPostCount, error) {
	now = now.UTC()
	windowStart := now.AddDate(0, 0, -6).Truncate(24 * time.Hour)

	// DuckDB strftime argument order is (timestamp, format).
	rows, err := db.conn.QueryContext(ctx,
		`SELECT strftime(created_at, '%Y-%m-%d') AS day, COUNT(*)
		 FROM blogs
		 WHERE created_at >= ?
		 GROUP BY day`, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts per day: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts[day] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily counts: %w", err)
	}

	series := make([]models.DailyPostCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		date := day.Format("2006-01-02")
		series = append(series, models.DailyPostCount{
			Date:    date,
			Count:   counts[date],
			DayName: day.Format("Mon"),
		})
	}
	return series, nil
}

// DashboardStats aggregates store-wide totals, the five most recent blogs,
// and the engagement rate (comments per blog as a percentage, two decimals,
// zero when no blogs exist).
func (db *DB) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var totalBlogs, totalComments, totalAuthors int

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&totalBlogs); err != nil {
		return nil, fmt.Errorf("failed to count blogs: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments`).Scan(&totalComments); err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(DISTINCT author) FROM blogs`).Scan(&totalAuthors); err != nil {
		return nil, fmt.Errorf("failed to count authors: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, author, created_at FROM blogs ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent blogs: %w", err)
	}
	defer rows.Close()

	recent := []models.RecentBlog{}
	for rows.Next() {
		var b models.RecentBlog
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent blog: %w", err)
		}
		recent = append(recent, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent blogs: %w", err)
	}

	var engagementRate float64
	if totalBlogs > 0 {
		engagementRate = math.Round(float64(totalComments)/float64(totalBlogs)*100*100) / 100
	}

	return &models.DashboardStats{
		Overview: models.DashboardOverview{
			TotalBlogs:     totalBlogs,
			TotalComments:  totalComments,
			TotalAuthors:   totalAuthors,
			EngagementRate: engagementRate,
		},
		RecentBlogs: recent,
	}, nil
}
