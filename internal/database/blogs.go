// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/inkwell-hq/inkwell/internal/models"
)

const blogColumns = `id, title, content, author, user_id, slug, tags, category, is_published, views, created_at, updated_at`

// recentCommentsPerBlog caps the comments embedded per blog in list responses
// to keep payloads bounded.
const recentCommentsPerBlog = 50

// sortColumns is the allow-list mapping API sort keys to columns. Anything
// else falls back to createdAt.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"views":     "views",
}

// CreateBlog inserts a new blog owned by userID. The slug is derived from the
// title once, here, and never regenerated on update.
func (db *DB) CreateBlog(ctx context.Context, userID string, req *models.CreateBlogRequest) (*models.Blog, error) {
	now := time.Now().UTC()

	category := req.Category
	if category == "" {
		category = "General"
	}
	isPublished := true
	if req.IsPublished != nil {
		isPublished = *req.IsPublished
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	blog := &models.Blog{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Content:     req.Content,
		Author:      req.Author,
		UserID:      userID,
		Slug:        models.Slugify(req.Title, now),
		Tags:        tags,
		Category:    category,
		IsPublished: isPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tagsJSON, err := json.Marshal(blog.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO blogs (id, title, content, author, user_id, slug, tags, category, is_published, views, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		blog.ID, blog.Title, blog.Content, blog.Author, blog.UserID, blog.Slug,
		string(tagsJSON), blog.Category, blog.IsPublished, now, now,
	)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return blog, nil
}

// GetBlog fetches a single blog with its comment count.
func (db *DB) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	query := fmt.Sprintf(
		`SELECT %s, (SELECT COUNT(*) FROM comments c WHERE c.blog_id = blogs.id) FROM blogs WHERE id = ?`,
		blogColumns,
	)
	row := db.conn.QueryRowContext(ctx, query, id)
	blog, err := scanBlog(row)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// GetBlogOwner returns the owning user id for a blog; ErrNotFound when the
// blog does not exist. Used by the ownership middleware.
func (db *DB) GetBlogOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := db.conn.QueryRowContext(ctx, `SELECT user_id FROM blogs WHERE id = ?`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query blog owner: %w", err)
	}
	return owner, nil
}

// BlogExists reports whether a blog id is present.
func (db *DB) BlogExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check blog existence: %w", err)
	}
	return n > 0, nil
}

// IncrementViews bumps the view counter. View counts back the allow-listed
// "views" sort key on the list endpoint.
func (db *DB) IncrementViews(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `UPDATE blogs SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// buildBlogFilter constructs the WHERE clause and arguments for list queries.
// Search matches title OR content; category and author are case-insensitive
// substring filters.
func buildBlogFilter(q *models.ListBlogsQuery) (string, []interface{}) {
	where := " WHERE 1=1"
	args := []interface{}{}

	if s := strings.TrimSpace(q.Search); s != "" {
		where += " AND (title ILIKE ? OR content ILIKE ?)"
		pattern := "%" + s + "%"
		args = append(args, pattern, pattern)
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		where += " AND category ILIKE ?"
		args = append(args, "%"+c+"%")
	}
	if a := strings.TrimSpace(q.Author); a != "" {
		where += " AND author ILIKE ?"
		args = append(args, "%"+a+"%")
	}
	return where, args
}

// ListBlogs returns one page of blogs matching the query, with owner info,
// recent comments, and comment counts resolved, plus the total match count.
func (db *DB) ListBlogs(ctx context.Context, q *models.ListBlogsQuery) ([]models.Blog, int, error) {
	where, args := buildBlogFilter(q)

	var total int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM blogs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (q.Page - 1) * q.Limit
	query := fmt.Sprintf(`SELECT %s FROM blogs%s ORDER BY %s %s LIMIT ? OFFSET ?`,
		blogColumns, where, sortCol, direction)
	rows, err := db.conn.QueryContext(ctx, query, append(args, q.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		blog, err := scanBlogRow(rows)
		if err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate blogs: %w", err)
	}

	if err := db.populateBlogs(ctx, blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// populateBlogs resolves owner profiles, comment counts, and the most recent
// comments for one page of blogs. These are read-side projections; nothing
// here is persisted.
func (db *DB) populateBlogs(ctx context.Context, blogs []models.Blog) error {
	if len(blogs) == 0 {
		return nil
	}

	index := make(map[string]*models.Blog, len(blogs))
	ids := make([]interface{}, 0, len(blogs))
	placeholders := make([]string, 0, len(blogs))
	for i := range blogs {
		index[blogs[i].ID] = &blogs[i]
		ids = append(ids, blogs[i].ID)
		placeholders = append(placeholders, "?")
	}
	in := strings.Join(placeholders, ",")

	// Owner profiles.
	userIDs := make([]interface{}, 0, len(blogs))
	userPlaceholders := make([]string, 0, len(blogs))
	for i := range blogs {
		userIDs = append(userIDs, blogs[i].UserID)
		userPlaceholders = append(userPlaceholders, "?")
	}
	ownerRows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, username, email FROM users WHERE id IN (%s)`, strings.Join(userPlaceholders, ",")),
		userIDs...,
	)
	if err != nil {
		return fmt.Errorf("failed to query blog owners: %w", err)
	}
	defer ownerRows.Close()

	owners := map[string]models.PublicProfile{}
	for ownerRows.Next() {
		var p models.PublicProfile
		var email sql.NullString
		if err := ownerRows.Scan(&p.ID, &p.Username, &email); err != nil {
			return fmt.Errorf("failed to scan blog owner: %w", err)
		}
		p.Email = email.String
		owners[p.ID] = p
	}
	if err := ownerRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate blog owners: %w", err)
	}
	for i := range blogs {
		if p, ok := owners[blogs[i].UserID]; ok {
			owner := p
			blogs[i].Owner = &owner
		}
	}

	// Comment counts.
	countRows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT blog_id, COUNT(*) FROM comments WHERE blog_id IN (%s) GROUP BY blog_id`, in),
		ids...,
	)
	if err != nil {
		return fmt.Errorf("failed to count comments: %w", err)
	}
	defer countRows.Close()

	for countRows.Next() {
		var blogID string
		var count int
		if err := countRows.Scan(&blogID, &count); err != nil {
			return fmt.Errorf("failed to scan comment count: %w", err)
		}
		if b, ok := index[blogID]; ok {
			b.CommentCount = count
		}
	}
	if err := countRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate comment counts: %w", err)
	}

	// Recent comments, newest first, capped per blog.
	commentRows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, blog_id, commenter, comment_text, user_id, created_at, updated_at
		             FROM comments WHERE blog_id IN (%s) ORDER BY created_at DESC`, in),
		ids...,
	)
	if err != nil {
		return fmt.Errorf("failed to query recent comments: %w", err)
	}
	defer commentRows.Close()

	for commentRows.Next() {
		c, err := scanComment(commentRows)
		if err != nil {
			return err
		}
		if b, ok := index[c.BlogID]; ok && len(b.Comments) < recentCommentsPerBlog {
			b.Comments = append(b.Comments, *c)
		}
	}
	if err := commentRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate recent comments: %w", err)
	}
	return nil
}

// UpdateBlog merges the provided fields into an existing blog and stamps
// updated_at. Absent fields are left unchanged; the slug is never touched.
func (db *DB) UpdateBlog(ctx context.Context, id string, req *models.UpdateBlogRequest) (*models.Blog, error) {
	set := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if req.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *req.Title)
	}
	if req.Content != nil {
		set = append(set, "content = ?")
		args = append(args, *req.Content)
	}
	if req.Author != nil {
		set = append(set, "author = ?")
		args = append(args, *req.Author)
	}
	if req.Tags != nil {
		tagsJSON, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode tags: %w", err)
		}
		set = append(set, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if req.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *req.Category)
	}
	if req.IsPublished != nil {
		set = append(set, "is_published = ?")
		args = append(args, *req.IsPublished)
	}

	query := fmt.Sprintf(`UPDATE blogs SET %s WHERE id = ?`, strings.Join(set, ", "))
	res, err := db.conn.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return nil, mapConstraintError(err)
	}
	if err := requireRow(res); err != nil {
		return nil, err
	}
	return db.GetBlog(ctx, id)
}

// DeleteBlog hard-deletes a blog. Comments are intentionally left in place;
// the store has no cascade and orphaned comments remain readable by id.
func (db *DB) DeleteBlog(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return requireRow(res)
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlog(row rowScanner) (*models.Blog, error) {
	var b models.Blog
	var tagsJSON string
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.UserID, &b.Slug,
		&tagsJSON, &b.Category, &b.IsPublished, &b.Views, &b.CreatedAt, &b.UpdatedAt,
		&b.CommentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return &b, nil
}

// scanBlogRow scans a blog row without the comment-count column.
func scanBlogRow(row rowScanner) (*models.Blog, error) {
	var b models.Blog
	var tagsJSON string
	err := row.Scan(&b.ID, &b.Title, &b.Content, &b.Author, &b.UserID, &b.Slug,
		&tagsJSON, &b.Category, &b.IsPublished, &b.Views, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan blog: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return &b, nil
}
