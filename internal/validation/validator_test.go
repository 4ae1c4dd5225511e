// Inkwell - Blog Platform API and Analytics Backend
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-hq/inkwell

package validation

import (
	"testing"

	"github.com/inkwell-hq/inkwell/internal/models"
)

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

func TestValidateStructRegisterRequest(t *testing.T) {
	tests := []struct {
		name       string
		input      models.RegisterRequest
		wantFields []string // empty means valid
	}{
		{
			name:  "valid with email",
			input: models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"},
		},
		{
			name:  "valid without email",
			input: models.RegisterRequest{Username: "bob42", Password: "secret1"},
		},
		{
			name:       "missing username",
			input:      models.RegisterRequest{Password: "secret1"},
			wantFields: []string{"username"},
		},
		{
			name:       "short password",
			input:      models.RegisterRequest{Username: "alice", Password: "abc"},
			wantFields: []string{"password"},
		},
		{
			name:       "bad email",
			input:      models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret1"},
			wantFields: []string{"email"},
		},
		{
			name:       "non-alphanumeric username",
			input:      models.RegisterRequest{Username: "al ice", Password: "secret1"},
			wantFields: []string{"username"},
		},
		{
			name:       "everything wrong",
			input:      models.RegisterRequest{Username: "a", Email: "x", Password: "b"},
			wantFields: []string{"username", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("expected valid, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected validation failure on %v", tt.wantFields)
			}
			got := map[string]bool{}
			for _, fe := range verr.FieldErrors() {
				got[fe.Field] = true
			}
			for _, field := range tt.wantFields {
				if !got[field] {
					t.Errorf("missing error for field %q, got %v", field, verr.FieldErrors())
				}
			}
		})
	}
}

func TestValidateStructCommentBounds(t *testing.T) {
	short := models.AddCommentRequest{Commenter: "a", CommentText: "hiya there"}
	if verr := ValidateStruct(&short); verr == nil {
		t.Error("1-char commenter should fail")
	}

	shortText := models.AddCommentRequest{Commenter: "ann", CommentText: "hey"}
	if verr := ValidateStruct(&shortText); verr == nil {
		t.Error("4-char comment text should fail")
	}

	ok := models.AddCommentRequest{Commenter: "ann", CommentText: "hello there"}
	if verr := ValidateStruct(&ok); verr != nil {
		t.Errorf("expected valid, got %v", verr)
	}
}

func TestValidateStructListQuery(t *testing.T) {
	bad := models.ListBlogsQuery{Page: 0, Limit: 101, SortBy: "createdAt", SortOrder: "desc"}
	verr := ValidateStruct(&bad)
	if verr == nil {
		t.Fatal("page=0 limit=101 should fail")
	}
	if len(verr.FieldErrors()) != 2 {
		t.Errorf("expected 2 field errors, got %v", verr.FieldErrors())
	}

	badSort := models.ListBlogsQuery{Page: 1, Limit: 10, SortBy: "password_hash", SortOrder: "desc"}
	if verr := ValidateStruct(&badSort); verr == nil {
		t.Error("sortBy outside the allow-list should fail")
	}
}

func TestValidationErrorMessages(t *testing.T) {
	req := models.AddCommentRequest{Commenter: "ann"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("expected failure for missing commentText")
	}
	fields := verr.FieldErrors()
	if len(fields) != 1 {
		t.Fatalf("expected 1 error, got %v", fields)
	}
	if fields[0].Field != "commentText" {
		t.Errorf("field = %q, want commentText", fields[0].Field)
	}
	if fields[0].Message != "commentText is required" {
		t.Errorf("message = %q", fields[0].Message)
	}
	if verr.Error() == "" {
		t.Error("combined Error() should not be empty")
	}
}
