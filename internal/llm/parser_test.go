package llm

import (
	"testing"
)

func TestCleanMarkdownWrapper(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain JSON untouched",
			content: `{"category": "Groceries", "confidence": 0.9}`,
			want:    `{"category": "Groceries", "confidence": 0.9}`,
		},
		{
			name:    "json fence",
			content: "```json\n{\"category\": \"Groceries\", \"confidence\": 0.9}\n```",
			want:    `{"category": "Groceries", "confidence": 0.9}`,
		},
		{
			name:    "bare fence",
			content: "```\n{\"category\": \"Groceries\", \"confidence\": 0.9}\n```",
			want:    `{"category": "Groceries", "confidence": 0.9}`,
		},
		{
			name:    "surrounding whitespace",
			content: "  \n```json\n[\"a\"]\n```\n  ",
			want:    `["a"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMarkdownWrapper(tt.content); got != tt.want {
				t.Errorf("cleanMarkdownWrapper() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantCategory   string
		wantConfidence float64
		wantErr        bool
	}{
		{
			name:           "valid response",
			content:        `{"category": "Transport", "confidence": 0.85}`,
			wantCategory:   "Transport",
			wantConfidence: 0.85,
		},
		{
			name:           "fenced response",
			content:        "```json\n{\"category\": \"Health\", \"confidence\": 0.7}\n```",
			wantCategory:   "Health",
			wantConfidence: 0.7,
		},
		{
			name:    "missing category",
			content: `{"confidence": 0.9}`,
			wantErr: true,
		},
		{
			name:    "not JSON",
			content: "I think this is Groceries",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestion(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSuggestion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %f, want %f", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestParseInsights(t *testing.T) {
	got, err := parseInsights("```json\n[\"You spend a lot on coffee.\", \"Utilities rose last month.\"]\n```")
	if err != nil {
		t.Fatalf("parseInsights() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parseInsights() returned %d items, want 2", len(got))
	}

	if _, err := parseInsights("[]"); err == nil {
		t.Error("empty array should be an error")
	}
	if _, err := parseInsights("not json"); err == nil {
		t.Error("non-JSON should be an error")
	}
}
