package handler

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name   string
		target string
		filter string
		want   listQuery
	}{
		{
			name:   "defaults",
			target: "/orders",
			filter: "status",
			want:   listQuery{Page: 1},
		},
		{
			name:   "page and search",
			target: "/customers?page=3&search=rosa",
			want:   listQuery{Page: 3, Search: "rosa"},
		},
		{
			name:   "bad page reads as one",
			target: "/customers?page=banana",
			want:   listQuery{Page: 1},
		},
		{
			name:   "negative page reads as one",
			target: "/customers?page=-2",
			want:   listQuery{Page: 1},
		},
		{
			name:   "filter captured",
			target: "/orders?status=pending&page=2",
			filter: "status",
			want:   listQuery{Page: 2, Filter: "pending"},
		},
		{
			name:   "filter ignored when screen has none",
			target: "/customers?status=pending",
			want:   listQuery{Page: 1},
		},
		{
			name:   "search is trimmed",
			target: "/customers?search=" + url.QueryEscape("  rosa  "),
			want:   listQuery{Page: 1, Search: "rosa"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			assert.Equal(t, tt.want, parseListQuery(r, tt.filter))
		})
	}
}

func TestParseListQueryFromFormBody(t *testing.T) {
	body := strings.NewReader("page=4&search=cake&status=completed&first_name=x")
	r := httptest.NewRequest("POST", "/orders", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	got := parseListQuery(r, "status")
	assert.Equal(t, listQuery{Page: 4, Search: "cake", Filter: "completed"}, got)
}

func TestPagePrefix(t *testing.T) {
	tests := []struct {
		name   string
		query  listQuery
		filter string
		want   string
	}{
		{
			name:  "bare",
			query: listQuery{Page: 1},
			want:  "?page=",
		},
		{
			name:  "search carried",
			query: listQuery{Page: 2, Search: "rosa"},
			want:  "?search=rosa&page=",
		},
		{
			name:   "search and filter carried",
			query:  listQuery{Page: 2, Search: "cake", Filter: "pending"},
			filter: "status",
			want:   "?search=cake&status=pending&page=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.pagePrefix(tt.filter))
		})
	}
}

func TestPathID(t *testing.T) {
	r := httptest.NewRequest("GET", "/customers/7", nil)
	r.SetPathValue("id", "7")
	id, ok := pathID(r)
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	r = httptest.NewRequest("GET", "/customers/x", nil)
	r.SetPathValue("id", "x")
	_, ok = pathID(r)
	assert.False(t, ok)
}
