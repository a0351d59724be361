package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Oudwins/tailwind-merge-go/pkg/twmerge"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Math functions
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"min": func(a, b int) int {
			if a < b {
				return a
			}
			return b
		},

		// Date/Time functions
		"year": func() int {
			return time.Now().Year()
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 Jan 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2 Jan 2006 15:04")
		},
		"formatDateISO": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"formatDatePtr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "—"
			}
			return t.Format("2 Jan 2006")
		},
		"formatDateISOPtr": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},

		// Money formatting
		"money": func(m domain.Money) string {
			return "£" + m.String()
		},

		// String functions
		"lower": func(s string) string {
			return strings.ToLower(s)
		},
		"upper": func(s string) string {
			return strings.ToUpper(s)
		},
		"title": func(v interface{}) string {
			s := fmt.Sprint(v)
			return cases.Title(language.English).String(s)
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},

		// JSON encoding for safe JavaScript embedding (Alpine x-data)
		"json": func(v interface{}) template.JS {
			b, err := json.Marshal(v)
			if err != nil {
				return template.JS(`""`)
			}
			return template.JS(b)
		},

		// Tailwind class merging for component variants
		"classes": func(cls ...string) string {
			return twmerge.Merge(cls...)
		},

		// Conditional/Logic functions
		"ternary": func(condition bool, trueVal, falseVal interface{}) interface{} {
			if condition {
				return trueVal
			}
			return falseVal
		},
		"default": func(defaultVal, val interface{}) interface{} {
			if val == nil || val == "" || val == 0 {
				return defaultVal
			}
			return val
		},

		// Collection functions
		"dict": func(values ...interface{}) map[string]interface{} {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil
				}
				dict[key] = values[i+1]
			}
			return dict
		},
		"seq": func(start, end int) []int {
			var result []int
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},
		"pageRange": func(currentPage, totalPages int) []int {
			// Show max 7 page numbers
			maxPages := 7
			if totalPages <= maxPages {
				result := []int{}
				for i := 1; i <= totalPages; i++ {
					result = append(result, i)
				}
				return result
			}

			start := currentPage - 3
			end := currentPage + 3

			if start < 1 {
				start = 1
				end = maxPages
			}
			if end > totalPages {
				end = totalPages
				start = totalPages - maxPages + 1
			}

			result := []int{}
			for i := start; i <= end; i++ {
				result = append(result, i)
			}
			return result
		},

		// HTML rendering functions
		"html": func(s string) template.HTML {
			return template.HTML(s)
		},
		"attr": func(s string) template.HTMLAttr {
			return template.HTMLAttr(s)
		},
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},

		// Badge helpers for order and product status pills
		"statusColor": func(status interface{}) string {
			switch fmt.Sprint(status) {
			case "pending":
				return "bg-yellow-100 text-yellow-800"
			case "confirmed":
				return "bg-blue-100 text-blue-800"
			case "in_progress":
				return "bg-purple-100 text-purple-800"
			case "completed":
				return "bg-green-100 text-green-800"
			case "cancelled":
				return "bg-red-100 text-red-800"
			default:
				return "bg-gray-100 text-gray-600"
			}
		},
		"suitabilityColor": func(suitability interface{}) string {
			switch fmt.Sprint(suitability) {
			case "vegan":
				return "bg-green-100 text-green-800"
			case "vegetarian":
				return "bg-lime-100 text-lime-800"
			case "gluten_free":
				return "bg-amber-100 text-amber-800"
			default:
				return "bg-gray-100 text-gray-600"
			}
		},
		"activeColor": func(active bool) string {
			if active {
				return "bg-green-100 text-green-800"
			}
			return "bg-gray-100 text-gray-600"
		},
	}
}
