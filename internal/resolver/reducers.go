package resolver

import (
	"sort"
	"strings"
)

// MaxBy returns the record with the largest value. Equal values keep the
// earliest record. ok is false for an empty slice.
func MaxBy[T any](records []T, value func(T) float64) (best T, ok bool) {
	for i, r := range records {
		if i == 0 || value(r) > value(best) {
			best = r
		}
	}
	return best, len(records) > 0
}

// MinBy is MaxBy for the smallest value.
func MinBy[T any](records []T, value func(T) float64) (best T, ok bool) {
	for i, r := range records {
		if i == 0 || value(r) < value(best) {
			best = r
		}
	}
	return best, len(records) > 0
}

// Distinct collects the non-empty values of field, deduplicated and sorted.
func Distinct[T any](records []T, field func(T) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Filter keeps records for which keep is true, in order.
func Filter[T any](records []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterEqualFold keeps records whose field equals value ignoring case.
func FilterEqualFold[T any](records []T, field func(T) string, value string) []T {
	return Filter(records, func(r T) bool {
		return strings.EqualFold(field(r), value)
	})
}

// Take returns at most n leading records. n <= 0 means no limit.
func Take[T any](records []T, n int) []T {
	if n > 0 && len(records) > n {
		return records[:n]
	}
	return records
}

// Map projects every record through fn.
func Map[T, U any](records []T, fn func(T) U) []U {
	out := make([]U, len(records))
	for i, r := range records {
		out[i] = fn(r)
	}
	return out
}

const trailingPunct = "?.!,;:"

// LastToken returns the final whitespace-delimited token of query with
// trailing punctuation stripped.
func LastToken(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimRight(fields[len(fields)-1], trailingPunct)
}

// Between returns the trimmed text after the first prefix and before the next
// suffix, or "" when either marker is missing.
func Between(query, prefix, suffix string) string {
	start := strings.Index(query, prefix)
	if start < 0 {
		return ""
	}
	rest := query[start+len(prefix):]
	end := strings.Index(rest, suffix)
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
