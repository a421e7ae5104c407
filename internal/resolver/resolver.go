// Package resolver selects an intent for a free-text query from an ordered
// rule table and synthesizes the answer from an in-memory record set.
//
// Rules are evaluated in declaration order and the first trigger that matches
// wins; there is no scoring. A table that matches nothing answers with its
// fixed fallback text.
package resolver

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Intent names the closed category a query was classified into.
type Intent string

// IntentFallback is reported when no rule matched.
const IntentFallback Intent = "fallback"

// Predicate tests a normalized query.
type Predicate func(query string) bool

// AnswerFunc builds the reply for a matched rule. It receives the normalized
// query and must not modify records.
type AnswerFunc[T any] func(query string, records []T) string

// Rule pairs a trigger with the handler it selects.
type Rule[T any] struct {
	Intent  Intent
	Trigger Predicate
	Answer  AnswerFunc[T]
}

// Table is an ordered list of rules plus the fallback reply.
type Table[T any] struct {
	Rules    []Rule[T]
	Fallback string
}

// Result is the resolved intent and the reply text.
type Result struct {
	Intent Intent `json:"intent"`
	Reply  string `json:"reply"`
}

// Resolve normalizes query, picks the first matching rule and runs it.
func (t *Table[T]) Resolve(query string, records []T) Result {
	q := Normalize(query)
	if rule, ok := t.match(q); ok {
		return Result{Intent: rule.Intent, Reply: rule.Answer(q, records)}
	}
	return Result{Intent: IntentFallback, Reply: t.Fallback}
}

// Classify reports which intent query selects without running any handler.
func (t *Table[T]) Classify(query string) Intent {
	if rule, ok := t.match(Normalize(query)); ok {
		return rule.Intent
	}
	return IntentFallback
}

func (t *Table[T]) match(q string) (Rule[T], bool) {
	for _, rule := range t.Rules {
		if rule.Trigger != nil && rule.Trigger(q) {
			return rule, true
		}
	}
	return Rule[T]{}, false
}

// Normalize applies NFKC, trims surrounding space and lower-cases.
func Normalize(query string) string {
	q := norm.NFKC.String(query)
	// Casers keep state, so each call gets its own.
	return cases.Lower(language.Und).String(strings.TrimSpace(q))
}
