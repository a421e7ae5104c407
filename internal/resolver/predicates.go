package resolver

import "strings"

// Contains matches when the query contains any of subs.
func Contains(subs ...string) Predicate {
	return func(q string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}
}

// ContainsAll matches when the query contains every one of subs.
func ContainsAll(subs ...string) Predicate {
	return func(q string) bool {
		for _, s := range subs {
			if !strings.Contains(q, s) {
				return false
			}
		}
		return len(subs) > 0
	}
}

// Or matches when any predicate matches.
func Or(preds ...Predicate) Predicate {
	return func(q string) bool {
		for _, p := range preds {
			if p(q) {
				return true
			}
		}
		return false
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(q string) bool {
		for _, p := range preds {
			if !p(q) {
				return false
			}
		}
		return len(preds) > 0
	}
}

// Not inverts p. Used for exclusion triggers.
func Not(p Predicate) Predicate {
	return func(q string) bool { return !p(q) }
}

// Always matches every query.
func Always() Predicate {
	return func(string) bool { return true }
}
