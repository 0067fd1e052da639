package cards

import (
	"iter"
	"strings"
)

// FilterOptions narrows search results. Zero-valued fields match everything.
type FilterOptions struct {
	Colors    []string // any of these color symbols
	Types     []string // any of these type-line substrings
	FreeWords string   // every word must appear in name, type line or oracle text
}

func (o FilterOptions) IsZero() bool {
	return len(o.Colors) == 0 && len(o.Types) == 0 && strings.TrimSpace(o.FreeWords) == ""
}

func containsAny(hay []string, needles []string) bool {
	for _, n := range needles {
		for _, h := range hay {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}

// Matches reports whether c passes every option in opt.
func Matches(c Card, opt FilterOptions) bool {
	if len(opt.Colors) > 0 && !containsAny(c.Colors, opt.Colors) {
		return false
	}
	if len(opt.Types) > 0 {
		typeLine := strings.ToLower(c.Type)
		matched := false
		for _, t := range opt.Types {
			if strings.Contains(typeLine, strings.ToLower(strings.TrimSpace(t))) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if opt.FreeWords != "" {
		hay := strings.ToLower(c.Name + " " + c.Type)
		if c.OracleText != nil {
			hay += " " + strings.ToLower(*c.OracleText)
		}
		for _, k := range strings.Fields(opt.FreeWords) {
			if !strings.Contains(hay, strings.ToLower(k)) {
				return false
			}
		}
	}
	return true
}

// Filter lazily drops cards that do not match opt.
func Filter(cards iter.Seq[Card], opt FilterOptions) iter.Seq[Card] {
	if opt.IsZero() {
		return cards
	}
	return func(yield func(Card) bool) {
		for c := range cards {
			if Matches(c, opt) && !yield(c) {
				return
			}
		}
	}
}
