// Package ranking extracts the thin typed view the tool needs from opaque
// candidate records (score, pros, cons and a few display fields) and ranks
// candidates by compatibility score. Records keep whatever nested structure
// the provider returned; only the consumed fields are interpreted.
package ranking

import (
	"strconv"
	"strings"
)

// SentinelScore marks a candidate whose scoring call was attempted and
// failed, as opposed to one not yet scored.
const SentinelScore = -1

// Candidate pairs an identifier with its raw provider record.
type Candidate struct {
	ID     string
	Record any
}

// Score returns the candidate's compatibility score. The second return is
// false when the record carries no usable numeric score.
func (c Candidate) Score() (float64, bool) {
	m, ok := asMap(c.Record)
	if !ok {
		return 0, false
	}
	v, ok := m["compatibilityScore"]
	if !ok {
		return 0, false
	}
	return coerceFloat(v)
}

// Scored reports whether the candidate carries a successful score, excluding
// the sentinel value.
func (c Candidate) Scored() bool {
	score, ok := c.Score()
	return ok && score >= 0
}

func (c Candidate) Pros() []string {
	return c.stringList("pros")
}

func (c Candidate) Cons() []string {
	return c.stringList("cons")
}

// Name builds a display name from the record's linkedin sub-document.
func (c Candidate) Name() string {
	li := c.linkedin()
	if name := coerceString(li["full_name"]); name != "" {
		return name
	}

	parts := make([]string, 0, 2)
	for _, key := range []string{"first_name", "last_name"} {
		if v := coerceString(li[key]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// Title returns the candidate's current title: the best experience's title
// when present, otherwise the profile occupation or headline.
func (c Candidate) Title() string {
	li := c.linkedin()
	if exp, ok := c.bestExperience(); ok {
		if title := coerceString(exp["title"]); title != "" {
			return title
		}
	}
	if occupation := coerceString(li["occupation"]); occupation != "" {
		return occupation
	}
	return coerceString(li["headline"])
}

func (c Candidate) Company() string {
	if exp, ok := c.bestExperience(); ok {
		return coerceString(exp["company"])
	}
	return ""
}

// LinkedInURL derives a profile URL from the public identifier when present,
// falling back to a raw linkedin field.
func (c Candidate) LinkedInURL() string {
	li := c.linkedin()

	if publicID := coerceString(li["public_identifier"]); publicID != "" {
		return "https://www.linkedin.com/in/" + strings.Trim(publicID, "/")
	}

	raw := coerceString(li["linkedin"])
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://www.linkedin.com/in/" + raw
}

func (c Candidate) linkedin() map[string]any {
	m, ok := asMap(c.Record)
	if !ok {
		return nil
	}
	li, _ := asMap(m["linkedin"])
	return li
}

// bestExperience picks the current experience (one with no end year) or,
// failing that, the most recently ended one.
func (c Candidate) bestExperience() (map[string]any, bool) {
	raw, ok := c.linkedin()["experiences"]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}

	var best map[string]any
	bestKey := -1
	for _, item := range list {
		exp, ok := asMap(item)
		if !ok {
			continue
		}

		ends, _ := asMap(exp["ends_at"])
		if _, hasYear := coerceFloat(ends["year"]); !hasYear {
			// No end date means a current position; it wins outright.
			return exp, true
		}

		if key := dateKey(ends); key > bestKey {
			best = exp
			bestKey = key
		}
	}

	return best, best != nil
}

// dateKey turns a {year, month, day} document into a sortable integer.
func dateKey(d map[string]any) int {
	year, ok := coerceFloat(d["year"])
	if !ok {
		return -1
	}
	month, _ := coerceFloat(d["month"])
	day, _ := coerceFloat(d["day"])
	return int(year)*10000 + int(month)*100 + int(day)
}

func (c Candidate) stringList(key string) []string {
	m, ok := asMap(c.Record)
	if !ok {
		return nil
	}
	raw, ok := m[key]
	if !ok {
		return nil
	}

	switch list := raw.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func coerceString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
