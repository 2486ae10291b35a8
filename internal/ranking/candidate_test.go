package ranking

import "testing"

func record(li map[string]any) map[string]any {
	return map[string]any{"linkedin": li}
}

func TestScoreCoercion(t *testing.T) {
	cases := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"float", float64(73.5), 73.5, true},
		{"int", 73, 73, true},
		{"numeric string", " 73.5 ", 73.5, true},
		{"junk string", "high", 0, false},
		{"empty string", "", 0, false},
		{"nil", nil, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			candidate := Candidate{ID: "x", Record: map[string]any{"compatibilityScore": c.value}}
			got, ok := candidate.Score()
			if ok != c.wantOK || got != c.want {
				t.Fatalf("got (%v, %v), want (%v, %v)", got, ok, c.want, c.wantOK)
			}
		})
	}
}

func TestScoredExcludesSentinel(t *testing.T) {
	sentinel := Candidate{ID: "x", Record: map[string]any{"compatibilityScore": float64(SentinelScore)}}
	if sentinel.Scored() {
		t.Fatalf("sentinel score must not count as scored")
	}

	zero := Candidate{ID: "y", Record: map[string]any{"compatibilityScore": float64(0)}}
	if !zero.Scored() {
		t.Fatalf("a zero score is still a score")
	}
}

func TestNameFallsBackToParts(t *testing.T) {
	full := Candidate{Record: record(map[string]any{"full_name": "Ada Lovelace"})}
	if full.Name() != "Ada Lovelace" {
		t.Fatalf("got %q", full.Name())
	}

	parts := Candidate{Record: record(map[string]any{"first_name": "Ada", "last_name": "Lovelace"})}
	if parts.Name() != "Ada Lovelace" {
		t.Fatalf("got %q", parts.Name())
	}

	firstOnly := Candidate{Record: record(map[string]any{"first_name": "Ada"})}
	if firstOnly.Name() != "Ada" {
		t.Fatalf("got %q", firstOnly.Name())
	}

	empty := Candidate{Record: "junk"}
	if empty.Name() != "" {
		t.Fatalf("got %q", empty.Name())
	}
}

func TestTitlePrefersCurrentExperience(t *testing.T) {
	c := Candidate{Record: record(map[string]any{
		"occupation": "Generalist",
		"experiences": []any{
			map[string]any{
				"title":   "Analyst",
				"company": "Old Corp",
				"ends_at": map[string]any{"year": float64(2022), "month": float64(6)},
			},
			map[string]any{
				"title":   "Associate",
				"company": "New Corp",
			},
		},
	})}

	if c.Title() != "Associate" {
		t.Fatalf("expected the current experience to win, got %q", c.Title())
	}
	if c.Company() != "New Corp" {
		t.Fatalf("got %q", c.Company())
	}
}

func TestTitlePicksLatestEndedExperience(t *testing.T) {
	c := Candidate{Record: record(map[string]any{
		"experiences": []any{
			map[string]any{
				"title":   "Intern",
				"ends_at": map[string]any{"year": float64(2020), "month": float64(8)},
			},
			map[string]any{
				"title":   "Analyst",
				"ends_at": map[string]any{"year": float64(2023), "month": float64(1)},
			},
			map[string]any{
				"title":   "Junior Analyst",
				"ends_at": map[string]any{"year": float64(2022), "month": float64(12)},
			},
		},
	})}

	if c.Title() != "Analyst" {
		t.Fatalf("got %q", c.Title())
	}
}

func TestTitleFallsBackToOccupationAndHeadline(t *testing.T) {
	occupation := Candidate{Record: record(map[string]any{"occupation": "Consultant"})}
	if occupation.Title() != "Consultant" {
		t.Fatalf("got %q", occupation.Title())
	}

	headline := Candidate{Record: record(map[string]any{"headline": "Strategy at Acme"})}
	if headline.Title() != "Strategy at Acme" {
		t.Fatalf("got %q", headline.Title())
	}
}

func TestLinkedInURL(t *testing.T) {
	cases := []struct {
		name string
		li   map[string]any
		want string
	}{
		{
			"public identifier",
			map[string]any{"public_identifier": "ada-lovelace/"},
			"https://www.linkedin.com/in/ada-lovelace",
		},
		{
			"raw url",
			map[string]any{"linkedin": "https://www.linkedin.com/in/ada"},
			"https://www.linkedin.com/in/ada",
		},
		{
			"raw slug",
			map[string]any{"linkedin": "ada"},
			"https://www.linkedin.com/in/ada",
		},
		{
			"nothing",
			map[string]any{},
			"",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			candidate := Candidate{Record: record(c.li)}
			if got := candidate.LinkedInURL(); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestProsAndCons(t *testing.T) {
	c := Candidate{Record: map[string]any{
		"pros": []string{"sector match"},
		"cons": []any{"short tenure", 7, "no local presence"},
	}}

	pros := c.Pros()
	if len(pros) != 1 || pros[0] != "sector match" {
		t.Fatalf("got %v", pros)
	}

	cons := c.Cons()
	if len(cons) != 2 || cons[0] != "short tenure" || cons[1] != "no local presence" {
		t.Fatalf("got %v", cons)
	}

	if got := (Candidate{Record: map[string]any{}}).Pros(); got != nil {
		t.Fatalf("expected nil for missing pros, got %v", got)
	}
}
