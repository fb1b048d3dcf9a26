package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Rules is the declarative table driving the shared extraction engine. Each
// analysis category declares one instance; the engine itself carries no
// category knowledge.
type Rules struct {
	// SectionHeaders are the synonyms accepted as a list-section header,
	// lowercase, matched against the start of a line.
	SectionHeaders []string

	// Keywords is the fallback vocabulary scanned when no section was found.
	// Each keyword present in the text contributes the first sentence that
	// mentions it.
	Keywords []string

	// ScoreRe captures the numeric score in group 1, nil if the category has
	// no score. Accepted only when ScoreMin <= n <= ScoreMax; an out-of-range
	// match yields no score rather than a clamped one.
	ScoreRe  *regexp.Regexp
	ScoreMin int
	ScoreMax int
}

// headerLineRe recognizes a capitalized header line, which terminates a
// section body.
var headerLineRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9 /&-]{0,40}:\s*$`)

// sentenceSplitRe segments text on sentence punctuation followed by
// whitespace.
var sentenceSplitRe = regexp.MustCompile(`[.!?]\s+`)

// scorePattern builds the score regex for a set of label synonyms and a
// denominator, accepting "<n>/<denom>" and "<n> out of <denom>".
func scorePattern(labels []string, denom int) *regexp.Regexp {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	d := strconv.Itoa(denom)
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)[^0-9]{0,30}?(\d{1,2})\s*(?:/\s*` + d + `\b|out\s+of\s+` + d + `\b)`)
}

// sectionItems returns the bulleted body of the first section whose header
// line starts with one of the given synonyms. The body is the run of
// non-blank lines after the header, ending at a blank line, a new capitalized
// header line, or the end of the text.
func sectionItems(text string, headers []string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))
		for _, h := range headers {
			if !strings.HasPrefix(lower, h) {
				continue
			}
			rest := strings.TrimSpace(lower[len(h):])
			if rest != "" && !strings.HasPrefix(rest, ":") {
				continue
			}
			return collectItems(lines[i+1:])
		}
	}
	return nil
}

func collectItems(lines []string) []string {
	var items []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if headerLineRe.MatchString(trimmed) {
			break
		}
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-"))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// sentences segments text into sentence strings.
func sentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// keywordSentences implements the keyword fallback: for every vocabulary word
// present in the text, the first sentence mentioning it becomes one entry.
func keywordSentences(text string, keywords []string) []string {
	sents := sentences(text)
	lowered := make([]string, len(sents))
	for i, s := range sents {
		lowered[i] = strings.ToLower(s)
	}
	var out []string
	for _, kw := range keywords {
		for i, ls := range lowered {
			if strings.Contains(ls, kw) {
				out = append(out, strings.TrimRight(sents[i], ".!?"))
				break
			}
		}
	}
	return out
}

// dedupe removes exact-string duplicates preserving insertion order. It
// always returns a non-nil slice so list fields serialize as [] rather than
// null.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Items runs the section extraction and, when it yields nothing, the keyword
// fallback. The result is deduplicated and never nil.
func (r Rules) Items(text string) []string {
	items := sectionItems(text, r.SectionHeaders)
	if len(items) == 0 {
		items = keywordSentences(text, r.Keywords)
	}
	return dedupe(items)
}

// Score extracts the category score. The first regex match in the text wins;
// a match outside [ScoreMin, ScoreMax] yields nil.
func (r Rules) Score(text string) *int {
	if r.ScoreRe == nil {
		return nil
	}
	m := r.ScoreRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < r.ScoreMin || n > r.ScoreMax {
		return nil
	}
	return &n
}

// containsAny reports whether any keyword occurs in text,
// case-insensitively.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// referralFlag is the shared "see a specialist" signal: true when any keyword
// appears in the full text or in one of the already extracted findings.
func referralFlag(text string, findings []string, keywords []string) bool {
	if containsAny(text, keywords) {
		return true
	}
	for _, f := range findings {
		if containsAny(f, keywords) {
			return true
		}
	}
	return false
}
