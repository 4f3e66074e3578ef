// Package receipt extracts a monetary amount from an uploaded receipt
// image so the expense form can be pre-filled. The OCR pipeline is a
// single Tesseract pass over a lightly preprocessed image; the parsing
// layer is pure and handles Turkish-style grouped amounts ("1.250,00 TL").
package receipt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoAmount is returned when no plausible monetary amount can be extracted.
var ErrNoAmount = errors.New("no amount detected")

var (
	// Amounts with an optional currency marker before or after, e.g.
	// "₺1.250,00", "1.250,00 TL", "250 TL", "TL 1250".
	candidateRE = regexp.MustCompile(`(?i)(?:₺|tl\s*)?\d{1,3}(?:\.\d{3})*(?:,\d{2})?(?:\s*(?:tl|₺))?`)
	currencyRE  = regexp.MustCompile(`(?i)(₺|tl)`)
	centsRE     = regexp.MustCompile(`[.,]\d{2}$`)
)

// ParseAmount normalizes a matched substring into kuruş. "1.250,00" and
// "1.250" both parse to 125000; a trailing two-digit group after the last
// separator is treated as the kuruş part.
func ParseAmount(found string) (int64, error) {
	s := strings.TrimSpace(currencyRE.ReplaceAllString(found, ""))
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty candidate")
	}
	var lira, kurus string
	if centsRE.MatchString(s) {
		sep := strings.LastIndexAny(s, ".,")
		lira = onlyDigits(s[:sep])
		kurus = s[sep+1:]
	} else {
		lira = onlyDigits(s)
		kurus = "00"
	}
	if lira == "" {
		return 0, fmt.Errorf("no digits in %q", found)
	}
	whole, err := strconv.ParseInt(lira, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", lira, err)
	}
	cents, err := strconv.ParseInt(kurus, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse kurus %q: %w", kurus, err)
	}
	return whole*100 + cents, nil
}

// FindCandidates scans OCR text for amount-looking substrings.
func FindCandidates(text string) []string {
	var out []string
	for _, m := range candidateRE.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		if onlyDigits(m) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// BestCandidate picks the most plausible amount: candidates carrying a
// currency marker win over bare numbers, ties resolved by the larger
// amount. Returns ok=false when nothing parses.
func BestCandidate(candidates []string) (amount int64, raw string, ok bool) {
	bestMarked := false
	for _, c := range candidates {
		amt, err := ParseAmount(c)
		if err != nil || amt <= 0 {
			continue
		}
		marked := currencyRE.MatchString(c)
		better := false
		switch {
		case !ok:
			better = true
		case marked && !bestMarked:
			better = true
		case marked == bestMarked && amt > amount:
			better = true
		}
		if better {
			amount, raw, ok, bestMarked = amt, c, true, marked
		}
	}
	return amount, raw, ok
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
