package render

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type labelKey struct {
	scheme string
	n      int
}

// labelCache memoizes formatted numerals for the whole document.
type labelCache struct {
	labels map[labelKey]string
}

func newLabelCache() *labelCache {
	return &labelCache{labels: make(map[labelKey]string)}
}

func (c *labelCache) label(scheme string, n int) string {
	key := labelKey{scheme, n}
	if l, ok := c.labels[key]; ok {
		return l
	}
	l := formatLabel(scheme, n)
	c.labels[key] = l
	return l
}

// formatLabel renders autonumber scheme (arabicPeriod, alphaLcParenR,
// romanUcPeriod, ...) as the marker text. Unknown schemes produce bare
// number.
func formatLabel(scheme string, n int) string {
	if scheme == "hebrew2Minus" {
		return hebrew(n) + "-"
	}

	var (
		num  string
		rest string
	)
	switch {
	case strings.HasPrefix(scheme, "arabic"):
		num, rest = strconv.Itoa(n), strings.TrimPrefix(scheme, "arabic")
	case strings.HasPrefix(scheme, "alphaLc"):
		num, rest = alpha(n, 'a'), strings.TrimPrefix(scheme, "alphaLc")
	case strings.HasPrefix(scheme, "alphaUc"):
		num, rest = alpha(n, 'A'), strings.TrimPrefix(scheme, "alphaUc")
	case strings.HasPrefix(scheme, "romanLc"):
		num, rest = strings.ToLower(roman(n)), strings.TrimPrefix(scheme, "romanLc")
	case strings.HasPrefix(scheme, "romanUc"):
		num, rest = roman(n), strings.TrimPrefix(scheme, "romanUc")
	default:
		return strconv.Itoa(n)
	}

	switch rest {
	case "Period":
		return num + ". "
	case "ParenR":
		return num + ") "
	case "ParenBoth":
		return "(" + num + ") "
	case "Plain":
		return num + " "
	case "Minus":
		return num + "- "
	}
	return strconv.Itoa(n)
}

var romanDigits = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman produces subtractive Roman numeral, non positive numbers stay arabic.
func roman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var sb strings.Builder
	for _, d := range romanDigits {
		for ; n >= d.value; n -= d.value {
			sb.WriteString(d.symbol)
		}
	}
	return sb.String()
}

// alpha is bijective base 26: 1 -> a, 26 -> z, 27 -> aa.
func alpha(n int, base rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var buf []rune
	for n > 0 {
		n--
		buf = append([]rune{base + rune(n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}

var hebrewDigits = []struct {
	value  int
	letter string
}{
	{400, "ת"}, {300, "ש"}, {200, "ר"}, {100, "ק"},
	{90, "צ"}, {80, "פ"}, {70, "ע"}, {60, "ס"}, {50, "נ"},
	{40, "מ"}, {30, "ל"}, {20, "כ"}, {10, "י"},
	{9, "ט"}, {8, "ח"}, {7, "ז"}, {6, "ו"}, {5, "ה"},
	{4, "ד"}, {3, "ג"}, {2, "ב"}, {1, "א"},
}

const (
	geresh    = "׳"
	gershayim = "״"
)

// hebrew produces additive Hebrew numeral. Thousands are not written, 15 and
// 16 avoid spelling divine name, gershayim goes before the last letter and a
// lone letter gets geresh.
func hebrew(n int) string {
	n %= 1000
	var sb strings.Builder
	for _, d := range hebrewDigits {
		for ; n >= d.value; n -= d.value {
			sb.WriteString(d.letter)
		}
	}
	s := sb.String()
	s = strings.Replace(s, "יה", "ט"+gershayim+"ו", 1)
	s = strings.Replace(s, "יו", "ט"+gershayim+"ז", 1)

	runes := []rune(s)
	switch {
	case len(runes) == 1 && hebrewLetter(runes[0]):
		return s + geresh
	case len(runes) >= 2 && hebrewLetter(runes[len(runes)-1]) && hebrewLetter(runes[len(runes)-2]):
		last := runes[len(runes)-1]
		return s[:len(s)-utf8.RuneLen(last)] + gershayim + string(last)
	}
	return s
}

func hebrewLetter(r rune) bool {
	return r >= 'א' && r <= 'ת'
}
