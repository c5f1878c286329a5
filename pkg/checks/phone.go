package checks

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// unknownRegion makes the parser require an international "+" prefix.
const unknownRegion = "ZZ"

// Phone accepts an empty value (the field is optional) or a number that
// parses in international format and is valid for its region.
func Phone(value string) error {
	if value == "" {
		return nil
	}
	number, err := phonenumbers.Parse(value, unknownRegion)
	if err != nil {
		return ErrPhone
	}
	if !phonenumbers.IsValidNumber(number) {
		return ErrPhone
	}
	return nil
}

// FormatAsYouType formats partial phone input the way it should be displayed
// while typing. Only digits and a leading "+" are kept. Without a "+" there is
// no region to format for and the bare digits are returned. Input without
// digits formats to "" (or "+" when only the prefix was typed).
//
// International input is split into the country calling code and space
// separated groups following the region's number formats: "+1650253" gives
// "+1 650 253" and "+16502530000" gives "+1 650 253 0000".
func FormatAsYouType(input string) string {
	trimmed := strings.TrimSpace(input)
	international := strings.HasPrefix(trimmed, "+")

	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	if digits.Len() == 0 {
		if international {
			return "+"
		}
		return ""
	}
	if !international {
		return digits.String()
	}
	return formatInternational(digits.String())
}

func formatInternational(digits string) string {
	code, national, ok := splitCountryCode(digits)
	if !ok {
		return "+" + digits
	}
	prefix := "+" + strconv.Itoa(code)
	if national == "" {
		return prefix
	}
	groups, ok := groupNational(code, national)
	if !ok {
		return prefix + " " + national
	}
	return prefix + " " + strings.Join(groups, " ")
}

// splitCountryCode takes the shortest assigned calling code off digits.
// Calling codes are prefix-free, so the first hit is the only one.
func splitCountryCode(digits string) (int, string, bool) {
	if digits[0] == '0' {
		return 0, "", false
	}
	for size := 1; size <= 3 && size <= len(digits); size++ {
		code, err := strconv.Atoi(digits[:size])
		if err != nil {
			return 0, "", false
		}
		if phonenumbers.GetRegionCodeForCountryCode(code) != unknownRegion {
			return code, digits[size:], true
		}
	}
	return 0, "", false
}

// groupNational splits a complete national number with the first format whose
// pattern matches it, and a partial one by the digit counts of the first
// format that can still hold it.
func groupNational(code int, national string) ([]string, bool) {
	formats := formatsFor(code)
	if len(formats) == 0 {
		return nil, false
	}

	for _, format := range formats {
		if !leadingDigitsMatch(format, national) {
			continue
		}
		full := compilePattern("^(?:" + format.GetPattern() + ")$")
		if full == nil {
			continue
		}
		if match := full.FindStringSubmatch(national); match != nil {
			groups := make([]string, 0, len(match)-1)
			for _, group := range match[1:] {
				if group != "" {
					groups = append(groups, group)
				}
			}
			return groups, true
		}
	}

	for _, format := range formats {
		if !leadingDigitsMatch(format, national) {
			continue
		}
		sizes, ok := patternGroups(format.GetPattern())
		if !ok {
			continue
		}
		capacity := 0
		for _, size := range sizes {
			capacity += size.max
		}
		if capacity < len(national) {
			continue
		}
		return chunk(national, sizes), true
	}
	return nil, false
}

// leadingDigitsMatch applies the leading digits pattern for the number of
// digits typed so far. Patterns get more specific from the third digit on.
func leadingDigitsMatch(format *phonenumbers.NumberFormat, national string) bool {
	patterns := format.GetLeadingDigitsPattern()
	if len(patterns) == 0 || len(national) < 3 {
		return true
	}
	index := min(len(national)-3, len(patterns)-1)
	re := compilePattern("^(?:" + patterns[index] + ")")
	return re != nil && re.MatchString(national)
}

func chunk(national string, sizes []groupSize) []string {
	groups := make([]string, 0, len(sizes))
	rest := national
	for _, size := range sizes {
		if rest == "" {
			break
		}
		n := min(size.max, len(rest))
		groups = append(groups, rest[:n])
		rest = rest[n:]
	}
	return groups
}

type groupSize struct {
	min, max int
}

// patternGroups reads the digit counts of each capture group in a format
// pattern such as `(\d{2})([2-9]\d{2,3})(\d{4})`. Patterns using anything
// beyond digit classes and counted repeats are not supported.
func patternGroups(pattern string) ([]groupSize, bool) {
	var (
		groups  []groupSize
		current groupSize
		open    bool
	)
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '(':
			if open {
				return nil, false
			}
			open, current = true, groupSize{}
		case c == ')':
			if !open {
				return nil, false
			}
			open = false
			groups = append(groups, current)
		case !open:
			return nil, false
		case c == '\\' && i+1 < len(pattern) && pattern[i+1] == 'd':
			lo, hi, next := repeat(pattern, i+2)
			current.min, current.max = current.min+lo, current.max+hi
			i = next - 1
		case c == '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				return nil, false
			}
			lo, hi, next := repeat(pattern, i+end+1)
			current.min, current.max = current.min+lo, current.max+hi
			i = next - 1
		default:
			return nil, false
		}
	}
	if open || len(groups) == 0 {
		return nil, false
	}
	return groups, true
}

// repeat reads an optional {n} or {n,m} at pattern[at:].
func repeat(pattern string, at int) (lo, hi, next int) {
	if at >= len(pattern) || pattern[at] != '{' {
		return 1, 1, at
	}
	end := strings.IndexByte(pattern[at:], '}')
	if end < 0 {
		return 1, 1, at
	}
	first, second, ranged := strings.Cut(pattern[at+1:at+end], ",")
	lo, err := strconv.Atoi(first)
	if err != nil {
		return 1, 1, at
	}
	hi = lo
	if ranged {
		if hi, err = strconv.Atoi(second); err != nil {
			return 1, 1, at
		}
	}
	return lo, hi, at + end + 1
}

var (
	formatsOnce   sync.Once
	formatsByCode map[int][]*phonenumbers.NumberFormat

	patternCache sync.Map
)

// formatsFor returns the international number formats of the main region for
// a calling code.
func formatsFor(code int) []*phonenumbers.NumberFormat {
	formatsOnce.Do(func() {
		formatsByCode = make(map[int][]*phonenumbers.NumberFormat)
		collection, err := phonenumbers.MetadataCollection()
		if err != nil || collection == nil {
			return
		}
		isMain := make(map[int]bool)
		for _, meta := range collection.GetMetadata() {
			cc := int(meta.GetCountryCode())
			if _, seen := formatsByCode[cc]; seen && (isMain[cc] || !meta.GetMainCountryForCode()) {
				continue
			}
			formats := meta.GetIntlNumberFormat()
			if len(formats) == 0 {
				formats = meta.GetNumberFormat()
			}
			formatsByCode[cc] = formats
			isMain[cc] = meta.GetMainCountryForCode()
		}
	})
	return formatsByCode[code]
}

func compilePattern(expr string) *regexp.Regexp {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil
	}
	patternCache.Store(expr, re)
	return re
}
