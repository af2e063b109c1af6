package walk

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/rotisserie/eris"
)

// lengthToken matches a run of digits optionally followed by vulgar-fraction
// glyphs, e.g. "4", "4¼". FancyFreeWalks descriptions write mileages this way.
var lengthToken = regexp.MustCompile(`\d+[¼½¾]*`)

// fractionDecimals maps each supported fraction glyph to its decimal suffix.
var fractionDecimals = map[rune]string{
	'¼': ".25",
	'½': ".50",
	'¾': ".75",
}

// ExtractLength mines a walk length in miles out of free-text description.
// Every digits-plus-fraction token is parsed and the maximum wins; text with
// no token yields 0. A token that fails to parse is an error: descriptions
// are human-written and a bad mileage should stop the run, not silently
// export a wrong number.
func ExtractLength(description string) (float64, error) {
	var length float64

	for _, token := range lengthToken.FindAllString(description, -1) {
		miles, err := parseLengthToken(token)
		if err != nil {
			return 0, err
		}
		if miles > length {
			length = miles
		}
	}

	return length, nil
}

// parseLengthToken converts one matched token to miles. The digit prefix may
// carry at most one fraction glyph; "1¼¾" has no single numeric reading and
// is rejected.
func parseLengthToken(token string) (float64, error) {
	digits := token
	fractions := ""
	for i, r := range token {
		if _, ok := fractionDecimals[r]; ok {
			digits = token[:i]
			fractions = token[i:]
			break
		}
	}

	if utf8.RuneCountInString(fractions) > 1 {
		return 0, eris.Errorf("walk: ambiguous fraction token %q", token)
	}

	text := digits
	if fractions != "" {
		glyph, _ := utf8.DecodeRuneInString(fractions)
		text += fractionDecimals[glyph]
	}

	miles, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "walk: parse length token %q", token)
	}
	return miles, nil
}
