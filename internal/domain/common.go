package domain

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/inkpost/backend/pkg/errorx"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 100

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func checkGroupSlug(slug string) error {
	if len(slug) > maxSlugLength {
		return errorx.New(errorx.BadRequest, "Slug too long (at most %d characters)", maxSlugLength)
	}

	if !slugPattern.MatchString(slug) {
		return errorx.New(errorx.BadRequest, "Slug contains invalid characters")
	}

	return nil
}

// cyrillicTranslit maps lowercase Cyrillic letters to their Latin
// transliteration for slug derivation.
var cyrillicTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "sch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// generateGroupSlug derives a URL-safe lowercase ASCII slug from a group
// title. The derivation is deterministic and the result never exceeds
// maxSlugLength, so an oversized title cannot fail the column constraint.
func generateGroupSlug(title string) string {
	title = strings.ToLower(title)

	// Transliterate Cyrillic before stripping combining marks. Otherwise й
	// decomposes into и plus a breve and comes out as "i" instead of "y",
	// and ё loses its diaeresis the same way.
	var latin strings.Builder
	for _, c := range title {
		if translit, ok := cyrillicTranslit[c]; ok {
			latin.WriteString(translit)
		} else {
			latin.WriteRune(c)
		}
	}
	title = latin.String()

	// Decompose Latin letters with diacritics into their base letter.
	if stripped, _, err := transform.String(stripMarks, title); err == nil {
		title = stripped
	}

	var b strings.Builder
	lastDash := true
	for _, c := range title {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.Trim(slug[:maxSlugLength], "-")
	}

	return slug
}

// resolvePage clamps a 1-indexed page number to the valid range for the
// given total. An out-of-range page lands on the nearest valid page instead
// of failing. It returns the resolved page and the row offset.
func resolvePage(page, pageSize int, total int64) (int, int) {
	lastPage := int((total + int64(pageSize) - 1) / int64(pageSize))
	if lastPage < 1 {
		lastPage = 1
	}

	if page < 1 {
		page = 1
	}

	if page > lastPage {
		page = lastPage
	}

	return page, (page - 1) * pageSize
}
