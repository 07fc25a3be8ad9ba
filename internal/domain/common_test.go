package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_generateGroupSlug(t *testing.T) {
	testcases := []struct {
		title    string
		expected string
	}{
		{title: "Street Photography", expected: "street-photography"},
		{title: "  Hello,   World!  ", expected: "hello-world"},
		{title: "Café & Crème brûlée", expected: "cafe-creme-brulee"},
		{title: "Группа любителей котиков", expected: "gruppa-lyubiteley-kotikov"},
		{title: "Ёлки и йогурт", expected: "elki-i-yogurt"},
		{title: "42 things", expected: "42-things"},
		{title: "!!!", expected: ""},
	}

	for _, tc := range testcases {
		require.Equal(t, tc.expected, generateGroupSlug(tc.title))
	}
}

func Test_generateGroupSlug_deterministic(t *testing.T) {
	title := "Заметки о путешествиях и не только"
	first := generateGroupSlug(title)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, generateGroupSlug(title))
	}
}

func Test_generateGroupSlug_longTitle(t *testing.T) {
	slug := generateGroupSlug(strings.Repeat("verylongword ", 30))
	require.LessOrEqual(t, len(slug), maxSlugLength)
	require.NotEmpty(t, slug)
	require.NoError(t, checkGroupSlug(slug))
}

func Test_resolvePage(t *testing.T) {
	testcases := []struct {
		name           string
		page           int
		total          int64
		expectedPage   int
		expectedOffset int
	}{
		{name: "first page", page: 1, total: 13, expectedPage: 1, expectedOffset: 0},
		{name: "second page", page: 2, total: 13, expectedPage: 2, expectedOffset: 10},
		{name: "beyond last clamps to last", page: 99, total: 13, expectedPage: 2, expectedOffset: 10},
		{name: "zero clamps to first", page: 0, total: 13, expectedPage: 1, expectedOffset: 0},
		{name: "negative clamps to first", page: -3, total: 13, expectedPage: 1, expectedOffset: 0},
		{name: "empty set keeps page one", page: 5, total: 0, expectedPage: 1, expectedOffset: 0},
		{name: "exact boundary", page: 2, total: 20, expectedPage: 2, expectedOffset: 10},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			page, offset := resolvePage(tc.page, 10, tc.total)
			require.Equal(t, tc.expectedPage, page)
			require.Equal(t, tc.expectedOffset, offset)
		})
	}
}
