package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestToLegacyDay_FlattensInSetThenWordOrder(t *testing.T) {
	ts := "2024-01-01T00:00:00.000Z"
	d := Day{
		ID: "2024-01-01", DateISO: "2024-01-01",
		Sets: []Set{
			{ID: "s1", Words: []Word{{ID: "a", Eng: "apple", Tr: "elma", CreatedAt: ts}, {ID: "b", Eng: "book", Tr: "kitap", Synonym: "volume", CreatedAt: ts}}},
			{ID: "s2", Words: []Word{}},
			{ID: "s3", Words: []Word{{ID: "c", Eng: "cat", Tr: "kedi", CreatedAt: ts}}},
		},
	}

	want := LegacyDay{
		ID: "2024-01-01", DateISO: "2024-01-01",
		Words: []LegacyWord{
			{ID: "a", English: "apple", Turkish: "elma", CreatedAt: ts},
			{ID: "b", English: "book", Turkish: "kitap", Synonym: "volume", CreatedAt: ts},
			{ID: "c", English: "cat", Turkish: "kedi", CreatedAt: ts},
		},
	}
	if diff := cmp.Diff(want, ToLegacyDay(d)); diff != "" {
		t.Fatalf("legacy day mismatch (-want +got):\n%s", diff)
	}
}

func TestToLegacyDay_EmptyDayHasEmptyWords(t *testing.T) {
	got := ToLegacyDay(Day{ID: "2024-01-01", DateISO: "2024-01-01"})
	assert.NotNil(t, got.Words)
	assert.Empty(t, got.Words)
}

func TestWordPatch_Apply(t *testing.T) {
	w := Word{ID: "w", Eng: "big", Tr: "büyük", Synonym: "large"}

	got := WordPatch{Tr: Ptr("iri")}.Apply(w)
	assert.Equal(t, "big", got.Eng)
	assert.Equal(t, "iri", got.Tr)
	assert.Equal(t, "large", got.Synonym)

	got = WordPatch{Synonym: Ptr("")}.Apply(w)
	assert.Empty(t, got.Synonym)

	got = WordPatch{Type: Ptr("adjective"), EngDefinition: Ptr("of great size"), AcademicSentences: []string{"s1"}}.Apply(w)
	assert.Equal(t, "adjective", got.Type)
	assert.Equal(t, "of great size", got.EngDefinition)
	assert.Equal(t, []string{"s1"}, got.AcademicSentences)
}

func TestLegacyPatch_WordPatch(t *testing.T) {
	p := LegacyPatch{English: Ptr("e"), Synonym: Ptr("")}.WordPatch()
	assert.Equal(t, "e", *p.Eng)
	assert.Nil(t, p.Tr)
	assert.Equal(t, "", *p.Synonym)
}
