package models

// NewWord is the input for adding a word to a set. Values are trimmed
// before they are stored; a blank Synonym is omitted.
type NewWord struct {
	Eng     string
	Tr      string
	Synonym string
}

// WordPatch is a partial update. A nil field is left untouched; a non-nil
// field overwrites, and a non-nil blank Synonym clears the synonym.
type WordPatch struct {
	Eng     *string
	Tr      *string
	Synonym *string

	Type              *string
	EngDefinition     *string
	AcademicSentences []string
}

// Apply returns w with the patch applied.
func (p WordPatch) Apply(w Word) Word {
	if p.Eng != nil {
		w.Eng = *p.Eng
	}
	if p.Tr != nil {
		w.Tr = *p.Tr
	}
	if p.Synonym != nil {
		w.Synonym = *p.Synonym
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.EngDefinition != nil {
		w.EngDefinition = *p.EngDefinition
	}
	if p.AcademicSentences != nil {
		w.AcademicSentences = append([]string(nil), p.AcademicSentences...)
	}
	return w
}

// Ptr is a helper for building patches.
func Ptr[T any](v T) *T {
	return &v
}
