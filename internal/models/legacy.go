package models

// DefaultLegacySetName is the set the flattened day view writes into.
const DefaultLegacySetName = "Kelimeler"

// LegacyWord is a Word under its old field names.
type LegacyWord struct {
	ID        string `json:"id"`
	English   string `json:"english"`
	Turkish   string `json:"turkish"`
	Synonym   string `json:"synonym,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// LegacyDay is a Day flattened to one word list: the words of every set,
// in set order and then word order.
type LegacyDay struct {
	ID      string       `json:"id"`
	DateISO string       `json:"dateISO"`
	Words   []LegacyWord `json:"words"`
}

// LegacyInput is the input of the legacy add-word call.
type LegacyInput struct {
	English string
	Turkish string
	Synonym string
}

// LegacyPatch is the legacy counterpart of WordPatch.
type LegacyPatch struct {
	English *string
	Turkish *string
	Synonym *string
}

// WordPatch converts p to the current patch shape.
func (p LegacyPatch) WordPatch() WordPatch {
	return WordPatch{Eng: p.English, Tr: p.Turkish, Synonym: p.Synonym}
}

// ToLegacyWord renames the fields of w.
func ToLegacyWord(w Word) LegacyWord {
	return LegacyWord{
		ID:        w.ID,
		English:   w.Eng,
		Turkish:   w.Tr,
		Synonym:   w.Synonym,
		CreatedAt: w.CreatedAt,
	}
}

// ToLegacyDay flattens d.
func ToLegacyDay(d Day) LegacyDay {
	words := []LegacyWord{}
	for _, s := range d.Sets {
		for _, w := range s.Words {
			words = append(words, ToLegacyWord(w))
		}
	}
	return LegacyDay{ID: d.ID, DateISO: d.DateISO, Words: words}
}
