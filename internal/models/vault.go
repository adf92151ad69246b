// Package models defines the wordbook document tree: a Vault holding Days,
// each Day holding Sets, each Set holding Words.
package models

// Version is the only document version the store accepts.
const Version = 2

// Vault is the root document. Exactly one Vault is persisted per slot.
type Vault struct {
	Days []Day `json:"days"`

	// LastOpenedDayID points at the day the user worked on most recently.
	LastOpenedDayID string `json:"lastOpenedDayId,omitempty"`

	Version int `json:"version"`
}

// Day is a calendar-keyed container of Sets. ID and DateISO are both the
// UTC calendar date in YYYY-MM-DD form.
//
// CreatedAt fields throughout the tree are kept as the stored text (see
// TimestampLayout) so a loaded document is saved back byte for byte, and
// they are never parsed.
type Day struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DateISO   string `json:"dateISO"`
	CreatedAt string `json:"createdAt"`
	Sets      []Set  `json:"sets"`
}

// Set is a named group of Words owned by exactly one Day.
type Set struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	Words     []Word `json:"words"`
}

// Word is an English/Turkish pair. Type, EngDefinition and
// AcademicSentences are filled in by enrichment and are display-only.
type Word struct {
	ID        string `json:"id"`
	Eng       string `json:"eng"`
	Tr        string `json:"tr"`
	Synonym   string `json:"synonym,omitempty"`
	CreatedAt string `json:"createdAt"`

	Type              string   `json:"type,omitempty"`
	EngDefinition     string   `json:"engDefinition,omitempty"`
	AcademicSentences []string `json:"academicSentences,omitempty"`
}

// NewVault returns an empty, valid vault.
func NewVault() *Vault {
	return &Vault{Days: []Day{}, Version: Version}
}

// Valid reports whether v may be persisted.
func (v *Vault) Valid() bool {
	return v != nil && v.Version == Version && v.Days != nil
}

// Normalize replaces nil child slices with empty ones so the document
// always serializes lists as [] rather than null.
func (v *Vault) Normalize() {
	if v.Days == nil {
		v.Days = []Day{}
	}
	for i := range v.Days {
		d := &v.Days[i]
		if d.Sets == nil {
			d.Sets = []Set{}
		}
		for j := range d.Sets {
			if d.Sets[j].Words == nil {
				d.Sets[j].Words = []Word{}
			}
		}
	}
}

// FindDay returns the index of the day with the given id, or -1.
func (v *Vault) FindDay(id string) int {
	for i := range v.Days {
		if v.Days[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSet returns the index of the set with the given id, or -1.
func (d *Day) FindSet(id string) int {
	for i := range d.Sets {
		if d.Sets[i].ID == id {
			return i
		}
	}
	return -1
}

// FindSetByName returns the index of the first set with the given name, or -1.
func (d *Day) FindSetByName(name string) int {
	for i := range d.Sets {
		if d.Sets[i].Name == name {
			return i
		}
	}
	return -1
}

// FindWord returns the index of the word with the given id, or -1.
func (s *Set) FindWord(id string) int {
	for i := range s.Words {
		if s.Words[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of v. A nil vault clones to nil.
func (v *Vault) Clone() *Vault {
	if v == nil {
		return nil
	}
	out := *v
	out.Days = cloneDays(v.Days)
	return &out
}

// Clone returns a deep copy of d.
func (d Day) Clone() Day {
	d.Sets = cloneSets(d.Sets)
	return d
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	s.Words = cloneWords(s.Words)
	return s
}

// Clone returns a deep copy of w.
func (w Word) Clone() Word {
	if w.AcademicSentences != nil {
		w.AcademicSentences = append([]string(nil), w.AcademicSentences...)
	}
	return w
}

func cloneDays(in []Day) []Day {
	if in == nil {
		return nil
	}
	out := make([]Day, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneSets(in []Set) []Set {
	if in == nil {
		return nil
	}
	out := make([]Set, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func cloneWords(in []Word) []Word {
	if in == nil {
		return nil
	}
	out := make([]Word, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
