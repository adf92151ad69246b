package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/models"
	"github.com/dmitrijs2005/wordbook/internal/vault"
)

type NotebookService interface {
	CreateDay(ctx context.Context, name string, date time.Time) (models.Day, error)
	GetDay(ctx context.Context, id string) (models.Day, error)
	ListDays(ctx context.Context) ([]models.Day, error)
	RenameDay(ctx context.Context, id, name string) (models.Day, error)
	DeleteDay(ctx context.Context, id string) error
	OpenDay(ctx context.Context, date time.Time) (models.Day, error)
	LastOpenedDay(ctx context.Context) (models.Day, error)
	Stats(ctx context.Context) (models.Stats, error)

	CreateSet(ctx context.Context, dayID, name string) (models.Set, error)
	GetSet(ctx context.Context, dayID, setID string) (models.Set, error)
	ListSets(ctx context.Context, dayID string) ([]models.Set, error)
	RenameSet(ctx context.Context, dayID, setID, name string) (models.Set, error)
	DeleteSet(ctx context.Context, dayID, setID string) error

	AddWordToSet(ctx context.Context, dayID, setID string, in models.NewWord) (models.Word, error)
	UpdateWord(ctx context.Context, dayID, setID, wordID string, patch models.WordPatch) (models.Word, error)
	RemoveWord(ctx context.Context, dayID, setID, wordID string) error
}

type notebookService struct {
	store *vault.Store
	opts  options
}

func NewNotebookService(store *vault.Store, opts ...Option) NotebookService {
	return &notebookService{store: store, opts: buildOptions(opts)}
}

// CreateDay creates the day for date (today when date is zero). If that
// day already exists it keeps its sets; a non-blank name renames it.
func (s *notebookService) CreateDay(ctx context.Context, name string, date time.Time) (models.Day, error) {
	if date.IsZero() {
		date = s.opts.now()
	}
	id := models.DayIDFor(date)
	name = strings.TrimSpace(name)

	var out models.Day
	err := s.store.Update(ctx, func(v *models.Vault) error {
		if i := v.FindDay(id); i >= 0 {
			if name != "" {
				v.Days[i].Name = name
			}
			out = v.Days[i].Clone()
			return nil
		}

		if name == "" {
			name = models.TRDate(date)
		}
		d := newDay(id, name, s.opts.timestamp())
		v.Days = slices.Insert(v.Days, 0, d)
		out = d.Clone()
		return nil
	})
	return out, err
}

func (s *notebookService) GetDay(ctx context.Context, id string) (models.Day, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return models.Day{}, err
	}
	d, err := findDay(v, id)
	if err != nil {
		return models.Day{}, err
	}
	return d.Clone(), nil
}

// ListDays returns every day, most recent date first.
func (s *notebookService) ListDays(ctx context.Context) ([]models.Day, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return sortedDays(v.Days), nil
}

// RenameDay renames a day; a blank name restores the default date name.
func (s *notebookService) RenameDay(ctx context.Context, id, name string) (models.Day, error) {
	name = strings.TrimSpace(name)

	var out models.Day
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, id)
		if err != nil {
			return err
		}
		if name == "" {
			name = defaultDayName(d)
		}
		d.Name = name
		out = d.Clone()
		return nil
	})
	return out, err
}

func (s *notebookService) DeleteDay(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(v *models.Vault) error {
		i := v.FindDay(id)
		if i < 0 {
			return common.NotFound("day", id)
		}
		v.Days = slices.Delete(v.Days, i, i+1)
		if v.LastOpenedDayID == id {
			v.LastOpenedDayID = ""
		}
		return nil
	})
}

// OpenDay makes sure a day exists for date and remembers it as the last
// opened one. An existing day is left as it is.
func (s *notebookService) OpenDay(ctx context.Context, date time.Time) (models.Day, error) {
	if date.IsZero() {
		date = s.opts.now()
	}
	id := models.DayIDFor(date)

	var out models.Day
	err := s.store.Update(ctx, func(v *models.Vault) error {
		i := v.FindDay(id)
		if i < 0 {
			v.Days = slices.Insert(v.Days, 0, newDay(id, models.TRDate(date), s.opts.timestamp()))
			i = 0
		}
		v.LastOpenedDayID = id
		out = v.Days[i].Clone()
		return nil
	})
	return out, err
}

func (s *notebookService) LastOpenedDay(ctx context.Context) (models.Day, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return models.Day{}, err
	}
	if v.LastOpenedDayID == "" {
		return models.Day{}, fmt.Errorf("no day opened yet: %w", common.ErrNotFound)
	}
	d, err := findDay(v, v.LastOpenedDayID)
	if err != nil {
		return models.Day{}, err
	}
	return d.Clone(), nil
}

func (s *notebookService) Stats(ctx context.Context) (models.Stats, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return models.Stats{}, err
	}
	return models.StatsOf(v), nil
}

func (s *notebookService) CreateSet(ctx context.Context, dayID, name string) (models.Set, error) {
	var out models.Set
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		set := newSet(name, s.opts.timestamp())
		d.Sets = slices.Insert(d.Sets, 0, set)
		out = set.Clone()
		return nil
	})
	return out, err
}

func (s *notebookService) GetSet(ctx context.Context, dayID, setID string) (models.Set, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return models.Set{}, err
	}
	d, err := findDay(v, dayID)
	if err != nil {
		return models.Set{}, err
	}
	set, err := findSet(d, setID)
	if err != nil {
		return models.Set{}, err
	}
	return set.Clone(), nil
}

// ListSets returns the sets of a day. An unknown day has no sets.
func (s *notebookService) ListSets(ctx context.Context, dayID string) ([]models.Set, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Set{}
	if i := v.FindDay(dayID); i >= 0 {
		for _, set := range v.Days[i].Sets {
			out = append(out, set.Clone())
		}
	}
	return out, nil
}

// RenameSet renames a set. A blank name keeps the current one.
func (s *notebookService) RenameSet(ctx context.Context, dayID, setID, name string) (models.Set, error) {
	name = strings.TrimSpace(name)

	var out models.Set
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		set, err := findSet(d, setID)
		if err != nil {
			return err
		}
		if name != "" {
			set.Name = name
		}
		out = set.Clone()
		return nil
	})
	return out, err
}

// DeleteSet removes a set from its day. Deleting an unknown set id is a
// no-op; an unknown day is an error.
func (s *notebookService) DeleteSet(ctx context.Context, dayID, setID string) error {
	return s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		d.Sets = slices.DeleteFunc(d.Sets, func(set models.Set) bool { return set.ID == setID })
		return nil
	})
}

// AddWordToSet appends a word to the end of a set.
func (s *notebookService) AddWordToSet(ctx context.Context, dayID, setID string, in models.NewWord) (models.Word, error) {
	var out models.Word
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		set, err := findSet(d, setID)
		if err != nil {
			return err
		}
		out = appendWord(set, in, s.opts.timestamp()).Clone()
		return nil
	})
	return out, err
}

// UpdateWord applies patch to a word. Like AddWordToSet it stores Eng, Tr
// and Synonym trimmed, so a patch value with surrounding blanks is not kept
// verbatim.
func (s *notebookService) UpdateWord(ctx context.Context, dayID, setID, wordID string, patch models.WordPatch) (models.Word, error) {
	var out models.Word
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		set, err := findSet(d, setID)
		if err != nil {
			return err
		}
		w, err := patchWord(set, wordID, patch)
		if err != nil {
			return err
		}
		out = w.Clone()
		return nil
	})
	return out, err
}

// RemoveWord deletes a word. Unlike DeleteSet it fails if the word is
// not there.
func (s *notebookService) RemoveWord(ctx context.Context, dayID, setID, wordID string) error {
	return s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		set, err := findSet(d, setID)
		if err != nil {
			return err
		}
		return removeWord(set, wordID)
	})
}

// The helpers below work on a vault that is being updated in place. They
// are shared with the legacy view so both stay on one code path.

func newDay(id, name string, now time.Time) models.Day {
	return models.Day{ID: id, Name: name, DateISO: id, CreatedAt: models.FormatTimestamp(now), Sets: []models.Set{}}
}

func newSet(name string, now time.Time) models.Set {
	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultSetName
	}
	return models.Set{ID: models.NewSetID(), Name: name, CreatedAt: models.FormatTimestamp(now), Words: []models.Word{}}
}

func defaultDayName(d *models.Day) string {
	t, err := models.ParseDayID(d.DateISO)
	if err != nil {
		return d.DateISO
	}
	return models.TRDate(t)
}

func findDay(v *models.Vault, id string) (*models.Day, error) {
	i := v.FindDay(id)
	if i < 0 {
		return nil, common.NotFound("day", id)
	}
	return &v.Days[i], nil
}

func findSet(d *models.Day, id string) (*models.Set, error) {
	i := d.FindSet(id)
	if i < 0 {
		return nil, common.NotFound("set", id)
	}
	return &d.Sets[i], nil
}

func appendWord(set *models.Set, in models.NewWord, now time.Time) models.Word {
	w := models.Word{
		ID:        models.NewWordID(now),
		Eng:       strings.TrimSpace(in.Eng),
		Tr:        strings.TrimSpace(in.Tr),
		Synonym:   strings.TrimSpace(in.Synonym),
		CreatedAt: models.FormatTimestamp(now),
	}
	set.Words = append(set.Words, w)
	return w
}

func patchWord(set *models.Set, wordID string, patch models.WordPatch) (models.Word, error) {
	i := set.FindWord(wordID)
	if i < 0 {
		return models.Word{}, common.NotFound("word", wordID)
	}
	set.Words[i] = patch.Apply(set.Words[i])
	trimWord(&set.Words[i])
	return set.Words[i], nil
}

func removeWord(set *models.Set, wordID string) error {
	i := set.FindWord(wordID)
	if i < 0 {
		return common.NotFound("word", wordID)
	}
	set.Words = slices.Delete(set.Words, i, i+1)
	return nil
}

func trimWord(w *models.Word) {
	w.Eng = strings.TrimSpace(w.Eng)
	w.Tr = strings.TrimSpace(w.Tr)
	w.Synonym = strings.TrimSpace(w.Synonym)
}

func sortedDays(days []models.Day) []models.Day {
	out := make([]models.Day, 0, len(days))
	for _, d := range days {
		out = append(out, d.Clone())
	}
	slices.SortStableFunc(out, func(a, b models.Day) int {
		return strings.Compare(b.DateISO, a.DateISO)
	})
	return out
}
