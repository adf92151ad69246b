package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/models"
	"github.com/dmitrijs2005/wordbook/internal/vault"
)

// LegacyService exposes the vault as one flat word list per day, under the
// old english/turkish field names. Writes go to the day's "Kelimeler" set.
//
// The CLI only reads through it (dump --legacy). AddWord, UpdateWordInVault
// and RemoveWordInVault are library calls for callers that still speak the
// flat format; no command invokes them.
type LegacyService interface {
	GetDay(ctx context.Context, id string) (models.LegacyDay, error)
	ListDays(ctx context.Context) ([]models.LegacyDay, error)
	AddWord(ctx context.Context, dayID string, in models.LegacyInput) (models.LegacyWord, error)
	UpdateWordInVault(ctx context.Context, dayID, wordID string, patch models.LegacyPatch) (models.LegacyWord, error)
	RemoveWordInVault(ctx context.Context, dayID, wordID string) error
}

type legacyService struct {
	store *vault.Store
	opts  options
}

func NewLegacyService(store *vault.Store, opts ...Option) LegacyService {
	return &legacyService{store: store, opts: buildOptions(opts)}
}

func (s *legacyService) GetDay(ctx context.Context, id string) (models.LegacyDay, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return models.LegacyDay{}, err
	}
	d, err := findDay(v, id)
	if err != nil {
		return models.LegacyDay{}, err
	}
	return models.ToLegacyDay(*d), nil
}

func (s *legacyService) ListDays(ctx context.Context) ([]models.LegacyDay, error) {
	v, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	days := sortedDays(v.Days)
	out := make([]models.LegacyDay, 0, len(days))
	for _, d := range days {
		out = append(out, models.ToLegacyDay(d))
	}
	return out, nil
}

// AddWord appends a word to the day's default set, creating that set first
// if needed. English and Turkish are both required.
func (s *legacyService) AddWord(ctx context.Context, dayID string, in models.LegacyInput) (models.LegacyWord, error) {
	var out models.LegacyWord
	err := s.store.Update(ctx, func(v *models.Vault) error {
		d, err := findDay(v, dayID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(in.English) == "" || strings.TrimSpace(in.Turkish) == "" {
			return fmt.Errorf("%w: english and turkish are required", common.ErrInvalidInput)
		}

		i := d.FindSetByName(models.DefaultLegacySetName)
		if i < 0 {
			d.Sets = slices.Insert(d.Sets, 0, newSet(models.DefaultLegacySetName, s.opts.timestamp()))
			i = 0
		}

		w := appendWord(&d.Sets[i], models.NewWord{Eng: in.English, Tr: in.Turkish, Synonym: in.Synonym}, s.opts.timestamp())
		out = models.ToLegacyWord(w)
		return nil
	})
	return out, err
}

// UpdateWordInVault patches a word of the day's default set.
func (s *legacyService) UpdateWordInVault(ctx context.Context, dayID, wordID string, patch models.LegacyPatch) (models.LegacyWord, error) {
	var out models.LegacyWord
	err := s.store.Update(ctx, func(v *models.Vault) error {
		set, err := defaultSet(v, dayID, wordID)
		if err != nil {
			return err
		}
		w, err := patchWord(set, wordID, patch.WordPatch())
		if err != nil {
			return err
		}
		out = models.ToLegacyWord(w)
		return nil
	})
	return out, err
}

// RemoveWordInVault deletes a word of the day's default set.
func (s *legacyService) RemoveWordInVault(ctx context.Context, dayID, wordID string) error {
	return s.store.Update(ctx, func(v *models.Vault) error {
		set, err := defaultSet(v, dayID, wordID)
		if err != nil {
			return err
		}
		return removeWord(set, wordID)
	})
}

// defaultSet finds the default set of a day. Without one, the word cannot
// be in it.
func defaultSet(v *models.Vault, dayID, wordID string) (*models.Set, error) {
	d, err := findDay(v, dayID)
	if err != nil {
		return nil, err
	}
	i := d.FindSetByName(models.DefaultLegacySetName)
	if i < 0 {
		return nil, common.NotFound("word", wordID)
	}
	return &d.Sets[i], nil
}
