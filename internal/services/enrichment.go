package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/enrich"
	"github.com/dmitrijs2005/wordbook/internal/models"
	"golang.org/x/sync/errgroup"
)

// Enricher is the part of enrich.Client the service needs.
type Enricher interface {
	FetchAcademicData(ctx context.Context, word string) (*enrich.AcademicData, error)
	GenerateContextStory(ctx context.Context, words []string) (*enrich.ContextStory, error)
}

type EnrichmentService interface {
	// EnrichWord stores the AI description of a word on the word itself.
	EnrichWord(ctx context.Context, dayID, setID, wordID string) (models.Word, error)
	// EnrichSet enriches every word of a set that has no definition yet and
	// returns how many were updated. It stops at the first failure.
	EnrichSet(ctx context.Context, dayID, setID string) (int, error)
	// Story writes a short academic paragraph using the words of a set.
	Story(ctx context.Context, dayID, setID string) (*enrich.ContextStory, error)
}

type enrichmentService struct {
	notebook    NotebookService
	enricher    Enricher
	concurrency int
	opts        options
}

func NewEnrichmentService(notebook NotebookService, enricher Enricher, concurrency int, opts ...Option) EnrichmentService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &enrichmentService{
		notebook:    notebook,
		enricher:    enricher,
		concurrency: concurrency,
		opts:        buildOptions(opts),
	}
}

func (s *enrichmentService) EnrichWord(ctx context.Context, dayID, setID, wordID string) (models.Word, error) {
	set, err := s.notebook.GetSet(ctx, dayID, setID)
	if err != nil {
		return models.Word{}, err
	}
	i := set.FindWord(wordID)
	if i < 0 {
		return models.Word{}, common.NotFound("word", wordID)
	}
	return s.enrich(ctx, dayID, setID, set.Words[i])
}

func (s *enrichmentService) EnrichSet(ctx context.Context, dayID, setID string) (int, error) {
	set, err := s.notebook.GetSet(ctx, dayID, setID)
	if err != nil {
		return 0, err
	}

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, w := range set.Words {
		if gctx.Err() != nil {
			break
		}
		if w.EngDefinition != "" {
			continue
		}
		g.Go(func() error {
			if _, err := s.enrich(gctx, dayID, setID, w); err != nil {
				return err
			}
			done.Add(1)
			return nil
		})
	}

	err = g.Wait()
	n := int(done.Load())
	s.opts.log.Info(ctx, "set enriched", "day", dayID, "set", setID, "words", n, "err", err)
	return n, err
}

func (s *enrichmentService) Story(ctx context.Context, dayID, setID string) (*enrich.ContextStory, error) {
	set, err := s.notebook.GetSet(ctx, dayID, setID)
	if err != nil {
		return nil, err
	}
	if len(set.Words) == 0 {
		return nil, fmt.Errorf("%w: set %q has no words", common.ErrInvalidInput, set.Name)
	}

	words := make([]string, 0, len(set.Words))
	for _, w := range set.Words {
		words = append(words, w.Eng)
	}
	return s.enricher.GenerateContextStory(ctx, words)
}

func (s *enrichmentService) enrich(ctx context.Context, dayID, setID string, w models.Word) (models.Word, error) {
	data, err := s.enricher.FetchAcademicData(ctx, w.Eng)
	if err != nil {
		return models.Word{}, fmt.Errorf("enrich %q: %w", w.Eng, err)
	}

	patch := models.WordPatch{
		Type:              models.Ptr(data.Type),
		EngDefinition:     models.Ptr(data.EngDefinition),
		AcademicSentences: data.AcademicSentences,
	}
	if w.Synonym == "" && strings.TrimSpace(data.Synonyms) != "" {
		patch.Synonym = models.Ptr(data.Synonyms)
	}

	s.opts.log.Debug(ctx, "word enriched", "word", w.Eng, "type", data.Type)
	return s.notebook.UpdateWord(ctx, dayID, setID, w.ID, patch)
}
