package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/config"
	"github.com/dmitrijs2005/wordbook/internal/enrich"
	"github.com/dmitrijs2005/wordbook/internal/logging"
	"github.com/dmitrijs2005/wordbook/internal/services"
	"github.com/dmitrijs2005/wordbook/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{BackupDir: t.TempDir(), EnrichConcurrency: 1}
	var out bytes.Buffer
	a := newApp(cfg, logging.Discard(), vault.NewStore(vault.NewMemorySlot()), strings.NewReader(""), &out)
	return a, &out
}

// feed replaces the input the next handler reads its answers from.
func feed(a *App, lines ...string) {
	a.reader = rdr(strings.Join(lines, "\n") + "\n")
}

// seed opens 2024-01-01 and fills a "Nouns" set with two words.
func seed(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()

	feed(a, "2024-01-01")
	require.NoError(t, a.OpenDay(ctx))
	feed(a, "Nouns")
	require.NoError(t, a.NewSet(ctx))
	feed(a, "ubiquitous", "yaygın", "")
	require.NoError(t, a.AddWord(ctx))
	feed(a, "ephemeral", "geçici", "fleeting")
	require.NoError(t, a.AddWord(ctx))
}

func TestApp_DayAndSetFlow(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	assert.Equal(t, "", a.status())
	seed(t, a)

	assert.Contains(t, out.String(), "Opened 1 Ocak 2024 (2024-01-01)")
	assert.Equal(t, "2024-01-01/Nouns", a.status())

	out.Reset()
	require.NoError(t, a.Words(ctx))
	assert.Contains(t, out.String(), "ubiquitous = yaygın\n")
	assert.Contains(t, out.String(), "ephemeral = geçici  (syn: fleeting)\n")

	out.Reset()
	require.NoError(t, a.Days(ctx))
	assert.Equal(t, "* 2024-01-01  1 Ocak 2024  (1 sets)\n", out.String())

	out.Reset()
	require.NoError(t, a.Stats(ctx))
	assert.Equal(t, "Days:  1\nSets:  1\nWords: 2\n", out.String())
}

func TestApp_CommandsNeedCursor(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)

	require.ErrorIs(t, a.Sets(ctx), errNoDay)
	require.ErrorIs(t, a.RenameDay(ctx), errNoDay)
	require.ErrorIs(t, a.Words(ctx), errNoSet)
	require.ErrorIs(t, a.AddWord(ctx), errNoSet)
	require.ErrorIs(t, a.Enrich(ctx), errNoSet)
	assert.Contains(t, out.String(), "error: no day opened")
}

func TestApp_OpenDayRejectsBadDate(t *testing.T) {
	a, _ := newTestApp(t)
	feed(a, "01/02/2024")
	require.ErrorIs(t, a.OpenDay(context.Background()), common.ErrInvalidInput)
	assert.False(t, a.hasDay())
}

func TestApp_EditAndRemoveWord(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)

	set, err := a.notebook.GetSet(ctx, a.dayID, a.setID)
	require.NoError(t, err)
	id := set.Words[1].ID

	feed(a, id, "", "kalıcı olmayan", "")
	require.NoError(t, a.EditWord(ctx))

	set, err = a.notebook.GetSet(ctx, a.dayID, a.setID)
	require.NoError(t, err)
	assert.Equal(t, "ephemeral", set.Words[1].Eng)
	assert.Equal(t, "kalıcı olmayan", set.Words[1].Tr)
	assert.Equal(t, "fleeting", set.Words[1].Synonym)

	feed(a, "nonexistent")
	require.ErrorIs(t, a.RemoveWord(ctx), common.ErrNotFound)

	feed(a, id)
	require.NoError(t, a.RemoveWord(ctx))
	set, err = a.notebook.GetSet(ctx, a.dayID, a.setID)
	require.NoError(t, err)
	assert.Len(t, set.Words, 1)
}

func TestApp_UseSetByIDOrName(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)
	nouns := a.setID

	feed(a, "Verbs")
	require.NoError(t, a.NewSet(ctx))
	assert.NotEqual(t, nouns, a.setID)

	feed(a, "nouns")
	require.NoError(t, a.UseSet(ctx))
	assert.Equal(t, nouns, a.setID)

	feed(a, "Adjectives")
	require.ErrorIs(t, a.UseSet(ctx), common.ErrNotFound)
	assert.Equal(t, nouns, a.setID)
}

func TestApp_RenameSetKeepsCursorName(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)

	feed(a, "Nouns II")
	require.NoError(t, a.RenameSet(ctx))
	assert.Equal(t, "2024-01-01/Nouns II", a.status())
}

func TestApp_DeleteDayAsksFirst(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	seed(t, a)

	feed(a, "n")
	require.NoError(t, a.DeleteDay(ctx))
	assert.Contains(t, out.String(), "Cancelled")
	days, err := a.notebook.ListDays(ctx)
	require.NoError(t, err)
	assert.Len(t, days, 1)

	feed(a, "y")
	require.NoError(t, a.DeleteDay(ctx))
	assert.False(t, a.hasDay())
	assert.False(t, a.hasSet())
	days, err = a.notebook.ListDays(ctx)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestApp_RestoreSelectsLastOpenedDay(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)

	var out bytes.Buffer
	b := newApp(a.config, logging.Discard(), a.store, strings.NewReader(""), &out)
	require.NoError(t, b.restore(ctx))
	assert.Equal(t, "2024-01-01/Nouns", b.status())

	empty, _ := newTestApp(t)
	require.NoError(t, empty.restore(ctx))
	assert.False(t, empty.hasDay())
}

func TestApp_ExportImport(t *testing.T) {
	stubTerminal(t, false)
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)

	feed(a, "before cleanup", "")
	require.NoError(t, a.Export(ctx))

	entries, err := os.ReadDir(a.config.BackupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	assert.True(t, strings.HasPrefix(name, "kelime-defterim-backup-"))
	assert.True(t, strings.HasSuffix(name, "-before-cleanup.json"))

	feed(a, "y")
	require.NoError(t, a.DeleteDay(ctx))

	feed(a, name, "y")
	require.NoError(t, a.Import(ctx))

	st, err := a.notebook.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Words)
	assert.Equal(t, "2024-01-01/Nouns", a.status())
}

func TestApp_SealedExportNeedsPassphrase(t *testing.T) {
	stubTerminal(t, false)
	ctx := context.Background()
	a, _ := newTestApp(t)
	seed(t, a)

	feed(a, "", "correct horse")
	require.NoError(t, a.Export(ctx))
	entries, err := os.ReadDir(a.config.BackupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	feed(a, entries[0].Name(), "wrong", "y")
	require.ErrorIs(t, a.Import(ctx), common.ErrInvalidBackup)

	feed(a, entries[0].Name(), "correct horse", "y")
	require.NoError(t, a.Import(ctx))
}

func TestApp_PlainImportSkipsPassphrase(t *testing.T) {
	stubTerminal(t, false)
	ctx := context.Background()
	a, out := newTestApp(t)
	seed(t, a)

	feed(a, "", "")
	require.NoError(t, a.Export(ctx))
	entries, err := os.ReadDir(a.config.BackupDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out.Reset()
	feed(a, entries[0].Name(), "n")
	require.NoError(t, a.Import(ctx))
	assert.NotContains(t, out.String(), "Passphrase")
	assert.Contains(t, out.String(), "Cancelled")
}

func TestApp_ImportMissingFileFailsBeforeConfirm(t *testing.T) {
	a, out := newTestApp(t)

	feed(a, "nope.json", "y")
	require.ErrorIs(t, a.Import(context.Background()), common.ErrNotFound)
	assert.NotContains(t, out.String(), "Continue?")
}

func TestApp_EnrichRequiresAPIKey(t *testing.T) {
	a, _ := newTestApp(t)
	seed(t, a)
	require.ErrorIs(t, a.Enrich(context.Background()), errNoAPIKey)
}

type stubEnricher struct{}

func (stubEnricher) FetchAcademicData(_ context.Context, word string) (*enrich.AcademicData, error) {
	return &enrich.AcademicData{
		Word:              word,
		Type:              "adjective",
		EngDefinition:     "definition of " + word,
		AcademicSentences: []string{"An example with " + word + "."},
	}, nil
}

func (stubEnricher) GenerateContextStory(_ context.Context, words []string) (*enrich.ContextStory, error) {
	return &enrich.ContextStory{
		EnglishStory:       "A story with " + strings.Join(words, " and ") + ".",
		TurkishTranslation: "Bir hikaye.",
		UsedWords:          words,
	}, nil
}

func TestApp_EnrichAndStory(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t)
	seed(t, a)
	a.enrichment = services.NewEnrichmentService(a.notebook, stubEnricher{}, 1)

	out.Reset()
	require.NoError(t, a.Enrich(ctx))
	assert.Contains(t, out.String(), "Enriched 2 words")

	out.Reset()
	require.NoError(t, a.Words(ctx))
	assert.Contains(t, out.String(), "    [adjective] definition of ubiquitous\n")
	assert.Contains(t, out.String(), "    - An example with ephemeral.\n")

	out.Reset()
	require.NoError(t, a.Enrich(ctx))
	assert.Contains(t, out.String(), "Nothing to enrich")

	out.Reset()
	require.NoError(t, a.Story(ctx))
	assert.Contains(t, out.String(), "A story with ubiquitous and ephemeral.")
	assert.Contains(t, out.String(), "Bir hikaye.")
}
