package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/wordbook/internal/common"
	"github.com/dmitrijs2005/wordbook/internal/models"
)

func (a *App) hasDay() bool { return a.dayID != "" }
func (a *App) hasSet() bool { return a.setID != "" }

// status is the part of the prompt naming the cursor, e.g. "2024-01-01/Nouns".
func (a *App) status() string {
	switch {
	case a.dayID == "":
		return ""
	case a.setID == "":
		return a.dayID
	default:
		return a.dayID + "/" + a.setName
	}
}

// restore points the cursor at the last opened day, if there is one.
func (a *App) restore(ctx context.Context) error {
	d, err := a.notebook.LastOpenedDay(ctx)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	a.selectDay(d)
	return nil
}

func (a *App) selectDay(d models.Day) {
	a.dayID = d.ID
	a.setID, a.setName = "", ""
	if len(d.Sets) > 0 {
		a.selectSet(d.Sets[0])
	}
}

func (a *App) selectSet(s models.Set) {
	a.setID, a.setName = s.ID, s.Name
}

func (a *App) Days(ctx context.Context) error {
	days, err := a.notebook.ListDays(ctx)
	if err != nil {
		return a.fail(ctx, "days", err)
	}
	if len(days) == 0 {
		a.printf("No days yet. Use 'open' to start one.\n")
		return nil
	}
	for _, d := range days {
		mark := " "
		if d.ID == a.dayID {
			mark = "*"
		}
		a.printf("%s %s  %s  (%d sets)\n", mark, d.ID, d.Name, len(d.Sets))
	}
	return nil
}

func (a *App) OpenDay(ctx context.Context) error {
	in, err := GetSimpleText(a.reader, "Date (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return a.fail(ctx, "open", err)
	}

	var date time.Time
	if in != "" {
		if date, err = models.ParseDayID(in); err != nil {
			return a.fail(ctx, "open", err)
		}
	}

	d, err := a.notebook.OpenDay(ctx, date)
	if err != nil {
		return a.fail(ctx, "open", err)
	}
	a.selectDay(d)
	a.printf("Opened %s (%s)\n", d.Name, d.ID)
	return nil
}

func (a *App) RenameDay(ctx context.Context) error {
	if !a.hasDay() {
		return a.fail(ctx, "renameday", errNoDay)
	}
	name, err := GetSimpleText(a.reader, "New day name (empty for the date)", a.out)
	if err != nil {
		return a.fail(ctx, "renameday", err)
	}
	d, err := a.notebook.RenameDay(ctx, a.dayID, name)
	if err != nil {
		return a.fail(ctx, "renameday", err)
	}
	a.printf("Day renamed to %s\n", d.Name)
	return nil
}

func (a *App) DeleteDay(ctx context.Context) error {
	if !a.hasDay() {
		return a.fail(ctx, "deleteday", errNoDay)
	}
	if !Confirm(a.reader, "Delete day "+a.dayID+" with all its sets?", a.out) {
		a.printf("Cancelled\n")
		return nil
	}
	if err := a.notebook.DeleteDay(ctx, a.dayID); err != nil {
		return a.fail(ctx, "deleteday", err)
	}
	a.printf("Deleted %s\n", a.dayID)
	a.dayID, a.setID, a.setName = "", "", ""
	return nil
}

func (a *App) Sets(ctx context.Context) error {
	if !a.hasDay() {
		return a.fail(ctx, "sets", errNoDay)
	}
	sets, err := a.notebook.ListSets(ctx, a.dayID)
	if err != nil {
		return a.fail(ctx, "sets", err)
	}
	if len(sets) == 0 {
		a.printf("No sets yet. Use 'newset' to create one.\n")
		return nil
	}
	for _, s := range sets {
		mark := " "
		if s.ID == a.setID {
			mark = "*"
		}
		a.printf("%s %s  %s  (%d words)\n", mark, s.ID, s.Name, len(s.Words))
	}
	return nil
}

func (a *App) NewSet(ctx context.Context) error {
	if !a.hasDay() {
		return a.fail(ctx, "newset", errNoDay)
	}
	name, err := GetSimpleText(a.reader, "Set name", a.out)
	if err != nil {
		return a.fail(ctx, "newset", err)
	}
	s, err := a.notebook.CreateSet(ctx, a.dayID, name)
	if err != nil {
		return a.fail(ctx, "newset", err)
	}
	a.selectSet(s)
	a.printf("Created set %s (%s)\n", s.Name, s.ID)
	return nil
}

// UseSet selects a set of the current day by id or by name.
func (a *App) UseSet(ctx context.Context) error {
	if !a.hasDay() {
		return a.fail(ctx, "use", errNoDay)
	}
	ref, err := GetSimpleText(a.reader, "Set id or name", a.out)
	if err != nil {
		return a.fail(ctx, "use", err)
	}
	sets, err := a.notebook.ListSets(ctx, a.dayID)
	if err != nil {
		return a.fail(ctx, "use", err)
	}
	for _, s := range sets {
		if s.ID == ref || strings.EqualFold(s.Name, ref) {
			a.selectSet(s)
			a.printf("Using set %s\n", s.Name)
			return nil
		}
	}
	return a.fail(ctx, "use", common.NotFound("set", ref))
}

func (a *App) RenameSet(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "renameset", errNoSet)
	}
	name, err := GetSimpleText(a.reader, "New set name", a.out)
	if err != nil {
		return a.fail(ctx, "renameset", err)
	}
	s, err := a.notebook.RenameSet(ctx, a.dayID, a.setID, name)
	if err != nil {
		return a.fail(ctx, "renameset", err)
	}
	a.selectSet(s)
	a.printf("Set renamed to %s\n", s.Name)
	return nil
}

func (a *App) DeleteSet(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "deleteset", errNoSet)
	}
	if !Confirm(a.reader, "Delete set "+a.setName+" with all its words?", a.out) {
		a.printf("Cancelled\n")
		return nil
	}
	if err := a.notebook.DeleteSet(ctx, a.dayID, a.setID); err != nil {
		return a.fail(ctx, "deleteset", err)
	}
	a.printf("Deleted set %s\n", a.setName)
	a.setID, a.setName = "", ""
	return nil
}

func (a *App) Words(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "words", errNoSet)
	}
	s, err := a.notebook.GetSet(ctx, a.dayID, a.setID)
	if err != nil {
		return a.fail(ctx, "words", err)
	}
	if len(s.Words) == 0 {
		a.printf("No words yet. Use 'add' to add one.\n")
		return nil
	}
	for _, w := range s.Words {
		a.printf("%s  %s = %s", w.ID, w.Eng, w.Tr)
		if w.Synonym != "" {
			a.printf("  (syn: %s)", w.Synonym)
		}
		a.printf("\n")
		if w.EngDefinition != "" {
			a.printf("    [%s] %s\n", w.Type, w.EngDefinition)
		}
		for _, sentence := range w.AcademicSentences {
			a.printf("    - %s\n", sentence)
		}
	}
	return nil
}

func (a *App) AddWord(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "add", errNoSet)
	}
	var in models.NewWord
	var err error
	if in.Eng, err = GetSimpleText(a.reader, "English", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}
	if in.Tr, err = GetSimpleText(a.reader, "Turkish", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}
	if in.Synonym, err = GetSimpleText(a.reader, "Synonym (optional)", a.out); err != nil {
		return a.fail(ctx, "add", err)
	}

	w, err := a.notebook.AddWordToSet(ctx, a.dayID, a.setID, in)
	if err != nil {
		return a.fail(ctx, "add", err)
	}
	a.printf("Added %s (%s)\n", w.Eng, w.ID)
	return nil
}

// EditWord patches a word; empty answers keep the current value.
func (a *App) EditWord(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "edit", errNoSet)
	}
	id, err := GetSimpleText(a.reader, "Word id", a.out)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}

	var patch models.WordPatch
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"English (empty to keep)", &patch.Eng},
		{"Turkish (empty to keep)", &patch.Tr},
		{"Synonym (empty to keep)", &patch.Synonym},
	} {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return a.fail(ctx, "edit", err)
		}
		if v != "" {
			*f.dst = models.Ptr(v)
		}
	}

	w, err := a.notebook.UpdateWord(ctx, a.dayID, a.setID, id, patch)
	if err != nil {
		return a.fail(ctx, "edit", err)
	}
	a.printf("Updated %s = %s\n", w.Eng, w.Tr)
	return nil
}

func (a *App) RemoveWord(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "remove", errNoSet)
	}
	id, err := GetSimpleText(a.reader, "Word id", a.out)
	if err != nil {
		return a.fail(ctx, "remove", err)
	}
	if err := a.notebook.RemoveWord(ctx, a.dayID, a.setID, id); err != nil {
		return a.fail(ctx, "remove", err)
	}
	a.printf("Removed %s\n", id)
	return nil
}

func (a *App) Enrich(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "enrich", errNoSet)
	}
	svc, err := a.enricher(ctx)
	if err != nil {
		return a.fail(ctx, "enrich", err)
	}
	n, err := svc.EnrichSet(ctx, a.dayID, a.setID)
	if n > 0 {
		a.printf("Enriched %d words\n", n)
	}
	if err != nil {
		return a.fail(ctx, "enrich", err)
	}
	if n == 0 {
		a.printf("Nothing to enrich\n")
	}
	return nil
}

func (a *App) Story(ctx context.Context) error {
	if !a.hasSet() {
		return a.fail(ctx, "story", errNoSet)
	}
	svc, err := a.enricher(ctx)
	if err != nil {
		return a.fail(ctx, "story", err)
	}
	st, err := svc.Story(ctx, a.dayID, a.setID)
	if err != nil {
		return a.fail(ctx, "story", err)
	}
	a.printf("%s\n\n%s\n", st.EnglishStory, st.TurkishTranslation)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.notebook.Stats(ctx)
	if err != nil {
		return a.fail(ctx, "stats", err)
	}
	writeStatsText(a.out, st)
	return nil
}

func (a *App) Export(ctx context.Context) error {
	label, err := GetSimpleText(a.reader, "Label (optional)", a.out)
	if err != nil {
		return a.fail(ctx, "export", err)
	}
	pass, err := GetPassphrase(a.reader, "Passphrase (empty for a plain backup)", a.out)
	if err != nil {
		return a.fail(ctx, "export", err)
	}

	svc, err := a.backups(ctx, false)
	if err != nil {
		return a.fail(ctx, "export", err)
	}
	ref, err := svc.Export(ctx, label, pass)
	if err != nil {
		return a.fail(ctx, "export", err)
	}
	a.printf("Saved to %s\n", ref)
	return nil
}

func (a *App) Import(ctx context.Context) error {
	ref, err := GetSimpleText(a.reader, "Backup file", a.out)
	if err != nil {
		return a.fail(ctx, "import", err)
	}
	svc, err := a.backups(ctx, false)
	if err != nil {
		return a.fail(ctx, "import", err)
	}
	sealed, err := svc.Sealed(ctx, ref)
	if err != nil {
		return a.fail(ctx, "import", err)
	}
	var pass string
	if sealed {
		if pass, err = GetPassphrase(a.reader, "Passphrase", a.out); err != nil {
			return a.fail(ctx, "import", err)
		}
	}
	if !Confirm(a.reader, "This replaces all your data. Continue?", a.out) {
		a.printf("Cancelled\n")
		return nil
	}

	if err := svc.Import(ctx, ref, pass); err != nil {
		return a.fail(ctx, "import", err)
	}

	a.dayID, a.setID, a.setName = "", "", ""
	if err := a.restore(ctx); err != nil {
		return a.fail(ctx, "import", err)
	}
	a.printf("Backup restored\n")
	return nil
}
