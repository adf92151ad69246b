package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/dmitrijs2005/wordbook/internal/models"
	"gopkg.in/yaml.v3"
)

// ValidFormats are the accepted values of --format.
var ValidFormats = []string{"text", "json", "yaml"}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// writeValue renders v as YAML for "yaml" and as indented JSON otherwise.
// Documents have no dedicated text form, so "text" prints JSON as well.
func writeValue(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeStatsText(w io.Writer, st models.Stats) {
	fmt.Fprintf(w, "Days:  %d\n", st.Days)
	fmt.Fprintf(w, "Sets:  %d\n", st.Sets)
	fmt.Fprintf(w, "Words: %d\n", st.Words)
}
