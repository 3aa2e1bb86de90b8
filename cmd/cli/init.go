package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var configTemplate = `# Fitchcheck configuration file
version: "1.0"

# Variable names quantifiers may bind. Every other lowercase identifier in a
# formula is a constant or function symbol.
variables: [x, y, z, u, v, w]

# Render formulas with unicode connectives (¬ ∧ ∨ → ↔ ∀ ∃ ⊥). Set to false
# for the ASCII forms (~ /\ \/ -> <-> forall exists #).
unicode: true

# Use the styled human-readable reporter by default. The editor-facing
# one-line output needs this off.
pretty: false

# Fenced code block languages treated as proofs when checking markdown.
markdown_languages: [fitch, proof]
`

// runInit writes a starter configuration file, refusing to overwrite an
// existing one.
func runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("not overwriting existing config file: %s", path)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	okStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))
	fmt.Printf("%s Wrote %s\n", okStyle.Render("✓"), path)
	return nil
}
