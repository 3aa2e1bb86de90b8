package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/provalab/fitchcheck/internal/checker"
	"github.com/provalab/fitchcheck/internal/config"
	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/format"
	"github.com/provalab/fitchcheck/internal/markdown"
	"github.com/provalab/fitchcheck/internal/proof"
)

var (
	configPath   = flag.String("config", config.DefaultPath, "path to configuration file")
	showHelp     = flag.Bool("help", false, "show help message")
	showVer      = flag.Bool("version", false, "show version")
	showConfig   = flag.Bool("show-config", false, "print full configuration")
	runInitFlag  = flag.Bool("init", false, "write a starter fitchcheck.yaml and exit")
	verbose      = flag.Bool("verbose", false, "log each validated line to stderr")
	pretty       = flag.Bool("pretty", false, "human-readable styled output instead of the one-line result")
	doFormat     = flag.Bool("format", false, "pretty-print the proof instead of checking it")
	doFixNumbers = flag.Bool("fix-numbers", false, "renumber proof lines sequentially and print the result")
	doLaTeX      = flag.Bool("latex", false, "export the proof as a LaTeX logicproof environment")
	templatePath = flag.String("template", "", "template file the proof must match (premises, then conclusion)")
)

const version = "0.1.0"

// ErrProofInvalid signals a failed check whose result line was already
// printed by the reporter; main maps it to exit code 1 without logging.
var ErrProofInvalid = errors.New("proof check failed")

func Execute() error {
	flag.Parse()

	if *showHelp {
		showUsage()
		return nil
	}

	if *showVer {
		fmt.Printf("fitchcheck version %s\n", version)
		return nil
	}

	if *runInitFlag {
		return runInit(*configPath)
	}

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return err
	}

	if *showConfig {
		cfg.PrintAsYAML()
		return nil
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one proof file\n")
		showUsage()
		return fmt.Errorf("expected exactly one proof file")
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading proof file: %v\n", err)
		return err
	}
	src := string(data)

	switch {
	case *doFormat:
		return runFormat(cfg, src, false)
	case *doFixNumbers:
		return runFormat(cfg, src, true)
	case *doLaTeX:
		return runLaTeX(cfg, src)
	}

	reporter := newReporter(cfg)

	if strings.EqualFold(filepath.Ext(path), ".md") {
		return runMarkdown(cfg, reporter, path, data)
	}

	c := checker.New(cfg)
	res, err := runCheck(c, src, *templatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	res.Path = path
	reporter.Report(res)
	if !res.Valid {
		return ErrProofInvalid
	}
	return nil
}

func newReporter(cfg *config.Config) checker.Reporter {
	if *pretty || cfg.Pretty {
		return checker.NewPrettyReporter()
	}
	return checker.NewStdoutReporter()
}

func runCheck(c *checker.Checker, src, templatePath string) (*checker.Result, error) {
	if templatePath == "" {
		return c.CheckSource(src), nil
	}
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	template, err := c.ParseTemplate(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}
	return c.CheckSourceWithTemplate(src, template), nil
}

// runFormat implements -format and -fix-numbers. On a proof that does not
// parse, the input is echoed unchanged so editors can pipe buffers through
// it safely.
func runFormat(cfg *config.Config, src string, renumber bool) error {
	opts := proof.Options{AllowedVars: cfg.VariableSet(), LooseNumbers: renumber}
	doc, err := proof.Parse(src, opts)
	if err != nil {
		fmt.Print(src)
		return nil
	}
	fopts := format.Options{Unicode: cfg.UseUnicode()}
	if renumber {
		fmt.Print(format.FixNumbers(doc, fopts))
	} else {
		fmt.Print(format.Format(doc, fopts))
	}
	return nil
}

func runLaTeX(cfg *config.Config, src string) error {
	doc, err := proof.Parse(src, proof.Options{AllowedVars: cfg.VariableSet()})
	if err != nil {
		fmt.Println("Failed to export to latex, because the proof could not be parsed or was empty.")
		return nil
	}
	fmt.Print(format.LaTeX(doc))
	return nil
}

// runMarkdown checks every fenced proof block in a markdown file. Reported
// line numbers are absolute positions in the markdown source.
func runMarkdown(cfg *config.Config, reporter checker.Reporter, path string, data []byte) error {
	blocks, err := markdown.ExtractProofBlocks(data, cfg.MarkdownLanguages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing markdown: %v\n", err)
		return err
	}
	if len(blocks) == 0 {
		fmt.Println("No proof blocks found.")
		return nil
	}

	c := checker.New(cfg)
	var last *checker.Result
	for _, block := range blocks {
		log.Debug("checking proof block", "line", block.StartLine, "language", block.Language)
		res := c.CheckSource(block.Text)
		res.Path = path
		if !res.Valid {
			relocate(res, string(data), block.StartLine-1)
			reporter.Report(res)
			return ErrProofInvalid
		}
		last = res
	}
	last.Path = path
	reporter.Report(last)
	return nil
}

// relocate shifts a block-relative error to markdown-file coordinates.
func relocate(res *checker.Result, mdSource string, offset int) {
	switch e := res.Err.(type) {
	case *diag.LexError:
		e.Line += offset
	case *diag.ParseError:
		e.Line += offset
	case *diag.RuleError:
		if res.Doc != nil {
			if l := res.Doc.LineByNumber(e.Line); l != nil {
				e.Line = l.Source
			}
		}
		e.Line += offset
	}
	// Carets and excerpts now index into the markdown source.
	res.Source = mdSource
	res.Doc = nil
}

func showUsage() {
	fmt.Printf("Usage: %s [options] <path-to-proof-file>\n\n", os.Args[0])
	fmt.Printf("Fitchcheck verifies Fitch-style natural-deduction proofs.\n\n")
	fmt.Println("The proof file is checked line by line; the result is a single line:")
	fmt.Println("  The proof is correct!")
	fmt.Println("  Fatal error: parser failure near line <N>: <message>")
	fmt.Println("  Line <N>: <message>")
	fmt.Println()
	fmt.Println("A .md file is scanned for fenced code blocks marked as proofs.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
