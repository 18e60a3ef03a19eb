// Command pdfnav inspects and manipulates PDF files: metadata, table of
// contents, page labels, text search, page extraction, splitting, and
// merging.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
	"github.com/pyhub-apps/pdfnav-golang/pkg/outline"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pagelabels"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pagerange"
	"github.com/pyhub-apps/pdfnav-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfnav-golang/pkg/text"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "info":
		err = runInfo(args)
	case "toc":
		err = runToc(args)
	case "page-labels":
		err = runPageLabels(args)
	case "grep":
		err = runGrep(args)
	case "read-pages":
		err = runReadPages(args)
	case "extract", "cat":
		err = runExtract(args)
	case "split", "burst":
		err = runSplit(args)
	case "merge":
		err = runMerge(args)
	case "help", "-h", "-help", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pdfnav: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfnav: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	out := os.Stderr
	fmt.Fprintln(out, "Usage: pdfnav <command> [flags] <args>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  info <pdf>                     Display PDF metadata")
	fmt.Fprintln(out, "  toc <pdf>                      Print table of contents / bookmarks")
	fmt.Fprintln(out, "  page-labels <pdf>              Show page label mapping")
	fmt.Fprintln(out, "  grep <pattern> <pdf>           Search text with a regular expression")
	fmt.Fprintln(out, "  read-pages <pdf> <pages>       Extract text from specific pages")
	fmt.Fprintln(out, "  extract <pdf> <pages>          Extract page ranges to a new PDF")
	fmt.Fprintln(out, "  split <pdf>                    Split PDF into individual pages")
	fmt.Fprintln(out, "  merge <pdf>...                 Combine multiple PDFs into one")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'pdfnav <command> -h' for command flags.")
}

// commonFlags are shared by every subcommand
type commonFlags struct {
	verbose bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.BoolVar(&c.verbose, "verbose", false, "Enable debug logging to stderr")
	return c
}

func (c *commonFlags) apply() {
	if c.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	password := fs.String("password", "", "Password to open encrypted PDFs")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pdfnav info [flags] <pdf>")
	}
	common.apply()
	path := fs.Arg(0)

	doc, err := pdf.OpenWithPassword(path, *password)
	if err != nil {
		return err
	}
	defer doc.Close()

	info := doc.Info()
	if *jsonOut {
		return emitJSON(info)
	}
	printInfo(path, info)
	return nil
}

func printInfo(path string, info pdf.DocInfo) {
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Pages: %d\n", info.PageCount)

	if info.Title != "" {
		fmt.Printf("Title: %s\n", info.Title)
	}
	if info.Author != "" {
		fmt.Printf("Author: %s\n", info.Author)
	}
	if info.Subject != "" {
		fmt.Printf("Subject: %s\n", info.Subject)
	}
	if info.Keywords != "" {
		fmt.Printf("Keywords: %s\n", info.Keywords)
	}
	if info.Creator != "" {
		fmt.Printf("Creator: %s\n", info.Creator)
	}
	if info.Producer != "" {
		fmt.Printf("Producer: %s\n", info.Producer)
	}
	if info.CreationDate != "" {
		fmt.Printf("Created: %s\n", pdf.FormatDate(info.CreationDate))
	}
	if info.ModDate != "" {
		fmt.Printf("Modified: %s\n", pdf.FormatDate(info.ModDate))
	}
}

func runToc(args []string) error {
	fs := flag.NewFlagSet("toc", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	password := fs.String("password", "", "Password to open encrypted PDFs")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pdfnav toc [flags] <pdf>")
	}
	common.apply()

	doc, err := pdf.OpenWithPassword(fs.Arg(0), *password)
	if err != nil {
		return err
	}
	defer doc.Close()

	entries, err := outline.Toc(doc)
	if err != nil {
		return err
	}

	flat := outline.Flatten(entries)
	if *jsonOut {
		if flat == nil {
			flat = []outline.FlatEntry{}
		}
		return emitJSON(flat)
	}

	if len(entries) == 0 {
		fmt.Println("No table of contents found.")
		return nil
	}
	for _, entry := range flat {
		indent := strings.Repeat("  ", entry.Level)
		pageStr := ""
		if entry.Page > 0 {
			pageStr = fmt.Sprintf(" (p. %d)", entry.Page)
		}
		fmt.Printf("%s%s%s\n", indent, entry.Title, pageStr)
	}
	return nil
}

func runPageLabels(args []string) error {
	fs := flag.NewFlagSet("page-labels", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	password := fs.String("password", "", "Password to open encrypted PDFs")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pdfnav page-labels [flags] <pdf>")
	}
	common.apply()

	doc, err := pdf.OpenWithPassword(fs.Arg(0), *password)
	if err != nil {
		return err
	}
	defer doc.Close()

	labels, err := pagelabels.Labels(doc)
	if err != nil {
		return err
	}

	if *jsonOut {
		if labels == nil {
			labels = []pagelabels.PageLabel{}
		}
		return emitJSON(labels)
	}
	for _, label := range labels {
		fmt.Printf("%d: %s\n", label.PhysicalPage, label.LogicalLabel)
	}
	return nil
}

func runGrep(args []string) error {
	defaults := text.DefaultGrepOptions()

	fs := flag.NewFlagSet("grep", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	ignoreCase := fs.Bool("ignore-case", false, "Case insensitive search")
	maxResults := fs.Int("max-results", defaults.MaxResults, "Maximum number of results")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: pdfnav grep [flags] <pattern> <pdf>")
	}
	common.apply()
	pattern, path := fs.Arg(0), fs.Arg(1)

	opts := defaults
	opts.CaseInsensitive = *ignoreCase
	opts.MaxResults = *maxResults

	ext, err := text.Open(path)
	if err != nil {
		return err
	}
	defer ext.Close()

	matches, err := ext.Search(pattern, opts)
	if err != nil {
		return err
	}

	if *jsonOut {
		if matches == nil {
			matches = []text.Match{}
		}
		return emitJSON(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("p%d:L%d: %s\n", m.Page, m.LineNumber, strings.TrimSpace(grepDisplay(m, opts.ContextChars)))
	}
	fmt.Printf("\n%d match(es) found.\n", len(matches))
	return nil
}

// grepDisplay truncates long match lines to a context window around the
// match, marking removed text with ellipses.
func grepDisplay(m text.Match, contextChars int) string {
	if len(m.Text) <= contextChars*2 {
		return m.Text
	}

	ctxStart := m.MatchStart - contextChars
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := m.MatchEnd + contextChars
	if ctxEnd > len(m.Text) {
		ctxEnd = len(m.Text)
	}

	var b strings.Builder
	if ctxStart > 0 {
		b.WriteString("...")
	}
	b.WriteString(m.Text[ctxStart:ctxEnd])
	if ctxEnd < len(m.Text) {
		b.WriteString("...")
	}
	return b.String()
}

func runReadPages(args []string) error {
	fs := flag.NewFlagSet("read-pages", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: pdfnav read-pages [flags] <pdf> <pages>")
	}
	common.apply()
	path, pagesArg := fs.Arg(0), fs.Arg(1)

	ext, err := text.Open(path)
	if err != nil {
		return err
	}
	defer ext.Close()

	pageList, err := pagerange.ExpandList(pagesArg, ext.PageCount())
	if err != nil {
		return err
	}

	texts, err := ext.Pages(pageList)
	if err != nil {
		return err
	}

	if *jsonOut {
		return emitJSON(texts)
	}
	for _, pt := range texts {
		fmt.Printf("--- Page %d ---\n", pt.Page)
		fmt.Println(pt.Text)
		fmt.Println()
	}
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "Emit JSON instead of text")
	output := fs.String("output", "", "Output file (required)")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: pdfnav extract [flags] -output <out.pdf> <pdf> <pages>")
	}
	if *output == "" {
		return fmt.Errorf("missing -output file")
	}
	common.apply()
	path, pagesArg := fs.Arg(0), fs.Arg(1)

	total, err := pdf.PageCountOf(path)
	if err != nil {
		return err
	}
	pageList, err := pagerange.ExpandList(pagesArg, total)
	if err != nil {
		return err
	}
	if len(pageList) == 0 {
		return fmt.Errorf("no pages specified")
	}

	if err := pdf.ExtractPagesFile(path, *output, pageList); err != nil {
		return err
	}

	if *jsonOut {
		return emitJSON(struct {
			OutputPath string `json:"output_path"`
			PageCount  int    `json:"page_count"`
		}{OutputPath: *output, PageCount: len(pageList)})
	}
	fmt.Printf("Extracted %d page(s) to %s\n", len(pageList), *output)
	return nil
}

func runSplit(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	common := addCommonFlags(fs)
	outputDir := fs.String("output-dir", "", "Output directory (required)")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pdfnav split [flags] -output-dir <dir> <pdf>")
	}
	if *outputDir == "" {
		return fmt.Errorf("missing -output-dir directory")
	}
	common.apply()

	total, err := pdf.SplitSinglePages(fs.Arg(0), *outputDir)
	if err != nil {
		return err
	}
	fmt.Printf("Split %d pages into %s\n", total, *outputDir)
	return nil
}

func runMerge(args []string) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	common := addCommonFlags(fs)
	output := fs.String("output", "", "Output file (required)")
	fs.Parse(args)
	if fs.NArg() == 0 {
		return fmt.Errorf("no input files specified")
	}
	if *output == "" {
		return fmt.Errorf("missing -output file")
	}
	common.apply()
	inputs := fs.Args()

	if len(inputs) == 1 {
		if err := pdf.CopyFile(inputs[0], *output); err != nil {
			return err
		}
		fmt.Printf("Copied 1 file to %s\n", *output)
		return nil
	}

	if err := pdf.MergeFiles(inputs, *output); err != nil {
		return err
	}
	total, err := pdf.PageCountOf(*output)
	if err != nil {
		return err
	}
	fmt.Printf("Merged %d files (%d pages) into %s\n", len(inputs), total, *output)
	return nil
}

func emitJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
