package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pyhub-apps/pdfnav-golang/pkg/logging"
)

// ExtractPagesFile writes the listed 1-based pages of inFile to outFile,
// keeping the given order and duplicates.
func ExtractPagesFile(inFile, outFile string, pages []int) error {
	if len(pages) == 0 {
		return errors.New("no pages specified")
	}

	selection := make([]string, len(pages))
	for i, p := range pages {
		selection[i] = strconv.Itoa(p)
	}

	if err := api.CollectFile(inFile, outFile, selection, nil); err != nil {
		return fmt.Errorf("failed to extract pages: %w", err)
	}

	logging.Logger().Debug("extracted pages", "in", inFile, "out", outFile, "pages", len(pages))
	return nil
}

// SplitSinglePages writes every page of inFile to its own file in outDir,
// named "<stem>_NNNN.pdf" with the 1-based page number zero-padded to four
// digits. It returns the number of pages written.
func SplitSinglePages(inFile, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", outDir, err)
	}

	total, err := api.PageCountFile(inFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inFile), filepath.Ext(inFile))
	if stem == "" {
		stem = "page"
	}

	for page := 1; page <= total; page++ {
		outFile := filepath.Join(outDir, fmt.Sprintf("%s_%04d.pdf", stem, page))
		if err := api.CollectFile(inFile, outFile, []string{strconv.Itoa(page)}, nil); err != nil {
			return 0, fmt.Errorf("failed to write page %d: %w", page, err)
		}
	}

	logging.Logger().Debug("split document", "in", inFile, "dir", outDir, "pages", total)
	return total, nil
}

// MergeFiles merges two or more input files into outFile in order
func MergeFiles(inFiles []string, outFile string) error {
	if len(inFiles) < 2 {
		return errors.New("merging needs at least two input files")
	}
	if err := api.MergeCreateFile(inFiles, outFile, false, nil); err != nil {
		return fmt.Errorf("failed to merge files: %w", err)
	}
	return nil
}

// CopyFile copies src to dst byte for byte
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// PageCountOf returns the number of pages in inFile without keeping the
// document open
func PageCountOf(inFile string) (int, error) {
	n, err := api.PageCountFile(inFile)
	if err != nil {
		return 0, fmt.Errorf("failed to read page count: %w", err)
	}
	return n, nil
}
