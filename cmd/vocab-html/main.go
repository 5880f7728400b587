// Command vocab-html builds a vocabulary from a directory of saved HTML
// pages: each file's visible text becomes one document.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cognicore/vocab/internal/tokenize"
	"github.com/cognicore/vocab/internal/webtext"
	"github.com/cognicore/vocab/pkg/vocab"
	"github.com/cognicore/vocab/pkg/vocab/config"
)

type report struct {
	Documents   int64      `json:"documents"`
	Tokens      int64      `json:"tokens"`
	UniqueTerms int        `json:"unique_terms"`
	TopTerms    []termJSON `json:"top_terms"`
}

type termJSON struct {
	Term      string `json:"term"`
	TermID    int    `json:"term_id"`
	TermCount int64  `json:"term_count"`
	DocCount  int64  `json:"doc_count"`
}

func main() {
	var (
		dir      = flag.String("dir", "", "Directory of .html files (required)")
		min      = flag.Int("min", 1, "Minimum n-gram order")
		max      = flag.Int("max", 2, "Maximum n-gram order")
		delim    = flag.String("delim", "_", "N-gram delimiter")
		stopPath = flag.String("stoplist", "", "Optional: YAML stoplist")
		topK     = flag.Int("top", 20, "Number of top terms in the report")
	)
	flag.Parse()

	if *dir == "" {
		log.Fatal("--dir required")
	}

	var stopwords []string
	if *stopPath != "" {
		sl, err := config.LoadStoplist(*stopPath)
		if err != nil {
			log.Fatalf("load stoplist: %v", err)
		}
		stopwords = sl.Terms
	}
	tokenizer := tokenize.NewTokenizer(stopwords)

	v, err := vocab.New(vocab.Options{NgramMin: *min, NgramMax: *max, Delimiter: *delim})
	if err != nil {
		log.Fatalf("create vocabulary: %v", err)
	}

	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		text, err := webtext.Extract(f)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return nil
		}

		v.InsertDocument(tokenizer.Tokenize(text))
		return nil
	})
	if err != nil {
		log.Fatalf("walk %s: %v", *dir, err)
	}

	if v.Documents() == 0 {
		log.Fatalf("no .html files found in %s", *dir)
	}

	rep := report{
		Documents:   v.Documents(),
		Tokens:      v.Tokens(),
		UniqueTerms: v.Size(),
		TopTerms:    topTerms(v.Export(), *topK),
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

func topTerms(stats []vocab.TermStat, k int) []termJSON {
	sorted := make([]vocab.TermStat, len(stats))
	copy(sorted, stats)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TermCount == sorted[j].TermCount {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].TermCount > sorted[j].TermCount
	})

	if k > 0 && k < len(sorted) {
		sorted = sorted[:k]
	}

	out := make([]termJSON, len(sorted))
	for i, s := range sorted {
		out[i] = termJSON{Term: s.Term, TermID: s.ID, TermCount: s.TermCount, DocCount: s.DocCount}
	}
	return out
}
