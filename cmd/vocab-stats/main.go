// Command vocab-stats builds a vocabulary from a JSONL corpus and prints a
// JSON report of its term statistics. With --db it also persists the full
// export as a snapshot in a SQLite database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/cognicore/vocab/internal/corpus"
	"github.com/cognicore/vocab/internal/tokenize"
	"github.com/cognicore/vocab/pkg/vocab"
	"github.com/cognicore/vocab/pkg/vocab/config"
	"github.com/cognicore/vocab/pkg/vocab/store"
	"github.com/cognicore/vocab/pkg/vocab/store/sqlite"
)

type report struct {
	Documents   int64      `json:"documents"`
	Tokens      int64      `json:"tokens"`
	UniqueTerms int        `json:"unique_terms"`
	SnapshotID  string     `json:"snapshot_id,omitempty"`
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
		input    = flag.String("input", "", "Path to JSONL corpus file (required)")
		cfgPath  = flag.String("config", "", "Optional: YAML configuration file")
		min      = flag.Int("min", 0, "Optional: override minimum n-gram order")
		max      = flag.Int("max", 0, "Optional: override maximum n-gram order")
		delim    = flag.String("delim", "", "Optional: override n-gram delimiter")
		stopPath = flag.String("stoplist", "", "Optional: YAML stoplist for text tokenization")
		dbPath   = flag.String("db", "", "Optional: SQLite database for snapshot persistence")
		topK     = flag.Int("top", 20, "Number of top terms in the report")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if *min > 0 {
		cfg.Ngram.Min = *min
	}
	if *max > 0 {
		cfg.Ngram.Max = *max
	}
	if *delim != "" {
		cfg.Ngram.Delimiter = *delim
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

	docs, err := corpus.LoadFromJSONL(*input)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}

	v, err := vocab.New(cfg.Options())
	if err != nil {
		log.Fatalf("create vocabulary: %v", err)
	}

	for _, doc := range docs {
		v.InsertDocument(doc.TokensFor(tokenizer))
	}

	rep := report{
		Documents:   v.Documents(),
		Tokens:      v.Tokens(),
		UniqueTerms: v.Size(),
		TopTerms:    topTerms(v.Export(), *topK),
	}

	if *dbPath != "" {
		ctx := context.Background()

		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()

		snap := store.NewSnapshot(store.NewIDGenerator(), v)
		if err := st.SaveSnapshot(ctx, snap); err != nil {
			log.Fatalf("save snapshot: %v", err)
		}
		rep.SnapshotID = snap.ID
		log.Printf("Saved snapshot %s (%d terms)", snap.ID, len(snap.Terms))
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("encode report: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}

// topTerms sorts a copy of the export by descending total count and keeps
// the first k rows.
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
