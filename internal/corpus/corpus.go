// Package corpus loads document batches from JSONL files for the
// command-line tools.
package corpus

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/cognicore/vocab/internal/tokenize"
)

// Document is one corpus document. Either Tokens is set (pre-tokenized
// input, used as-is) or Text is set and gets tokenized at read time.
type Document struct {
	Tokens []string `json:"tokens,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// TokensFor returns the document's token sequence, tokenizing Text when no
// pre-tokenized sequence was supplied.
func (d Document) TokensFor(tok *tokenize.Tokenizer) []string {
	if len(d.Tokens) > 0 {
		return d.Tokens
	}
	return tok.Tokenize(d.Text)
}

// LoadFromJSONL loads documents from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Document
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid documents found in %s", path)
	}

	return docs, nil
}
