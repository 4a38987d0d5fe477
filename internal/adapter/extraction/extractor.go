// Package extraction defines the vocabulary-extraction collaborator
// consumed by the store, plus a delimiter-based implementation for
// importing word lists from plain text. The hosted AI extractor that
// mines live conversation is an external service and stays behind the
// same interface.
package extraction

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/vocabloom/vocabloom/internal/entity"
)

// Extractor turns raw text into vocabulary candidates.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]entity.Candidate, error)
}

// Delimited parses one candidate per non-empty line, fields separated by
// a delimiter: word, translation, and optionally context and part of
// speech. Lines starting with # are comments.
type Delimited struct {
	sep string
}

// NewDelimited creates a line extractor. An empty separator defaults to
// tab.
func NewDelimited(sep string) *Delimited {
	if sep == "" {
		sep = "\t"
	}
	return &Delimited{sep: sep}
}

func (d *Delimited) Extract(ctx context.Context, text string) ([]entity.Candidate, error) {
	var candidates []entity.Candidate

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, d.sep)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected at least word%stranslation", lineNo, d.sep)
		}

		cand := entity.Candidate{
			Word:        strings.TrimSpace(fields[0]),
			Translation: strings.TrimSpace(fields[1]),
		}
		if cand.Word == "" || cand.Translation == "" {
			return nil, fmt.Errorf("line %d: %w", lineNo, entity.ErrInvalidCandidate)
		}
		if len(fields) > 2 {
			cand.Context = strings.TrimSpace(fields[2])
		}
		if len(fields) > 3 {
			cand.PartOfSpeech = strings.TrimSpace(fields[3])
		}
		candidates = append(candidates, cand)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return candidates, nil
}
