package words

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed words.txt
var defaultWords string

// Pool is an immutable word list that hands out shuffled draws.
type Pool struct {
	words []string
}

// NewPool builds a pool from words, dropping blanks and case-insensitive duplicates.
func NewPool(words []string) *Pool {
	seen := make(map[string]struct{}, len(words))
	unique := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, w)
	}
	return &Pool{words: unique}
}

// Default returns the built-in pool.
func Default() *Pool {
	words, _ := readWords(strings.NewReader(defaultWords))
	return NewPool(words)
}

// Load reads one word per line from path. An empty path, an unreadable file
// or a file without words falls back to the built-in list.
func Load(path string) *Pool {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		zap.L().Warn("Word file not readable, using built-in words", zap.String("path", path), zap.Error(err))
		return Default()
	}
	defer f.Close()

	words, err := readWords(f)
	if err != nil {
		zap.L().Warn("Word file read failed, using built-in words", zap.String("path", path), zap.Error(err))
		return Default()
	}

	pool := NewPool(words)
	if pool.Len() == 0 {
		zap.L().Warn("Word file is empty, using built-in words", zap.String("path", path))
		return Default()
	}
	zap.L().Info("Words loaded", zap.String("path", path), zap.Int("count", pool.Len()))
	return pool
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words: %w", err)
	}
	return words, nil
}

func (p *Pool) Len() int {
	return len(p.words)
}

// Words returns up to n distinct words in random order.
func (p *Pool) Words(n int) []string {
	if n <= 0 || len(p.words) == 0 {
		return nil
	}
	shuffled := append([]string(nil), p.words...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(n, len(shuffled))]
}
