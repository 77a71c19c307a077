// apps/go-server/internal/words/words.go
//
// Provides the secret word list for new games.
//
// Initialization behavior (Init):
//  1. If a path is given, load one word per line from that file.
//  2. Otherwise fall back to the embedded list in assets/words.txt.
//
// Constraints:
//   • Words must be alphabetic (any script); entries with spaces, digits or
//     punctuation are dropped.
//   • Lists are normalized to lowercase.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/robalobadob/hangman/apps/go-server/assets"
)

// Fallback is returned by Random when no list is loaded.
const Fallback = "hangman"

var ErrEmpty = errors.New("words: list is empty")

var (
	initOnce   sync.Once
	list       []string
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error if the file cannot be read or the list ends up empty.
func Init(path string) error {
	initOnce.Do(func() {
		list, initialErr = Load(path)
	})
	return initialErr
}

// Load reads a word list from path, or the embedded defaults when path is empty.
func Load(path string) ([]string, error) {
	var raw []string
	if path == "" {
		var err error
		if raw, err = assets.WordList(); err != nil {
			return nil, fmt.Errorf("read embedded words: %w", err)
		}
	} else {
		var err error
		if raw, err = readWordFile(path); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	out := normalize(raw)
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// readWordFile loads one word per line from a file, skipping blanks and comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// normalize lowercases, trims and drops non-alphabetic or duplicate entries.
func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s consists only of letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random word from the loaded list.
// If the list is not loaded yet or empty, falls back to Fallback.
func Random() string {
	return pick(list)
}

func pick(from []string) string {
	if len(from) == 0 {
		return Fallback
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(from))))
	return from[n.Int64()]
}

// Count returns the number of loaded words.
func Count() int {
	return len(list)
}
