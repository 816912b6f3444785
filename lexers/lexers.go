// Package lexers defines the engine interface that style-per-byte lexers
// implement and keeps the process-wide registry of languages that the
// sterling package looks engines up in.
//
// An engine is a black box: given a complete buffer, a set of properties, and
// flattened word lists, it fills in one style byte per input byte. Everything
// sterling does afterward (run segmentation, decoding, position accounting)
// works only from those style bytes.
package lexers

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dekarrin/sterling/internal/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// NumWordListsUnknown is returned by an Engine's NumWordLists when the engine
// cannot report how many word lists its language wants. It is distinct from
// 0, which means the language genuinely takes no word lists.
const NumWordListsUnknown = -1

// Styles shared by the built-in engines. These are only conventions; an
// engine may emit any style value that fits in a byte, and callers map styles
// to meaning per language.
const (
	StyleDefault = iota
	StyleComment
	StyleNumber
	StyleString
	StyleOperator
	StyleIdentifier
	StyleKeyword
	StyleKeyword2
	StyleWhitespace
)

var (
	// ErrAlreadyRegistered is returned by Register when the language name is
	// taken.
	ErrAlreadyRegistered = errors.New("a lexer is already registered for the language")

	// ErrNotRegistered is returned by Lookup for an unknown language name.
	ErrNotRegistered = errors.New("no lexer is registered for the language")
)

// Properties is the read surface of a property set as engines see it during
// classification. Get returns the empty string for a key that was never set.
type Properties interface {
	Get(key string) string
	Keys() []string
}

// Engine is a style-per-byte lexer for one language.
//
// A registered Engine is shared: every classification of its language, from
// any goroutine, goes through the one instance in the registry. Classify must
// therefore be safe to call concurrently, either by keeping all mutable state
// local to the call or by serializing internally. Each call still owns its
// buf and styles slices exclusively.
type Engine interface {
	// NumWordLists returns how many word lists the language wants, or
	// NumWordListsUnknown if the engine cannot report a count.
	NumWordLists() int

	// WordListDescriptions returns a human-readable purpose for each word
	// list slot, in slot order. Its length equals NumWordLists for engines
	// that report a count, and it is empty for ones that do not.
	WordListDescriptions() []string

	// Classify assigns a style to every byte of buf by writing into styles,
	// which is at least len(buf)+1 bytes long and zeroed on entry. The one
	// extra byte is slack for engines that look one past the end while
	// scanning; whatever is written there is discarded. Word lists are given
	// flattened, one string per slot, and may be shorter or longer than the
	// declared slot count.
	Classify(buf []byte, styles []byte, props Properties, wordLists []string) error
}

// registry is the process-wide language table. It is populated by Register
// during startup (package init of engine providers, or explicit registration
// before classification begins) and must not be mutated once classification
// calls are in flight.
var registry = struct {
	mtx     sync.RWMutex
	engines map[string]Engine
}{engines: map[string]Engine{}}

// Register puts an engine in the language table under the given name. It
// returns an error matching ErrAlreadyRegistered if the name is taken.
func Register(language string, eng Engine) error {
	registry.mtx.Lock()
	defer registry.mtx.Unlock()

	if _, ok := registry.engines[language]; ok {
		return fmt.Errorf("%q: %w", language, ErrAlreadyRegistered)
	}
	registry.engines[language] = eng
	return nil
}

// MustRegister is like Register but panics on error. It is intended for use
// from init functions of engine providers.
func MustRegister(language string, eng Engine) {
	if err := Register(language, eng); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the engine registered under the given language name, or an
// error matching ErrNotRegistered if there is none.
func Lookup(language string) (Engine, error) {
	registry.mtx.RLock()
	defer registry.mtx.RUnlock()

	eng, ok := registry.engines[language]
	if !ok {
		return nil, fmt.Errorf("%q: %w", language, ErrNotRegistered)
	}
	return eng, nil
}

// Names returns the names of all registered languages, sorted.
func Names() []string {
	registry.mtx.RLock()
	defer registry.mtx.RUnlock()

	return util.OrderedKeys(registry.engines)
}

// FindName does a fuzzy search of registered language names and returns the
// best match for the given query, or an error matching ErrNotRegistered if
// nothing is close. An exact name always matches itself.
func FindName(query string) (string, error) {
	names := Names()

	best := ""
	bestRank := -1
	for _, name := range names {
		rank := fuzzy.RankMatchNormalizedFold(query, name)
		if rank < 0 {
			continue
		}
		if bestRank == -1 || rank < bestRank {
			best = name
			bestRank = rank
		}
	}

	if bestRank == -1 {
		return "", fmt.Errorf("nothing like %q: %w", query, ErrNotRegistered)
	}
	return best, nil
}
