package sterling

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/sterling/internal/util"
)

// PropertySet is an ordered mapping of string keys to string values used to
// tune lexer engine behavior during classification. Engines query it by key
// while they run; what any individual property means is up to the engine.
//
// Iteration order is deterministic: Keys and Values enumerate entries in the
// order the keys were first set. Re-setting an existing key replaces its value
// but does not move it. Looking up a key that was never set returns the empty
// string; it is never an error. Setting a key to the empty string clears its
// value but the key remains enumerable.
//
// The zero value is an empty set ready for use. A PropertySet must not be
// mutated while a classification call that was handed it is still running.
type PropertySet struct {
	order []string
	vals  map[string]string
}

// NewPropertySet creates an empty PropertySet. Initial properties may be
// given as sources in the same formats accepted by [PropertySet.SetAll]; they
// are applied in argument order. If any source is invalid, the error is
// returned and the returned set will be nil.
func NewPropertySet(sources ...interface{}) (*PropertySet, error) {
	ps := &PropertySet{}
	for i := range sources {
		if err := ps.SetAll(sources[i]); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// Get returns the value stored for the given key, or the empty string if the
// key has never been set. It never fails.
func (ps *PropertySet) Get(key string) string {
	if ps.vals == nil {
		return ""
	}
	return ps.vals[key]
}

// Set stores the given value under the given key. If the key already exists
// its value is replaced and its position in iteration order is unchanged;
// otherwise the key is appended to the iteration order.
func (ps *PropertySet) Set(key string, value string) {
	if ps.vals == nil {
		ps.vals = map[string]string{}
	}
	if _, ok := ps.vals[key]; !ok {
		ps.order = append(ps.order, key)
	}
	ps.vals[key] = value
}

// Len returns the number of keys in the set.
func (ps *PropertySet) Len() int {
	return len(ps.order)
}

// Keys returns the keys of the set in the order they were first set. The
// returned slice is a snapshot; later mutation of the set does not affect it.
func (ps *PropertySet) Keys() []string {
	keys := make([]string, len(ps.order))
	copy(keys, ps.order)
	return keys
}

// Values returns the values of the set in the same relative order that Keys
// reports the keys in. The returned slice is a snapshot taken at call time.
func (ps *PropertySet) Values() []string {
	vals := make([]string, len(ps.order))
	for i := range ps.order {
		vals[i] = ps.vals[ps.order[i]]
	}
	return vals
}

// SetAll stores every entry of the given source in the set. The source may be
// a map with string keys, a [][2]string, or a slice of 2-element key/value
// pairs such as produced by decoding JSON arrays. Map entries are applied in
// sorted key order so repeated calls with equal input leave equal iteration
// order; slice entries are applied in the order given.
//
// Values must be representable as text: strings, byte slices, booleans and
// numeric values are accepted, anything else is a type error. If the source
// is not a recognized shape or any entry is malformed, the returned error
// matches [ErrBadArgument] via errors.Is and the set is left exactly as it
// was; a partial application is never visible.
func (ps *PropertySet) SetAll(source interface{}) error {
	pairs, err := propPairs(source)
	if err != nil {
		return err
	}

	for _, kv := range pairs {
		ps.Set(kv[0], kv[1])
	}
	return nil
}

// propPairs converts a property source to ordered key/value pairs, fully
// validating it before anything is applied to a set.
func propPairs(source interface{}) ([][2]string, error) {
	var pairs [][2]string

	switch src := source.(type) {
	case map[string]string:
		for _, k := range util.OrderedKeys(src) {
			pairs = append(pairs, [2]string{k, src[k]})
		}
	case map[string]interface{}:
		for _, k := range util.OrderedKeys(src) {
			val, err := propValueString(src[k])
			if err != nil {
				return nil, fmt.Errorf("value of key %q: %w", k, err)
			}
			pairs = append(pairs, [2]string{k, val})
		}
	case [][2]string:
		pairs = append(pairs, src...)
	case []interface{}:
		for i := range src {
			entry, ok := src[i].([]interface{})
			if !ok {
				return nil, fmt.Errorf("entry %d: not a key/value pair: %w", i, ErrBadArgument)
			}
			if len(entry) != 2 {
				return nil, fmt.Errorf("entry %d: need exactly 2 elements, have %d: %w", i, len(entry), ErrBadArgument)
			}
			key, ok := entry[0].(string)
			if !ok {
				return nil, fmt.Errorf("entry %d: key is not a string: %w", i, ErrBadArgument)
			}
			val, err := propValueString(entry[1])
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			pairs = append(pairs, [2]string{key, val})
		}
	default:
		return nil, fmt.Errorf("expected a key/value mapping, %T found: %w", source, ErrBadArgument)
	}

	return pairs, nil
}

// propValueString converts a single property value to its string form, or
// returns an ErrBadArgument-matching error if the value has no sensible text
// representation.
func propValueString(v interface{}) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("cannot represent %T value as text: %w", v, ErrBadArgument)
	}
}
