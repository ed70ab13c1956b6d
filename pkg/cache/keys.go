package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// keyVersion is bumped whenever the stored result format changes, so older
// entries are ignored rather than misread.
const keyVersion = "v1"

// ResultKeyOpts holds every option that affects a nesting result.
type ResultKeyOpts struct {
	Circular  bool   `json:"circular"`
	Reversals bool   `json:"reversals"`
	Policy    string `json:"policy"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key for the result of evaluating the word whose
	// canonical form is wordKey.
	ResultKey(wordKey string, opts ResultKeyOpts) string
}

// DefaultKeyer builds keys of the form "result:v1:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey hashes the word together with the options.
// Dedupe is not part of the key because it never changes a result.
func (DefaultKeyer) ResultKey(wordKey string, opts ResultKeyOpts) string {
	data, _ := json.Marshal([]any{wordKey, opts})
	return fmt.Sprintf("result:%s:%s", keyVersion, Hash(data))
}

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// build so results computed by another engine are never served:
//
//	keyer := cache.NewScopedKeyer(nil, "v0.4.1@3f2c9ab:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ResultKey(wordKey string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(wordKey, opts)
}

// Hash returns the hex SHA-256 of data. FileCache uses it to turn keys into
// file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = (*ScopedKeyer)(nil)
)
