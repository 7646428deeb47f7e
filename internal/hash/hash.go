// Package hash produces the content fingerprints that identify snapshots.
package hash

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	stdhash "hash"
	"io"

	"github.com/zeebo/xxh3"
)

const (
	XXH3 = "xxh3"
	SHA1 = "sha1"

	Default = XXH3
)

var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Digest accumulates written bytes and renders their fingerprint.
type Digest interface {
	io.Writer
	Sum() string
}

// Hasher is a fixed, deterministic fingerprint function.
type Hasher interface {
	Name() string
	Fingerprint(data []byte) string
	New() Digest
}

// New returns the hasher registered under algo.
func New(algo string) (Hasher, error) {
	switch algo {
	case XXH3, "":
		return xxh3Hasher{}, nil
	case SHA1:
		return sha1Hasher{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}

// Algorithms lists the accepted algorithm names.
func Algorithms() []string {
	return []string{XXH3, SHA1}
}

type xxh3Hasher struct{}

func (xxh3Hasher) Name() string { return XXH3 }

func (xxh3Hasher) Fingerprint(data []byte) string {
	h := xxh3.Hash128(data).Bytes()
	return hex.EncodeToString(h[:])
}

func (xxh3Hasher) New() Digest { return &xxh3Digest{h: xxh3.New()} }

type xxh3Digest struct {
	h *xxh3.Hasher
}

func (d *xxh3Digest) Write(p []byte) (int, error) { return d.h.Write(p) }

func (d *xxh3Digest) Sum() string {
	s := d.h.Sum128().Bytes()
	return hex.EncodeToString(s[:])
}

type sha1Hasher struct{}

func (sha1Hasher) Name() string { return SHA1 }

func (sha1Hasher) Fingerprint(data []byte) string {
	s := sha1.Sum(data)
	return hex.EncodeToString(s[:])
}

func (sha1Hasher) New() Digest { return &stdDigest{h: sha1.New()} }

type stdDigest struct {
	h stdhash.Hash
}

func (d *stdDigest) Write(p []byte) (int, error) { return d.h.Write(p) }
func (d *stdDigest) Sum() string                 { return hex.EncodeToString(d.h.Sum(nil)) }
