// Package store keeps many named documents in one bbolt file.
//
// Each document is stored gzip compressed under its key in the "docs"
// bucket, next to a msgpack encoded Meta record in the "meta" bucket.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	nbt "github.com/signadot/nbt-format/go-nbt"
	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/debug"
	"github.com/signadot/nbt-format/go-nbt/encode"
	"github.com/signadot/nbt-format/go-nbt/ir"
	"github.com/signadot/nbt-format/go-nbt/nbterr"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	docsBucket = []byte("docs")
	metaBucket = []byte("meta")
)

var ErrNotFound = errors.New("document not found")

// Meta describes a stored document. Size is the length of its uncompressed
// encoding.
type Meta struct {
	Name   string    `msgpack:"name"`
	Root   string    `msgpack:"root"`
	Size   int       `msgpack:"size"`
	Stored time.Time `msgpack:"stored"`
}

type Store struct {
	bdb  *bbolt.DB
	opts []encode.EncodeOption
}

type options struct {
	timeout time.Duration
	noSync  bool
	enc     []encode.EncodeOption
}

type Option func(*options)

// Timeout bounds the wait for the file lock held by another process.
func Timeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// NoSync skips fsync after each write. Only useful in tests.
func NoSync() Option {
	return func(o *options) { o.noSync = true }
}

// EncodeOptions sets the options used to encode documents on Put.
func EncodeOptions(opts ...encode.EncodeOption) Option {
	return func(o *options) { o.enc = opts }
}

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	o := &options{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(o)
	}
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = o.timeout
	bopt.NoSync = o.noSync

	bdb, err := bbolt.Open(path, 0666, &bopt)
	if err != nil {
		return nil, nbterr.NewIO("open store", -1, fmt.Errorf("%s: %w", path, err))
	}
	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{docsBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		bdb.Close()
		return nil, nbterr.NewIO("open store", -1, err)
	}
	if debug.Store() {
		debug.Logf("store: opened %s\n", path)
	}
	return &Store{bdb: bdb, opts: o.enc}, nil
}

func (s *Store) Close() error {
	return s.bdb.Close()
}

// Put stores the document (name, v) under key, replacing any document
// already there.
func (s *Store) Put(key, name string, v ir.Value) error {
	if key == "" {
		return fmt.Errorf("put: %w: empty key", ir.ErrPath)
	}
	raw, err := encode.EncodeBytes(name, v, s.opts...)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	w, err := compression.NewWriter(&buf, compression.Gzip)
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return nbterr.NewCompression(err)
	}
	if err := w.Close(); err != nil {
		return nbterr.NewCompression(err)
	}
	meta, err := msgpack.Marshal(&Meta{
		Name:   name,
		Root:   v.Type().String(),
		Size:   len(raw),
		Stored: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("put %s: meta: %w", key, err)
	}
	err = s.bdb.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(docsBucket).Put([]byte(key), buf.Bytes()); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put([]byte(key), meta)
	})
	if err != nil {
		return nbterr.NewIO("put", -1, err)
	}
	if debug.Store() {
		debug.Logf("store: put %q %s %d bytes (%d compressed)\n", key, v.Type(), len(raw), buf.Len())
	}
	return nil
}

// Get returns the document stored under key.
func (s *Store) Get(key string) (string, ir.Value, error) {
	var d []byte
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		d = bytes.Clone(tx.Bucket(docsBucket).Get([]byte(key)))
		return nil
	})
	if err != nil {
		return "", nil, nbterr.NewIO("get", -1, err)
	}
	if d == nil {
		return "", nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if debug.Store() {
		debug.Logf("store: get %q %d compressed bytes\n", key, len(d))
	}
	name, v, err := nbt.DecodeWith(bytes.NewReader(d), compression.Gzip)
	if err != nil {
		return "", nil, fmt.Errorf("get %s: %w", key, err)
	}
	return name, v, nil
}

// Meta returns the record describing the document under key.
func (s *Store) Meta(key string) (*Meta, error) {
	var m *Meta
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		d := tx.Bucket(metaBucket).Get([]byte(key))
		if d == nil {
			return nil
		}
		m = &Meta{}
		return msgpack.Unmarshal(d, m)
	})
	if err != nil {
		return nil, fmt.Errorf("meta %s: %w", key, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return m, nil
}

// Keys returns the stored keys in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.bdb.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(metaBucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, nbterr.NewIO("keys", -1, err)
	}
	return keys, nil
}

// Delete removes the document under key.
func (s *Store) Delete(key string) error {
	found := false
	err := s.bdb.Update(func(tx *bbolt.Tx) error {
		k := []byte(key)
		found = tx.Bucket(metaBucket).Get(k) != nil
		if !found {
			return nil
		}
		if err := tx.Bucket(docsBucket).Delete(k); err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Delete(k)
	})
	if err != nil {
		return nbterr.NewIO("delete", -1, err)
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	if debug.Store() {
		debug.Logf("store: delete %q\n", key)
	}
	return nil
}
