package pack

import (
	"io"
	"sort"
	"sync"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Method is a named zip compression method.
type Method struct {
	Name string
	// ID is the zip method number written to entry headers.
	ID uint16
	// Compressor is registered on the writer. Nil means the writer's
	// built-in compressor for ID is used.
	Compressor zip.Compressor
}

// Names of the built-in methods.
const (
	MethodZstd    = "zstd"
	MethodDeflate = "deflate"
	MethodStore   = "store"
)

// DefaultMethod is used when Options names none.
const DefaultMethod = MethodZstd

// methodRegistry is a thread-safe set of methods keyed by name.
type methodRegistry struct {
	mu    sync.RWMutex
	items map[string]Method
}

var methods = newMethodRegistry()

func newMethodRegistry() *methodRegistry {
	r := &methodRegistry{items: make(map[string]Method)}
	r.mustRegister(Method{
		Name:       MethodZstd,
		ID:         zstd.ZipMethodWinZip,
		Compressor: zstd.ZipCompressor(zstd.WithEncoderLevel(zstd.SpeedBetterCompression)),
	})
	r.mustRegister(Method{
		Name: MethodDeflate,
		ID:   zip.Deflate,
		Compressor: func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, flate.BestCompression)
		},
	})
	r.mustRegister(Method{Name: MethodStore, ID: zip.Store})
	return r
}

// Register adds a method.
func (r *methodRegistry) Register(m Method) error {
	if m.Name == "" {
		return errors.New(errors.ErrInvalidInput, "compression method name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.Name]; exists {
		return errors.Newf(errors.ErrInvalidInput, "compression method '%s' is already registered", m.Name)
	}
	r.items[m.Name] = m
	return nil
}

func (r *methodRegistry) mustRegister(m Method) {
	if err := r.Register(m); err != nil {
		panic(err)
	}
}

// Get returns the method called name.
func (r *methodRegistry) Get(name string) (Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.items[name]
	if !exists {
		return Method{}, errors.Newf(errors.ErrInvalidInput, "unknown compression method '%s'", name).
			WithDetail("available", r.namesLocked())
	}
	return m, nil
}

// List returns the registered names in sorted order.
func (r *methodRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *methodRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterMethod makes an additional compression method available to
// Package.
func RegisterMethod(m Method) error {
	return methods.Register(m)
}

// Methods lists the available compression methods.
func Methods() []string {
	return methods.List()
}

// LookupMethod returns the method called name.
func LookupMethod(name string) (Method, error) {
	return methods.Get(name)
}
