package lmfmt

import "github.com/lmfmt/lmfmt/encode"

// SortOrder selects object key ordering.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAsc
)

// Config holds the formatting configuration, built once per Format call
// from the defaults overridden by the caller's options.
type Config struct {
	// IgnoreFalsy omits null object properties and skips null array
	// elements, including for typed-array classification. Default true.
	IgnoreFalsy bool

	// MaxDepth is the nesting depth before the max-depth marker is
	// emitted. Default 10.
	MaxDepth int

	// SortKeys selects object key ordering. Default SortNone.
	SortKeys SortOrder

	// MaxChars is the global output character budget; 0 means
	// unbounded. Default 0.
	MaxChars int

	// MaxItems and MaxStringLength are accepted for interface
	// compatibility and have no effect: array contents and string
	// lengths are never cut except through MaxChars.
	MaxItems        int
	MaxStringLength int
}

type Option func(*Config)

func DefaultConfig() *Config {
	return &Config{
		IgnoreFalsy: true,
		MaxDepth:    10,
	}
}

func IgnoreFalsy(v bool) Option {
	return func(cfg *Config) { cfg.IgnoreFalsy = v }
}

func MaxDepth(n int) Option {
	return func(cfg *Config) { cfg.MaxDepth = n }
}

func SortKeys(o SortOrder) Option {
	return func(cfg *Config) { cfg.SortKeys = o }
}

func MaxChars(n int) Option {
	return func(cfg *Config) { cfg.MaxChars = n }
}

// MaxItems is a no-op kept for interface compatibility.
func MaxItems(n int) Option {
	return func(cfg *Config) { cfg.MaxItems = n }
}

// MaxStringLength is a no-op kept for interface compatibility.
func MaxStringLength(n int) Option {
	return func(cfg *Config) { cfg.MaxStringLength = n }
}

func (cfg *Config) encodeOptions() []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.IgnoreFalsy(cfg.IgnoreFalsy),
		encode.MaxDepth(cfg.MaxDepth),
	}
	if cfg.SortKeys == SortAsc {
		res = append(res, encode.SortKeys(encode.SortAsc))
	}
	return res
}
