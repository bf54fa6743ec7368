package resolve

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/chiffre/chiffre"
)

// Kind selects how a phrase is read.
type Kind string

const (
	KindNumeral  Kind = "numeral"
	KindDuration Kind = "duration"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindNumeral, KindDuration:
		return k, nil
	}
	return "", fmt.Errorf("unknown kind %q, want numeral or duration", s)
}

// Value is a resolved phrase. Number is set for numerals; Duration and Shape
// for durations.
type Value struct {
	Kind      Kind
	Number    chiffre.Decimal
	Duration  time.Duration
	Shape     chiffre.Shape
	Canonical string
	Warnings  []chiffre.ParseError
}

// Result pairs a batch input with its outcome.
type Result struct {
	Text  string
	Value Value
	Err   error
}

type Option func(*Resolver)

// WithCache memoizes successful resolutions. A non-positive size or ttl
// disables the cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(r *Resolver) {
		if size <= 0 || ttl <= 0 {
			r.cache = nil
			return
		}
		r.cache = expirable.NewLRU[string, Value](size, nil, ttl)
	}
}

// WithWorkers bounds how many phrases a batch resolves at once.
func WithWorkers(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithStrict rejects phrases containing words outside the vocabulary instead
// of skipping them.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// Resolver reads phrases through the chiffre parsers. It is safe for
// concurrent use.
type Resolver struct {
	cache   *expirable.LRU[string, Value]
	workers int
	strict  bool
}

func New(opts ...Option) *Resolver {
	r := &Resolver{workers: 4}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Numeral(ctx context.Context, text string) (chiffre.Decimal, error) {
	v, err := r.Resolve(ctx, KindNumeral, text)
	if err != nil {
		return chiffre.Decimal{}, err
	}
	return v.Number, nil
}

func (r *Resolver) Duration(ctx context.Context, text string) (time.Duration, error) {
	v, err := r.Resolve(ctx, KindDuration, text)
	if err != nil {
		return 0, err
	}
	return v.Duration, nil
}

// Resolve reads text as the given kind.
func (r *Resolver) Resolve(ctx context.Context, kind Kind, text string) (Value, error) {
	if err := ctx.Err(); err != nil {
		return Value{}, err
	}
	key := cacheKey(kind, text)
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			logutil.GetLogger(ctx).Debug("resolve cache hit", zap.String("kind", string(kind)), zap.String("text", text))
			return cached, nil
		}
	}

	v, err := r.resolve(kind, text)
	if err != nil {
		logutil.GetLogger(ctx).Warn("resolve failed",
			zap.String("kind", string(kind)),
			zap.String("text", text),
			zap.Error(err),
		)
		return Value{}, err
	}
	logutil.GetLogger(ctx).Debug("resolved",
		zap.String("kind", string(kind)),
		zap.String("text", text),
		zap.String("canonical", v.Canonical),
		zap.Int("warnings", len(v.Warnings)),
	)
	if r.cache != nil {
		r.cache.Add(key, v)
	}
	return v, nil
}

func (r *Resolver) resolve(kind Kind, text string) (Value, error) {
	opts := chiffre.ParseOptions{Tolerant: !r.strict}
	switch kind {
	case KindNumeral:
		res, err := chiffre.ParseNumeralWithOptions(text, opts)
		if err != nil {
			return Value{}, err
		}
		return Value{
			Kind:      kind,
			Number:    res.Value,
			Canonical: chiffre.CanonicalNumber(res.Value),
			Warnings:  res.Warnings,
		}, nil
	case KindDuration:
		res, err := chiffre.ParseDurationWithOptions(text, opts)
		if err != nil {
			return Value{}, err
		}
		return Value{
			Kind:      kind,
			Duration:  res.Value,
			Shape:     res.Shape,
			Canonical: chiffre.CanonicalDuration(res.Value),
			Warnings:  res.Warnings,
		}, nil
	}
	return Value{}, fmt.Errorf("unknown kind %q", kind)
}

// Batch resolves texts concurrently and returns one Result per input, in
// input order. Per-phrase failures are reported in Result.Err; the returned
// error is set only when ctx ends before the batch completes.
func (r *Resolver) Batch(ctx context.Context, kind Kind, texts []string) ([]Result, error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := r.Resolve(gctx, kind, text)
			results[i] = Result{Text: text, Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("batch interrupted: %w", err)
	}
	logutil.GetLogger(ctx).Debug("batch resolved", zap.String("kind", string(kind)), zap.Int("count", len(texts)))
	return results, nil
}

// CacheLen returns the number of memoized phrases.
func (r *Resolver) CacheLen() int {
	if r.cache == nil {
		return 0
	}
	return r.cache.Len()
}

// cacheKey folds case and surrounding space only; inner spacing can change
// the reading ("1 200" is not "1  200").
func cacheKey(kind Kind, text string) string {
	return string(kind) + "\x00" + strings.ToLower(strings.TrimSpace(text))
}
