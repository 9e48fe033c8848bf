package nativelang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"streamsift/internal/identification/arr"
	"streamsift/internal/identification/tmdb"
	"streamsift/internal/langcache"
	"streamsift/internal/language"
	"streamsift/internal/logging"
)

// ErrUnresolved reports that every strategy came up empty.
var ErrUnresolved = errors.New("native language unresolved")

// Resolution is a strategy's answer.
type Resolution struct {
	Language string
	Source   string
	IMDbID   string
	Title    string
}

// Strategy is one step of the chain. It returns a zero Resolution with a nil
// error when it has nothing to offer.
type Strategy struct {
	Name    string
	Resolve func(ctx context.Context, identity string) (Resolution, error)
}

// Cataloger is the subset of arr.Client used by catalog strategies.
type Cataloger interface {
	Kind() arr.Kind
	Parse(ctx context.Context, title string) (*arr.ParseResult, error)
}

// Resolver tries strategies in order.
type Resolver struct {
	strategies []Strategy
	cache      *langcache.Cache
	logger     *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache enables cache lookups before the chain and stores after a success.
func WithCache(cache *langcache.Cache) Option {
	return func(r *Resolver) { r.cache = cache }
}

// New builds a resolver from explicit strategies.
func New(logger *slog.Logger, strategies []Strategy, opts ...Option) *Resolver {
	r := &Resolver{
		strategies: strategies,
		logger:     logging.NewComponentLogger(logger, "nativelang"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strategies returns the strategy names in order.
func (r *Resolver) Strategies() []string {
	names := make([]string, 0, len(r.strategies))
	for _, s := range r.strategies {
		names = append(names, s.Name)
	}
	return names
}

// Resolve returns the two-letter native language for identity.
func (r *Resolver) Resolve(ctx context.Context, identity string) (string, error) {
	res, err := r.ResolveDetailed(ctx, identity)
	if err != nil {
		return "", err
	}
	return res.Language, nil
}

// ResolveDetailed is Resolve with provenance.
func (r *Resolver) ResolveDetailed(ctx context.Context, identity string) (Resolution, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return Resolution{}, fmt.Errorf("%w: empty identity", ErrUnresolved)
	}
	logger := r.logger.With(logging.String("identity", identity))

	if entry, ok, err := r.cache.Lookup(ctx, identity); err != nil {
		logging.WarnWithContext(logger, "language cache lookup failed", "langcache_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the cache database if this persists"),
			logging.String(logging.FieldImpact, "falling back to network lookups"))
	} else if ok {
		logger.Debug("native language from cache", logging.String("language", entry.Language))
		return Resolution{Language: entry.Language, Source: "cache", IMDbID: entry.IMDbID, Title: entry.Title}, nil
	}

	for _, strategy := range r.strategies {
		if err := ctx.Err(); err != nil {
			return Resolution{}, err
		}
		res, err := strategy.Resolve(ctx, identity)
		if err != nil {
			logging.WarnWithContext(logger, strategy.Name+" lookup failed", "language_lookup_failed",
				logging.String("strategy", strategy.Name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check "+strategy.Name+" url and api key"),
				logging.String(logging.FieldImpact, "trying next language source"))
			continue
		}
		code := language.NormalizeTMDB(res.Language)
		if code == "" {
			logger.Debug("strategy yielded nothing", logging.String("strategy", strategy.Name))
			continue
		}
		res.Language = code
		if res.Source == "" {
			res.Source = strategy.Name
		}
		logger.Info("native language resolved",
			logging.Args(append(logging.DecisionAttrs("native_language", code, strategy.Name),
				logging.String("imdb_id", res.IMDbID))...)...)
		r.remember(ctx, logger, identity, res)
		return res, nil
	}
	return Resolution{}, fmt.Errorf("%w: %s", ErrUnresolved, identity)
}

func (r *Resolver) remember(ctx context.Context, logger *slog.Logger, identity string, res Resolution) {
	if r.cache == nil {
		return
	}
	err := r.cache.Store(ctx, langcache.Entry{
		Identity: identity,
		Language: res.Language,
		Source:   res.Source,
		IMDbID:   res.IMDbID,
		Title:    res.Title,
	})
	if err != nil {
		logging.WarnWithContext(logger, "language cache store failed", "langcache_store_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "next run repeats network lookups"))
	}
}

// CatalogStrategy asks a Radarr or Sonarr instance for the identity's library
// item. Radarr's original language name is used directly when it maps to a
// known language; otherwise the IMDB id is looked up on TMDB.
func CatalogStrategy(catalog Cataloger, finder tmdb.Finder, logger *slog.Logger) Strategy {
	name := string(catalog.Kind())
	return Strategy{
		Name: name,
		Resolve: func(ctx context.Context, identity string) (Resolution, error) {
			parsed, err := catalog.Parse(ctx, identity)
			if errors.Is(err, arr.ErrNotMatched) {
				return Resolution{}, nil
			}
			if err != nil {
				return Resolution{}, err
			}
			if parsed.IMDbID == "" {
				return Resolution{}, nil
			}
			if logger != nil {
				logger.Info("grabbed imdb id", logging.String("source", name), logging.String("imdb_id", parsed.IMDbID))
			}
			res := Resolution{Source: name, IMDbID: parsed.IMDbID, Title: parsed.Title}
			if code := language.FromName(parsed.OriginalLanguage); code != "" {
				res.Language = code
				return res, nil
			}
			if finder == nil {
				return Resolution{}, nil
			}
			code, match, err := tmdb.OriginalLanguage(ctx, finder, parsed.IMDbID)
			if errors.Is(err, tmdb.ErrNoMatch) {
				return Resolution{}, nil
			}
			if err != nil {
				return Resolution{}, err
			}
			res.Language = code
			if res.Title == "" {
				res.Title = match.DisplayTitle()
			}
			return res, nil
		},
	}
}

// TMDBStrategy looks up an IMDB id embedded in the identity itself. Identities
// without one yield nothing and cost no request.
func TMDBStrategy(finder tmdb.Finder) Strategy {
	return Strategy{
		Name: "tmdb",
		Resolve: func(ctx context.Context, identity string) (Resolution, error) {
			id := tmdb.ExtractIMDbID(identity)
			if id == "" {
				return Resolution{}, nil
			}
			code, match, err := tmdb.OriginalLanguage(ctx, finder, id)
			if errors.Is(err, tmdb.ErrNoMatch) {
				return Resolution{}, nil
			}
			if err != nil {
				return Resolution{}, err
			}
			return Resolution{Language: code, IMDbID: id, Title: match.DisplayTitle()}, nil
		},
	}
}
