// Package provider lists the available sources and builds the registry the
// aggregator fans out to.
package provider

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/fluxstream/fluxstream/auth"
	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/key"
	"github.com/fluxstream/fluxstream/log"
	"github.com/fluxstream/fluxstream/metadata"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/provider/custom"
	"github.com/fluxstream/fluxstream/provider/fullfightreplays"
	"github.com/fluxstream/fluxstream/provider/watchmmafull"
	"github.com/fluxstream/fluxstream/source"
	"github.com/fluxstream/fluxstream/util"
	"github.com/fluxstream/fluxstream/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Deps are the collaborators every source is built with.
type Deps struct {
	Fetcher     network.Fetcher
	Titles      source.Titles
	Locale      string
	MaxDistance mo.Option[int]
}

// DepsFromConfig wires the shared fetcher and title strategies from the configuration.
// TMDB is used when an API key is configured or stored in the keyring, the IMDb
// page when metadata.imdb_fallback is set.
func DepsFromConfig() Deps {
	fetcher := network.FromConfig()

	deps := Deps{
		Fetcher: fetcher,
		Locale:  "en",
	}

	if limit := viper.GetInt(key.SlugMaxDistance); limit >= 0 {
		deps.MaxDistance = mo.Some(limit)
	}

	apiKey := viper.GetString(key.MetadataTMDBAPIKey)
	if apiKey == "" {
		stored, err := auth.GetAPIKey()
		if err != nil {
			log.Warnf("keyring: %v", err)
		}
		apiKey = stored
	}

	if apiKey != "" {
		tmdb, err := metadata.NewTMDB(
			fetcher,
			apiKey,
			metadata.WithBaseURL(viper.GetString(key.MetadataTMDBBaseURL)),
			metadata.WithCache(where.Metadata(), viper.GetDuration(key.MetadataCacheTTL)),
		)
		if err != nil {
			log.Warnf("tmdb: %v", err)
		} else {
			deps.Titles = append(deps.Titles, tmdb)
		}
	}

	if viper.GetBool(key.MetadataIMDbFallback) {
		deps.Titles = append(deps.Titles, metadata.NewIMDbPage(fetcher))
	}

	return deps
}

// Provider describes a source that can be built on demand.
type Provider struct {
	ID           string
	Name         string
	IsCustom     bool
	CreateSource func(Deps) (source.Source, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns the compiled-in providers in registry order.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   fullfightreplays.ID,
			Name: "FullFightReplays",
			CreateSource: func(d Deps) (source.Source, error) {
				return fullfightreplays.New(d.Fetcher, d.Titles,
					fullfightreplays.WithLocale(d.Locale),
					fullfightreplays.WithMaxDistance(d.MaxDistance),
				), nil
			},
		},
		{
			ID:   watchmmafull.ID,
			Name: "WatchMMAFull",
			CreateSource: func(d Deps) (source.Source, error) {
				return watchmmafull.New(d.Fetcher, d.Titles,
					watchmmafull.WithLocale(d.Locale),
					watchmmafull.WithMaxDistance(d.MaxDistance),
				), nil
			},
		},
	}
}

// Customs returns the Lua providers found in the sources directory, sorted by file name.
func Customs() []*Provider {
	providers, err := CustomProviders()
	if err != nil {
		log.Warnf("custom sources: %v", err)
	}
	return providers
}

func CustomProviders() ([]*Provider, error) {
	files, err := filesystem.API().ReadDir(where.Sources())
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	var providers []*Provider
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != custom.Extension {
			continue
		}

		path := filepath.Join(where.Sources(), f.Name())
		name := util.FileStem(f.Name())

		providers = append(providers, &Provider{
			ID:       custom.IDFromName(name),
			Name:     name,
			IsCustom: true,
			CreateSource: func(d Deps) (source.Source, error) {
				return custom.Load(path, custom.Options{
					Fetcher:     d.Fetcher,
					Titles:      d.Titles,
					Locale:      d.Locale,
					MaxDistance: d.MaxDistance,
				})
			},
		})
	}

	return providers, nil
}

// All returns builtins followed by custom providers. A custom provider whose id
// collides with a builtin is dropped.
func All() []*Provider {
	builtins := Builtins()
	taken := lo.SliceToMap(builtins, func(p *Provider) (string, struct{}) {
		return p.ID, struct{}{}
	})

	customs := lo.Filter(Customs(), func(p *Provider, _ int) bool {
		if _, ok := taken[p.ID]; ok {
			log.Warnf("custom source %s shadows a builtin and is ignored", p.Name)
			return false
		}
		return true
	})

	return append(builtins, customs...)
}

// Get finds a provider by id or name.
func Get(idOrName string) (*Provider, bool) {
	return lo.Find(All(), func(p *Provider) bool {
		return p.ID == idOrName || p.Name == idOrName
	})
}

// Find returns the providers whose id or name fuzzily matches query.
func Find(providers []*Provider, query string) []*Provider {
	if query == "" {
		return providers
	}

	return lo.Filter(providers, func(p *Provider, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, p.ID) || fuzzy.MatchNormalizedFold(query, p.Name)
	})
}

// Registry builds every provider not listed in excluded, in registry order.
// Providers that fail to build are logged and skipped.
func Registry(deps Deps, excluded []string) []source.Source {
	return build(All(), deps, excluded)
}

func build(providers []*Provider, deps Deps, excluded []string) []source.Source {
	skip := lo.SliceToMap(excluded, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	var sources []source.Source
	for _, p := range providers {
		if _, ok := skip[p.ID]; ok {
			log.With("source", p.ID).Debugf("excluded")
			continue
		}

		src, err := p.CreateSource(deps)
		if err != nil {
			log.With("source", p.ID).Errorf("create: %v", err)
			continue
		}

		sources = append(sources, src)
	}

	return sources
}

// ParseExcluded splits a comma separated exclusion list, trimming blanks.
func ParseExcluded(raw string) []string {
	return lo.Uniq(lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
}
