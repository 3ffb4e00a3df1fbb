// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount represents the total cardinality of the application configuration schema.
const DefinedFieldsCount = 19

// Source registry.
const (
	SourcesExcluded = "sources.excluded"
)

// Aggregation budget.
const (
	ResolveDeadline      = "resolve.deadline"
	ResolveSourceTimeout = "resolve.source_timeout"
)

// Slug matching.
const (
	SlugMaxDistance = "slug.max_distance"
)

// Metadata resolution - these keys govern the title lookup used before searching a site.
const (
	MetadataTMDBAPIKey   = "metadata.tmdb_api_key"
	MetadataTMDBBaseURL  = "metadata.tmdb_base_url"
	MetadataIMDbFallback = "metadata.imdb_fallback"
	MetadataCacheTTL     = "metadata.cache_ttl"
)

// Outbound HTTP.
const (
	NetworkTimeout        = "network.timeout"
	NetworkCacheTTL       = "network.cache_ttl"
	NetworkRatePerHost    = "network.rate_per_host"
	NetworkTLSFingerprint = "network.tls_fingerprint"
	NetworkUserAgent      = "network.user_agent"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
