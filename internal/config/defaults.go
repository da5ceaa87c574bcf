package config

// Built-in defaults for the numbered image range.
const (
	DefaultImagesStart   = 1
	DefaultImagesEnd     = 10
	DefaultImagesPadding = 0
)

// DefaultSummaryLength is the rune limit for synthesized card summaries.
const DefaultSummaryLength = 140

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InfoBasePath:        "Info",
		InfoPattern:         "*.txt",
		SiteBranch:          "main",
		ImagesStart:         DefaultImagesStart,
		ImagesEnd:           DefaultImagesEnd,
		ImagesNumberPadding: DefaultImagesPadding,
		ImagesRepoBranch:    "main",
		APIBaseURL:          "https://api.github.com",
		SummaryLength:       DefaultSummaryLength,
		MaxConcurrency:      6,
	}
}
