package config

import "path"

// Config is the catalog configuration document, normally config.json.
// Keys keep the camelCase names used by the published document format.
type Config struct {
	LocalInfo     bool   `yaml:"localInfo" koanf:"localInfo"`
	InfoBasePath  string `yaml:"infoBasePath" koanf:"infoBasePath"`
	InfoIndexPath string `yaml:"infoIndexPath" koanf:"infoIndexPath"`
	InfoPattern   string `yaml:"infoPattern" koanf:"infoPattern"`

	SiteRepoOwner string `yaml:"siteRepoOwner" koanf:"siteRepoOwner"`
	SiteRepoName  string `yaml:"siteRepoName" koanf:"siteRepoName"`
	SiteBranch    string `yaml:"siteBranch" koanf:"siteBranch"`

	ImagesIndexURL        string `yaml:"imagesIndexUrl" koanf:"imagesIndexUrl"`
	ImagesRawBaseURL      string `yaml:"imagesRawBaseUrl" koanf:"imagesRawBaseUrl"`
	ImagesFilenamePattern string `yaml:"imagesFilenamePattern" koanf:"imagesFilenamePattern"`
	ImagesStart           int    `yaml:"imagesStart" koanf:"imagesStart"`
	ImagesEnd             int    `yaml:"imagesEnd" koanf:"imagesEnd"`
	ImagesNumberPadding   int    `yaml:"imagesNumberPadding" koanf:"imagesNumberPadding"`

	ImagesRepoOwner    string `yaml:"imagesRepoOwner" koanf:"imagesRepoOwner"`
	ImagesRepoName     string `yaml:"imagesRepoName" koanf:"imagesRepoName"`
	ImagesRepoBranch   string `yaml:"imagesRepoBranch" koanf:"imagesRepoBranch"`
	ImagesFolderPrefix string `yaml:"imagesFolderPrefix" koanf:"imagesFolderPrefix"`

	APIBaseURL         string `yaml:"apiBaseUrl" koanf:"apiBaseUrl"`
	Token              string `yaml:"-" koanf:"token"`
	SummaryLength      int    `yaml:"summaryLength" koanf:"summaryLength"`
	MaxConcurrency     int    `yaml:"maxConcurrency" koanf:"maxConcurrency"`
	HTTPTimeoutSeconds int    `yaml:"httpTimeoutSeconds" koanf:"httpTimeoutSeconds"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `yaml:"-" koanf:"-"`
}

// IndexPath returns the local index location, derived from InfoBasePath
// when InfoIndexPath is not set.
func (c *Config) IndexPath() string {
	if c.InfoIndexPath != "" {
		return c.InfoIndexPath
	}
	return path.Join(c.InfoBasePath, "index.json")
}

// HasSiteRepo reports whether remote metadata coordinates are configured.
func (c *Config) HasSiteRepo() bool {
	return c.SiteRepoOwner != "" && c.SiteRepoName != ""
}

// HasImagesRepo reports whether the images repository is configured.
func (c *Config) HasImagesRepo() bool {
	return c.ImagesRepoOwner != "" && c.ImagesRepoName != ""
}

// SourceLabel names where the catalog comes from: "<infoBasePath> (local)"
// in local mode, "owner/name" for a configured site repository, and empty
// otherwise.
func (c *Config) SourceLabel() string {
	switch {
	case c.LocalInfo:
		base := c.InfoBasePath
		if base == "" {
			base = "Info"
		}
		return base + " (local)"
	case c.HasSiteRepo():
		return c.SiteRepoOwner + "/" + c.SiteRepoName
	default:
		return ""
	}
}
