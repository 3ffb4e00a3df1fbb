package version

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/fluxstream/fluxstream/constant"
	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/network"
	"github.com/fluxstream/fluxstream/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

const releasesAPI = "https://api.github.com/repos/" + constant.Repository + "/releases/latest"

func cacher() *gache.Cache[string] {
	return gache.New[string](&gache.Options{
		Path:       filepath.Join(where.Cache(), "version.json"),
		Lifetime:   time.Hour * 24 * 2,
		FileSystem: &filesystem.GacheFs{},
	})
}

// Latest returns the newest released version without the "v" prefix.
// The answer is cached for two days.
func Latest(ctx context.Context, fetcher network.Fetcher) (string, error) {
	versions := cacher()

	ver, expired, err := versions.Get()
	if err == nil && !expired && ver != "" {
		return ver, nil
	}

	body, err := fetcher.Text(ctx, lo.Must(url.Parse(releasesAPI)),
		network.WithHeader("Accept", "application/vnd.github+json"),
		network.WithoutCache(),
	)
	if err != nil {
		return "", err
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal([]byte(body), &release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = versions.Set(ver)
	return ver, nil
}
