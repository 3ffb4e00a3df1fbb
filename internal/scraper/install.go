package scraper

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"net/url"

	"github.com/fluxstream/fluxstream/filesystem"
	"github.com/fluxstream/fluxstream/network"
	"github.com/yuin/gopher-lua/parse"
)

// Install downloads the script at remote into localPath.
// The file is replaced atomically and only when its content changed.
// Scripts that do not parse are rejected before touching localPath.
func Install(ctx context.Context, fetcher network.Fetcher, remote *url.URL, localPath string) (changed bool, err error) {
	body, err := fetcher.Text(ctx, remote, network.WithoutCache())
	if err != nil {
		return false, err
	}

	if _, err := parse.Parse(bytes.NewReader([]byte(body)), remote.String()); err != nil {
		return false, fmt.Errorf("%s is not a valid lua script: %w", remote, err)
	}

	if local, err := filesystem.API().ReadFile(localPath); err == nil {
		if sha256.Sum256(local) == sha256.Sum256([]byte(body)) {
			return false, nil
		}
	}

	if err := filesystem.WriteAtomic(localPath, []byte(body)); err != nil {
		return false, err
	}

	return true, nil
}
