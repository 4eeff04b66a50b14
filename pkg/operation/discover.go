// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discover returns the files under root matching include and not exclude.
// A root that is a regular file is returned as is, without glob filtering.
func Discover(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var files []string

	for _, pattern := range include {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("discovering files: %w", err)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("matching %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			if excluded(ctx, match, exclude) {
				logger.Debug().Str("path", match).Msg("excluded")
				continue
			}
			files = append(files, filepath.Join(root, filepath.FromSlash(match)))
		}
	}

	sort.Strings(files)
	logger.Debug().Str("root", root).Int("files", len(files)).Msg("discovered files")
	return files, nil
}

// DiscoverAll runs Discover for every root and merges the results
func DiscoverAll(ctx context.Context, roots, include, exclude []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, root := range roots {
		found, err := Discover(ctx, root, include, exclude)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func excluded(ctx context.Context, path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
