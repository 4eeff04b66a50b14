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

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		args        []string
		wantOut     []string
		wantMissing []string
		errContains string
	}{
		{
			name:    "version",
			args:    []string{"version"},
			wantOut: []string{"🚀 rtlmigrate version info:", "Go:"},
		},
		{
			name:    "version_ignores_broken_config",
			config:  `{"disable": ["nope"]}`,
			args:    []string{"version"},
			wantOut: []string{"rtlmigrate version info"},
		},
		{
			name:        "rules_with_config",
			config:      `{"disable": ["state-access"]}`,
			args:        []string{"rules"},
			wantOut:     []string{"shallow-render"},
			wantMissing: []string{"state-access"},
		},
		{
			name:        "broken_config",
			config:      `{"disable": ["nope"]}`,
			args:        []string{"rules"},
			errContains: "loading config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.config != "" {
				path := filepath.Join(t.TempDir(), "rtlmigrate.json")
				require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644))
				args = append(args, "--config", path)
			}

			out := &bytes.Buffer{}
			cmd := newRootCmd()
			cmd.SetOut(out)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(args)

			err := cmd.ExecuteContext(context.Background())
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)

			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			for _, missing := range tt.wantMissing {
				assert.NotContains(t, out.String(), missing)
			}
		})
	}
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}
