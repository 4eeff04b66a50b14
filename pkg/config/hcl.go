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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	include     = concat(defaults.include, ["**/*.enzyme.js"])
//	disable     = ["set-props"]
//	rule "wrapper-update" {
//	  pattern = "(\\w+)\\.update\\(\\)"
//	  replace = "// $1.update() is not needed"
//	}
//
// HCL treats ${...} as interpolation, so named groups in replace need $${name}.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Define HCL schema
	type hclConfig struct {
		Include     []string `hcl:"include,optional"`
		Exclude     []string `hcl:"exclude,optional"`
		Concurrency int      `hcl:"concurrency,optional"`
		Disable     []string `hcl:"disable,optional"`
		Rules       []struct {
			Name        string `hcl:"name,label"`
			Pattern     string `hcl:"pattern"`
			Replace     string `hcl:"replace,optional"`
			Description string `hcl:"description,optional"`
		} `hcl:"rule,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Include:     hclCfg.Include,
		Exclude:     hclCfg.Exclude,
		Concurrency: hclCfg.Concurrency,
		Disable:     hclCfg.Disable,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, CustomRule{
			Name:        r.Name,
			Pattern:     r.Pattern,
			Replace:     r.Replace,
			Description: r.Description,
		})
	}

	return cfg, nil
}

// functions available to HCL config expressions
var functions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
}

// evalContext exposes the built-in defaults to HCL expressions as `defaults`
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"include":     stringList(DefaultInclude()),
				"exclude":     stringList(DefaultExclude()),
				"concurrency": cty.NumberIntVal(DefaultConcurrency),
			}),
		},
		Functions: functions,
	}
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
