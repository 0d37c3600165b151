// Package batch reads HCL property files: many named LTL formulas per file.
//
//	property "response" {
//	  formula     = "G (${var.req} -> F grant)"
//	  description = "every request is eventually granted"
//	  max_states  = 1000
//	}
//
// Attribute values may interpolate caller-supplied variables through the
// "var" object; block labels are literal.
package batch

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/ltl2nba/ltl"
)

var (
	// ErrDuplicateProperty is returned when two blocks share a name.
	ErrDuplicateProperty = errors.New("batch: duplicate property")

	// ErrInvalidName is returned for names unusable as output file stems.
	ErrInvalidName = errors.New("batch: invalid property name")

	// ErrNoProperties is returned for a file without property blocks.
	ErrNoProperties = errors.New("batch: no properties")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// Property is one decoded property block.
type Property struct {
	Name        string
	Description string
	Source      string       // formula text as written, after interpolation
	Formula     *ltl.Formula // parsed, not normalized
	MaxStates   int          // 0 when the block leaves it unset
}

type hclFile struct {
	Properties []*hclProperty `hcl:"property,block"`
}

type hclProperty struct {
	Name        string `hcl:"name,label"`
	Formula     string `hcl:"formula"`
	Description string `hcl:"description,optional"`
	MaxStates   *int   `hcl:"max_states,optional"`
}

// Load parses the property file at path.
func Load(path string, vars map[string]string) ([]Property, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("batch: failed to parse HCL file %s: %w", path, diags)
	}
	return decode(file, path, vars)
}

// Decode parses src as a property file; filename is used in diagnostics.
func Decode(src []byte, filename string, vars map[string]string) ([]Property, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("batch: failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file, filename, vars)
}

func decode(file *hcl.File, filename string, vars map[string]string) ([]Property, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("batch: failed to decode HCL file %s: %w", filename, diags)
	}
	if len(parsed.Properties) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoProperties, filename)
	}

	seen := make(map[string]bool, len(parsed.Properties))
	out := make([]Property, 0, len(parsed.Properties))
	for _, p := range parsed.Properties {
		if !validName.MatchString(p.Name) {
			return nil, fmt.Errorf("%w: %q in %s", ErrInvalidName, p.Name, filename)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateProperty, p.Name, filename)
		}
		seen[p.Name] = true

		f, err := ltl.Parse(p.Formula)
		if err != nil {
			return nil, fmt.Errorf("batch: property %q in %s: %w", p.Name, filename, err)
		}
		prop := Property{
			Name:        p.Name,
			Description: p.Description,
			Source:      p.Formula,
			Formula:     f,
		}
		if p.MaxStates != nil {
			if *p.MaxStates < 0 {
				return nil, fmt.Errorf("batch: property %q in %s: max_states %d is negative", p.Name, filename, *p.MaxStates)
			}
			prop.MaxStates = *p.MaxStates
		}
		out = append(out, prop)
	}
	return out, nil
}

// evalContext exposes vars as the "var" object.
func evalContext(vars map[string]string) *hcl.EvalContext {
	obj := cty.EmptyObjectVal
	if len(vars) > 0 {
		m := make(map[string]cty.Value, len(vars))
		for k, v := range vars {
			m[k] = cty.StringVal(v)
		}
		obj = cty.ObjectVal(m)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": obj},
	}
}
