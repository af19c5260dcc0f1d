package capability

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var decimalInteger = regexp.MustCompile(`^[+-]?[0-9]+$`)

// validateParameters checks a descriptor's parameter declarations at
// registration time.
func validateParameters(d *Descriptor) error {
	seen := make(map[string]bool, len(d.Parameters))
	for _, p := range d.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%s %q: parameter with empty name", d.Kind, d.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%s %q: parameter %q declared twice", d.Kind, d.Name, p.Name)
		}
		seen[p.Name] = true

		switch p.Type {
		case TypeString, TypeInteger, TypeBoolean:
		default:
			return fmt.Errorf("%s %q: parameter %q has unsupported type %q", d.Kind, d.Name, p.Name, p.Type)
		}
		if len(p.Enum) > 0 && p.Type != TypeString {
			return fmt.Errorf("%s %q: parameter %q: enum is only allowed on string parameters", d.Kind, d.Name, p.Name)
		}
		if p.Default != nil {
			if _, err := coerce(p, p.Default); err != nil {
				return fmt.Errorf("%s %q: parameter %q has invalid default: %w", d.Kind, d.Name, p.Name, err)
			}
		}
	}
	return nil
}

// bindArguments validates raw against the descriptor's schema and returns
// coerced Args. Missing optional parameters take their declared default.
func bindArguments(d *Descriptor, raw map[string]interface{}) (Args, error) {
	values := make(map[string]interface{}, len(d.Parameters))

	// Unknown names are reported in sorted order so the message is stable.
	var unknown []string
	for name := range raw {
		if _, ok := d.Parameter(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Args{}, &InvalidArgumentError{
			Capability: d.Name,
			Argument:   unknown[0],
			Reason:     fmt.Sprintf("unknown parameter (accepted: %s)", strings.Join(parameterNames(d), ", ")),
		}
	}

	for _, p := range d.Parameters {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required {
				return Args{}, &InvalidArgumentError{Capability: d.Name, Argument: p.Name, Reason: "required parameter is missing"}
			}
			if p.Default != nil {
				def, _ := coerce(p, p.Default)
				values[p.Name] = def
			}
			continue
		}

		coerced, err := coerce(p, v)
		if err != nil {
			return Args{}, &InvalidArgumentError{Capability: d.Name, Argument: p.Name, Reason: err.Error()}
		}
		values[p.Name] = coerced
	}

	return Args{values: values}, nil
}

// coerce converts v to the Go type of p: string, int64 or bool.
func coerce(p Parameter, v interface{}) (interface{}, error) {
	switch p.Type {
	case TypeInteger:
		return coerceInteger(v)
	case TypeBoolean:
		return coerceBoolean(v)
	default:
		s, err := coerceString(v)
		if err != nil {
			return nil, err
		}
		if p.Required && s == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return nil, fmt.Errorf("%q is not one of %s", s, strings.Join(p.Enum, ", "))
		}
		return s, nil
	}
}

func coerceInteger(v interface{}) (int64, error) {
	switch n := v.(type) {
	case bool:
		return 0, fmt.Errorf("expected integer, got boolean")
	case float64:
		return floatToInteger(n)
	case float32:
		return floatToInteger(float64(n))
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	}
	i, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("expected integer: %w", err)
	}
	return i, nil
}

// floatToInteger accepts whole numbers that fit in an int64. JSON numbers
// arrive as float64, so this is the usual path for MCP clients.
func floatToInteger(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	// -2^63 is exact as a float64; 2^63 is the first value past MaxInt64.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("expected integer, got %v (out of range)", f)
	}
	return int64(f), nil
}

// parseDecimal accepts base-10 integers only, so "010" is ten and "0x1f"
// is rejected.
func parseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !decimalInteger.MatchString(s) {
		return 0, fmt.Errorf("expected integer, got %q", s)
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected integer, got %q", s)
	}
	return i, nil
}

func coerceBoolean(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func coerceString(v interface{}) (string, error) {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return "", fmt.Errorf("expected string, got %T", v)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("expected string: %w", err)
	}
	return s, nil
}

func parameterNames(d *Descriptor) []string {
	names := make([]string, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return []string{"none"}
	}
	return names
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
