package shader

import (
	"sort"
	"strconv"
	"strings"
)

// ConstantShaderValues maps uniform names to values. A value is a number, a
// space separated vector string, or an object with a "value" field.
type ConstantShaderValues map[string]interface{}

func (c ConstantShaderValues) GetFloat(key string) float64 {
	val, ok := c[key]
	if !ok {
		val, ok = c[strings.ToLower(key)]
		if !ok {
			return 0
		}
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case map[string]interface{}:
		if f, ok := v["value"].(float64); ok {
			return f
		}
	}
	return 0
}

type UniformType int

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
)

// Uniform is one constant ready to upload. Names lists the candidate
// uniform names in lookup order.
type Uniform struct {
	Key    string
	Names  []string
	Type   UniformType
	Values []float32
}

// UniformNames returns the names a constant may be declared under.
func UniformNames(key string) []string {
	names := []string{"g_" + key, key}
	if key != "" {
		upper := strings.ToUpper(key[:1]) + key[1:]
		if upper != key {
			names = append(names, "g_"+upper)
		}
	}
	return names
}

// ParseUniforms converts constants into uniforms, sorted by key. Values
// that do not parse are skipped.
func ParseUniforms(constants ConstantShaderValues) []Uniform {
	keys := make([]string, 0, len(constants))
	for k := range constants {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Uniform
	for _, k := range keys {
		floats, ok := parseValue(constants[k])
		if !ok {
			continue
		}
		out = append(out, Uniform{Key: k, Names: UniformNames(k), Type: UniformType(len(floats) - 1), Values: floats})
	}
	return out
}

func parseValue(v interface{}) ([]float32, bool) {
	switch val := v.(type) {
	case float64:
		return []float32{float32(val)}, true
	case float32:
		return []float32{val}, true
	case int:
		return []float32{float32(val)}, true
	case string:
		parts := strings.Fields(val)
		if len(parts) == 0 || len(parts) > 4 {
			return nil, false
		}
		floats := make([]float32, len(parts))
		for i, p := range parts {
			f, err := strconv.ParseFloat(p, 32)
			if err != nil {
				return nil, false
			}
			floats[i] = float32(f)
		}
		return floats, true
	case map[string]interface{}:
		if inner, ok := val["value"]; ok {
			return parseValue(inner)
		}
	}
	return nil, false
}
