// Package shader prepares GLSL sources and uniform values for the engine.
// Sources are embedded; the engine compiles them with raylib.
package shader

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"ambient-portfolio/internal/utils"
)

//go:embed glsl
var embedded embed.FS

// Sources resolves shader files: an override directory first, then the
// embedded set.
type Sources struct {
	Dir string
}

func (s Sources) read(name string) ([]byte, error) {
	if s.Dir != "" {
		if data, err := os.ReadFile(filepath.Join(s.Dir, name)); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(embedded, path.Join("glsl", name))
}

// PreprocessShader prepends the version line, combo defines and the
// compatibility macros, then inlines includes. common.h is always included
// once.
func (s Sources) PreprocessShader(source string, combos map[string]int, name string) string {
	var sb strings.Builder
	sb.WriteString("#version 120\n")

	keys := make([]string, 0, len(combos))
	for k := range combos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "#define %s %d\n", k, combos[k])
	}

	sb.WriteString("#define frac fract\n")
	sb.WriteString("#define lerp mix\n")
	sb.WriteString("#define mul(a, b) ((b) * (a))\n")
	sb.WriteString("#define saturate(x) clamp(x, 0.0, 1.0)\n")

	included := make(map[string]bool)
	if !strings.Contains(source, "#include \"common.h\"") {
		if data, err := s.read("common.h"); err == nil {
			sb.WriteString(strings.Trim(string(data), "\ufeff"))
			sb.WriteString("\n")
			included["common.h"] = true
		}
	}

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#include \"") && strings.HasSuffix(trimmed, "\"") {
			file := strings.TrimSpace(trimmed[len("#include \"") : len(trimmed)-1])
			if included[file] {
				continue
			}
			if data, err := s.read(file); err == nil {
				sb.WriteString(strings.Trim(string(data), "\ufeff"))
				sb.WriteString("\n")
				included[file] = true
				continue
			}
			utils.Warn("Shader: %s could not resolve include %s", name, file)
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// DefaultCombos reads the `// [COMBO] {...}` annotations of a source and
// fills in defaults for combos the caller did not set.
func DefaultCombos(source string, combos map[string]int) map[string]int {
	out := make(map[string]int, len(combos))
	for k, v := range combos {
		out[k] = v
	}
	for _, line := range strings.Split(source, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "// [COMBO]")
		if !ok {
			continue
		}
		var combo struct {
			Combo   string `json:"combo"`
			Default int    `json:"default"`
		}
		if err := json.Unmarshal([]byte(strings.TrimSpace(rest)), &combo); err != nil {
			utils.Debug("Shader: ignoring malformed combo line %q: %v", line, err)
			continue
		}
		if _, set := out[combo.Combo]; !set && combo.Combo != "" {
			out[combo.Combo] = combo.Default
		}
	}
	return out
}

// Load returns the preprocessed vertex and fragment source for name. A
// missing vertex file falls back to default.vert.
func (s Sources) Load(name string, combos map[string]int) (vert, frag string, err error) {
	fdata, err := s.read(name + ".frag")
	if err != nil {
		return "", "", fmt.Errorf("shader %s: %w", name, err)
	}
	vdata, verr := s.read(name + ".vert")
	if verr != nil {
		if vdata, err = s.read("default.vert"); err != nil {
			return "", "", fmt.Errorf("shader %s: default vertex: %w", name, err)
		}
	}
	combos = DefaultCombos(string(fdata), combos)
	utils.Debug("Shader: preprocessing %s (combos: %v)", name, combos)
	return s.PreprocessShader(string(vdata), combos, name), s.PreprocessShader(string(fdata), combos, name), nil
}
