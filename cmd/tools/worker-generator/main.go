// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"gigboard/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Description string
	Category    string
	Timeout     string
	Fields      []Field
	Required    []Field
}

// Field is one top-level input property.
type Field struct {
	GoName   string
	JSONName string
	GoType   string
}

// acronyms are rendered fully upper-case in Go names.
var acronyms = map[string]string{"id": "ID", "url": "URL", "arn": "ARN", "html": "HTML"}

func goFieldName(prop string) string {
	var parts []string
	start := 0
	for i := 1; i <= len(prop); i++ {
		if i == len(prop) || (prop[i] >= 'A' && prop[i] <= 'Z') || prop[i] == '_' || prop[i] == '-' {
			part := strings.Trim(prop[start:i], "_-")
			if part != "" {
				parts = append(parts, part)
			}
			start = i
		}
	}
	for i, p := range parts {
		if a, ok := acronyms[strings.ToLower(p)]; ok {
			parts[i] = a
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// goType maps JSON schema types to Go types
func goType(schema map[string]interface{}) string {
	switch schema["type"] {
	case "string":
		return "string"
	case "integer":
		return "int64"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	case "object":
		return "map[string]interface{}"
	default:
		return "interface{}"
	}
}

func buildData(a *registry.Activity) WorkerData {
	data := WorkerData{
		Name:        a.DisplayName,
		PackageName: strings.ReplaceAll(a.ID, "-", ""),
		TaskType:    a.TaskType,
		Description: a.Description,
		Category:    a.Category,
		Timeout:     a.Timeout,
	}
	if data.Timeout == "" {
		data.Timeout = "10s"
	}

	props, _ := a.InputSchema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	required := map[string]bool{}
	if req, ok := a.InputSchema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	for _, name := range names {
		schema, _ := props[name].(map[string]interface{})
		f := Field{GoName: goFieldName(name), JSONName: name, GoType: goType(schema)}
		data.Fields = append(data.Fields, f)
		if required[name] && f.GoType == "string" {
			data.Required = append(data.Required, f)
		}
	}
	return data
}

// render executes a template and gofmts the result when it is Go source.
func render(name, tmplStr string, data WorkerData) ([]byte, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	if !strings.HasSuffix(name, ".go") {
		return buf.Bytes(), nil
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}

func main() {
	activity := flag.String("activity", "", "Activity ID from registry (e.g., save-job-draft)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <id> --output <dir> [--registry <path>] [--force]")
		fmt.Println("\nExample:")
		fmt.Println("  go run ./cmd/tools/worker-generator --activity select-gig")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	var found *registry.Activity
	for i := range reg.Activities {
		if reg.Activities[i].ID == *activity {
			found = &reg.Activities[i]
			break
		}
	}
	if found == nil {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	data := buildData(found)
	workerDir := filepath.Join(*outputDir, strings.ToLower(data.Category), found.ID)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
		path := filepath.Join(workerDir, name)
		if _, err := os.Stat(path); err == nil && !*force {
			fmt.Printf("- Skipped %s (exists)\n", path)
			continue
		}
		out, err := render(name, templates[name], data)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			fmt.Printf("Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("✓ Generated %s\n", path)
	}

	fmt.Printf("\n✅ Worker scaffold generated successfully at: %s\n", workerDir)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  1. Implement execute in handler.go\n")
	fmt.Printf("  2. Extend handler_test.go\n")
	fmt.Printf("  3. Register the worker in cmd/worker-manager/workers.go\n")
	fmt.Printf("  4. Add the worker to configs/config.yaml\n")
}
