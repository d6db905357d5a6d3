// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"jobmatch-workers/pkg/registry"
)

// WorkerData feeds the scaffold templates.
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Description  string
	Category     string
	Timeout      string
	InputFields  []Field
	OutputFields []Field
	Required     []Field
	ErrorCodes   []string
}

// Field is one top-level schema property rendered as a Go struct field.
type Field struct {
	GoName   string
	JSONName string
	GoType   string
	Optional bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("worker-generator", flag.ContinueOnError)
	fs.SetOutput(out)
	taskType := fs.String("taskType", "", "Task type from the registry (e.g. calculate-match-score)")
	outputDir := fs.String("output", "./internal/workers/", "Root directory for generated workers")
	registryPath := fs.String("registry", "", "Registry JSON file; the built-in registry is used when empty")
	force := fs.Bool("force", false, "Overwrite existing files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *taskType == "" {
		fmt.Fprintln(out, "Usage: worker-generator -taskType <type> [-output <dir>] [-registry <path>] [-force]")
		return fmt.Errorf("taskType is required")
	}

	reg := registry.Builtin()
	if *registryPath != "" {
		loaded, err := registry.LoadRegistry(*registryPath)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
		reg = loaded
	}

	activity, ok := reg.Find(*taskType)
	if !ok {
		return fmt.Errorf("task type %q not found in registry", *taskType)
	}

	data, err := newWorkerData(activity)
	if err != nil {
		return err
	}

	workerDir := filepath.Join(*outputDir, strings.ToLower(activity.Category), activity.ID)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", workerDir, err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(workerDir, name)
		if !*force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, use -force to overwrite", path)
			}
		}
		if err := render(path, templates[name], data); err != nil {
			return err
		}
		fmt.Fprintf(out, "Generated %s\n", path)
	}

	fmt.Fprintf(out, "\nWorker scaffold for %s generated at %s\n", activity.TaskType, workerDir)
	fmt.Fprintln(out, "Next: implement Execute, then register the handler in cmd/worker-manager/wiring.go")
	return nil
}

func newWorkerData(a *registry.Activity) (*WorkerData, error) {
	timeout := 10 * time.Second
	if a.Timeout != "" {
		d, err := time.ParseDuration(a.Timeout)
		if err != nil {
			return nil, fmt.Errorf("activity %s: invalid timeout %q", a.ID, a.Timeout)
		}
		timeout = d
	}

	input := schemaFields(a.InputSchema)
	data := &WorkerData{
		Name:         a.DisplayName,
		PackageName:  strings.ReplaceAll(a.ID, "-", ""),
		TaskType:     a.TaskType,
		Description:  a.Description,
		Category:     a.Category,
		Timeout:      durationLiteral(timeout),
		InputFields:  input,
		OutputFields: schemaFields(a.OutputSchema),
		ErrorCodes:   a.ErrorCodes,
	}
	for _, f := range input {
		if !f.Optional && f.GoType == "string" {
			data.Required = append(data.Required, f)
		}
	}
	return data, nil
}

// schemaFields maps the top-level properties of an object schema, sorted by name.
func schemaFields(schema map[string]interface{}) []Field {
	props, _ := schema["properties"].(map[string]interface{})
	required := make(map[string]bool)
	if req, ok := schema["required"].([]interface{}); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}
	if req, ok := schema["required"].([]string); ok {
		for _, s := range req {
			required[s] = true
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop, _ := props[name].(map[string]interface{})
		fields = append(fields, Field{
			GoName:   goName(name),
			JSONName: name,
			GoType:   goType(prop),
			Optional: !required[name],
		})
	}
	return fields
}

func goType(prop map[string]interface{}) string {
	switch schemaType(prop) {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		items, _ := prop["items"].(map[string]interface{})
		if schemaType(items) == "object" || schemaType(items) == "" {
			return "[]map[string]interface{}"
		}
		return "[]" + goType(items)
	default:
		return "map[string]interface{}"
	}
}

// schemaType returns the first non-null type of a property, which may be a
// single type or a list such as ["array", "null"].
func schemaType(prop map[string]interface{}) string {
	switch t := prop["type"].(type) {
	case string:
		return t
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return s
			}
		}
	case []string:
		for _, s := range t {
			if s != "null" {
				return s
			}
		}
	}
	return ""
}

// goName turns a JSON property such as personaId into PersonaID.
func goName(name string) string {
	if name == "" {
		return ""
	}
	out := strings.ToUpper(name[:1]) + name[1:]
	if strings.HasSuffix(out, "Id") {
		out = strings.TrimSuffix(out, "Id") + "ID"
	}
	return out
}

func durationLiteral(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

func render(path, text string, data *WorkerData) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", filepath.Base(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
