// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("command is required")
	}

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportPath := exportCmd.String("path", defaultRegistryPath, "Path to write the registry to")

	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	updateCmd := flag.NewFlagSet("update", flag.ContinueOnError)
	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	taskType := updateCmd.String("taskType", "", "Task type of the activity to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries)")
	value := updateCmd.String("value", "", "New value for the field")

	switch args[0] {
	case "export":
		if err := exportCmd.Parse(args[1:]); err != nil {
			return err
		}
		reg := registry.Builtin()
		if err := saveRegistry(reg, *exportPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d activities to %s\n", len(reg.Activities), *exportPath)

	case "validate":
		if err := validateCmd.Parse(args[1:]); err != nil {
			return err
		}
		n, err := validateRegistry(*validatePath)
		if err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", n)

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *taskType == "" || *field == "" || *value == "" {
			updateCmd.Usage()
			return fmt.Errorf("taskType, field, and value are required for update")
		}
		if err := updateActivity(*updatePath, *taskType, *field, *value); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *taskType, *field, *value)

	case "help":
		help(out)

	default:
		help(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func updateActivity(path, taskType, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	activity, ok := reg.Find(taskType)
	if !ok {
		return fmt.Errorf("activity with task type %s not found", taskType)
	}

	switch field {
	case "status":
		if !registry.ValidStatus(value) {
			return fmt.Errorf("invalid status %q", value)
		}
		activity.ImplementationStatus = value
	case "version":
		activity.Version = value
	case "description":
		activity.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		activity.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		activity.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveRegistry(reg, path)
}

// validateRegistry checks structure and compiles every input schema.
func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Activities) == 0 {
		return 0, fmt.Errorf("registry contains no activities")
	}

	if errs := reg.Validate(); len(errs) > 0 {
		return 0, errs[0]
	}

	if _, err := validation.NewValidator(reg); err != nil {
		return 0, err
	}

	for _, a := range registry.Builtin().Activities {
		if _, ok := reg.Find(a.TaskType); !ok {
			return 0, fmt.Errorf("activity for task type %s is missing", a.TaskType)
		}
	}

	return len(reg.Activities), nil
}

func saveRegistry(reg *registry.ActivityRegistry, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := reg.Save(path); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  export   Write the built-in activity registry to a JSON file
  validate Validate a registry file and compile its input schemas
  update   Update a field of an activity in a registry file
  help     Show this help message

Examples:
  registry-updater export -path configs/activity-registry.json
  registry-updater validate -path configs/activity-registry.json
  registry-updater update -taskType send-match-digest -field timeout -value 45s

Use 'registry-updater <command> -h' for more information about a command.`)
}
