package app

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/vk/lmfeatures/internal/ctxlog"
)

// Run dispatches one catalog command.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", command)

	switch command {
	case "validate":
		// Loading and registry validation happen at construction; reaching
		// this point means the catalog is consistent.
		fmt.Fprintf(a.outW, "catalog valid: %d classes, %d enums\n",
			len(a.registry.ClassNames()), len(a.registry.EnumNames()))
		return nil
	case "list":
		return a.runList()
	case "describe":
		if len(args) != 1 {
			return fmt.Errorf("describe requires exactly one name argument")
		}
		return a.runDescribe(args[0])
	case "decode":
		if len(args) != 2 {
			return fmt.Errorf("decode requires a class name and a record file")
		}
		return a.runDecode(ctx, args[0], args[1])
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// runList prints the catalog's classes and enums with their sizes.
func (a *App) runList() error {
	for _, name := range a.registry.ClassNames() {
		def, _ := a.registry.LookupClass(name)
		fmt.Fprintf(a.outW, "feature_class %s\t%d features\n", name, len(def.FieldOrder))
	}
	for _, name := range a.registry.EnumNames() {
		def, _ := a.registry.LookupEnum(name)
		fmt.Fprintf(a.outW, "enum %s\t%d members\n", name, len(def.Members))
	}
	return nil
}

// runDescribe prints one class or enum in declaration order.
func (a *App) runDescribe(name string) error {
	if def, ok := a.registry.LookupClass(name); ok {
		fmt.Fprintf(a.outW, "feature_class %s\n", def.Name)
		if def.Description != "" {
			fmt.Fprintf(a.outW, "  %s\n", def.Description)
		}
		for _, field := range def.OrderedFields() {
			marker := "required"
			if field.Optional {
				marker = "optional"
			}
			if field.Key {
				marker = "key"
			}
			fmt.Fprintf(a.outW, "  %-40s %-20s %s\n", field.Name, field.Type.FriendlyName(), marker)
			if field.Ref != "" {
				fmt.Fprintf(a.outW, "  %-40s %-20s ref %s\n", "", "", field.Ref)
			}
			if field.Description != "" {
				fmt.Fprintf(a.outW, "      %s\n", field.Description)
			}
		}
		return nil
	}

	if def, ok := a.registry.LookupEnum(name); ok {
		fmt.Fprintf(a.outW, "enum %s\n", def.Name)
		if def.Description != "" {
			fmt.Fprintf(a.outW, "  %s\n", def.Description)
		}
		for _, member := range def.Members {
			fmt.Fprintf(a.outW, "  %-12s %q\n", member.Name, member.Wire)
		}
		return nil
	}

	return fmt.Errorf("no class or enum named %q in the catalog", name)
}

// runDecode coerces a raw JSON record against a declared class and prints
// the canonical encoding of the resulting instance.
func (a *App) runDecode(ctx context.Context, className, recordPath string) error {
	def, ok := a.registry.LookupClass(className)
	if !ok {
		return fmt.Errorf("no class named %q in the catalog", className)
	}

	data, err := os.ReadFile(recordPath)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse record file %s: %w", recordPath, err)
	}

	instance, ok := a.registry.NewInstance(className)
	if !ok {
		return fmt.Errorf("class %q has no registered Go type", className)
	}

	if err := a.converter.DecodeRecord(ctx, instance, raw, def); err != nil {
		return fmt.Errorf("record does not conform to class %q: %w", className, err)
	}
	a.logger.Debug("Record decoded.", "class", className)

	canonical, err := a.converter.EncodeRecord(ctx, instance, def)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(canonical, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, string(out))
	return nil
}
