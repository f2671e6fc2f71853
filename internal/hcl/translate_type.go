// This file contains the logic for parsing manifest type expressions (e.g.
// `string`, `timestamp`, `enum(VehicleType)`) into config.FieldType values.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/lmfeatures/internal/config"
	"github.com/vk/lmfeatures/internal/ctxlog"
)

// typeExprToFieldType converts a manifest type expression into its semantic
// FieldType equivalent. Every feature must declare an explicit type; there
// is no `any`.
func typeExprToFieldType(ctx context.Context, expr hcl.Expression) (config.FieldType, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return config.FieldType{}, fmt.Errorf("missing type expression")
	}

	// A type switch over the concrete expression types is the correct way
	// to handle the various implementations of hcl.Expression.
	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a constructor call.", "call", v.Name)
		if v.Name != "enum" {
			return config.FieldType{}, fmt.Errorf("unknown type constructor function %q", v.Name)
		}
		if len(v.Args) != 1 {
			return config.FieldType{}, fmt.Errorf("enum(...) requires exactly one argument, got %d", len(v.Args))
		}
		arg, ok := v.Args[0].(*hclsyntax.ScopeTraversalExpr)
		if !ok || len(arg.Traversal) != 1 {
			return config.FieldType{}, fmt.Errorf("enum(...) argument must be a bare enumeration name")
		}
		return config.EnumType(arg.Traversal.RootName()), nil

	case *hclsyntax.ScopeTraversalExpr:
		// This handles bare type keywords like `string` or `timestamp`.
		if len(v.Traversal) != 1 {
			return config.FieldType{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a keyword.", "keyword", rootName)
		switch rootName {
		case "string":
			return config.StringType, nil
		case "int":
			return config.IntType, nil
		case "float":
			return config.FloatType, nil
		case "bool":
			return config.BoolType, nil
		case "timestamp":
			return config.TimestampType, nil
		default:
			return config.FieldType{}, fmt.Errorf("unknown type keyword %q", rootName)
		}

	default:
		return config.FieldType{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}
