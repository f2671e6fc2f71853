package registry_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/lmfeatures/internal/hcl"
	"github.com/vk/lmfeatures/internal/registry"
)

// setupRegistry loads the given manifest source and registers the provided
// Go backings, returning the populated registry ready for validation.
func setupRegistry(t *testing.T, src string, apply func(r *registry.Registry)) *registry.Registry {
	t.Helper()

	model, _, err := hcl.NewLoader().LoadSources(context.Background(), map[string]string{"test.hcl": src})
	require.NoError(t, err)

	r := registry.New()
	if apply != nil {
		apply(r)
	}
	r.PopulateDefinitionsFromModel(model)
	return r
}

type stopKind string

type stop struct {
	StopUID   string    `lmf:"stop_uid"`
	Kind      stopKind  `lmf:"kind"`
	Sequence  int       `lmf:"sequence"`
	PlannedAt time.Time `lmf:"planned_at"`
}

const stopManifest = `
enum "StopKind" {
	member "PICKUP" { value = "pickup" }
	member "DROPOFF" { value = "dropoff" }
}

feature_class "Stop" {
	feature "stop_uid" {
		type = string
		key  = true
	}
	feature "kind" {
		type = enum(StopKind)
	}
	feature "sequence" {
		type = int
	}
	feature "planned_at" {
		type = timestamp
	}
}`

func registerStop(r *registry.Registry) {
	r.RegisterClass("Stop", &registry.RegisteredClass{
		New:    func() any { return new(stop) },
		GoType: reflect.TypeOf(stop{}),
	})
	r.RegisterEnum("StopKind", &registry.RegisteredEnum{
		GoType: reflect.TypeOf(stopKind("")),
		Wires:  []string{"pickup", "dropoff"},
	})
}

func TestValidateRegistry_Success(t *testing.T) {
	t.Parallel()

	r := setupRegistry(t, stopManifest, registerStop)
	require.NoError(t, r.ValidateRegistry(context.Background()))

	require.Equal(t, []string{"Stop"}, r.ClassNames())
	require.Equal(t, []string{"StopKind"}, r.EnumNames())

	instance, ok := r.NewInstance("Stop")
	require.True(t, ok)
	require.IsType(t, &stop{}, instance)
}

func TestValidateRegistry_ParityFailures(t *testing.T) {
	t.Parallel()

	t.Run("manifest feature without Go field", func(t *testing.T) {
		t.Parallel()
		src := stopManifest + `
		feature_class "Extra" {
			feature "extra_uid" {
				type = string
				key  = true
			}
			feature "phantom" {
				type = string
			}
		}`
		type extra struct {
			ExtraUID string `lmf:"extra_uid"`
		}
		r := setupRegistry(t, src, func(r *registry.Registry) {
			registerStop(r)
			r.RegisterClass("Extra", &registry.RegisteredClass{
				New:    func() any { return new(extra) },
				GoType: reflect.TypeOf(extra{}),
			})
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `manifest declares feature "phantom" which has no lmf-tagged Go field`)
	})

	t.Run("Go field without manifest feature", func(t *testing.T) {
		t.Parallel()
		type widened struct {
			StopUID   string    `lmf:"stop_uid"`
			Kind      stopKind  `lmf:"kind"`
			Sequence  int       `lmf:"sequence"`
			PlannedAt time.Time `lmf:"planned_at"`
			Rogue     string    `lmf:"rogue"`
		}
		r := setupRegistry(t, stopManifest, func(r *registry.Registry) {
			r.RegisterClass("Stop", &registry.RegisteredClass{
				New:    func() any { return new(widened) },
				GoType: reflect.TypeOf(widened{}),
			})
			r.RegisterEnum("StopKind", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  []string{"pickup", "dropoff"},
			})
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `Go struct has field for feature "rogue" which is not declared`)
	})

	t.Run("type mismatches per kind", func(t *testing.T) {
		t.Parallel()
		type mangled struct {
			StopUID   string  `lmf:"stop_uid"`
			Kind      string  `lmf:"kind"`       // want the registered stopKind type
			Sequence  float64 `lmf:"sequence"`   // want int
			PlannedAt string  `lmf:"planned_at"` // want time.Time
		}
		r := setupRegistry(t, stopManifest, func(r *registry.Registry) {
			r.RegisterClass("Stop", &registry.RegisteredClass{
				New:    func() any { return new(mangled) },
				GoType: reflect.TypeOf(mangled{}),
			})
			r.RegisterEnum("StopKind", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  []string{"pickup", "dropoff"},
			})
		})

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `feature "kind": type mismatch`)
		require.ErrorContains(t, err, `feature "sequence": type mismatch`)
		require.ErrorContains(t, err, `feature "planned_at": type mismatch`)
	})

	t.Run("class without Go registration", func(t *testing.T) {
		t.Parallel()
		r := setupRegistry(t, stopManifest, func(r *registry.Registry) {
			r.RegisterEnum("StopKind", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  []string{"pickup", "dropoff"},
			})
		})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `class "Stop": declared in a manifest but no Go struct is registered`)
	})

	t.Run("Go registration without declaration", func(t *testing.T) {
		t.Parallel()
		r := setupRegistry(t, stopManifest, func(r *registry.Registry) {
			registerStop(r)
			r.RegisterClass("Ghost", &registry.RegisteredClass{
				New:    func() any { return new(stop) },
				GoType: reflect.TypeOf(stop{}),
			})
		})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `class "Ghost": Go struct registered but no manifest declares it`)
	})
}

func TestValidateRegistry_ShapeFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		src         string
		errContains string
	}{
		{
			name: "identifier feature not a string",
			src: `
			feature_class "C" {
				feature "c_uid" {
					type = int
					key  = true
				}
			}`,
			errContains: "identifier features must be strings",
		},
		{
			name: "no key feature",
			src: `
			feature_class "C" {
				feature "name" { type = string }
			}`,
			errContains: "must declare exactly one key feature, found 0",
		},
		{
			name: "two key features",
			src: `
			feature_class "C" {
				feature "a_uid" {
					type = string
					key  = true
				}
				feature "b_uid" {
					type = string
					key  = true
				}
			}`,
			errContains: "must declare exactly one key feature, found 2",
		},
		{
			name:        "empty class",
			src:         `feature_class "C" {}`,
			errContains: "declares no features",
		},
		{
			name: "reference to unknown class",
			src: `
			feature_class "C" {
				feature "c_uid" {
					type = string
					key  = true
				}
				feature "other_uid" {
					type = string
					ref  = "Missing.other_uid"
				}
			}`,
			errContains: `ref targets unknown class "Missing"`,
		},
		{
			name: "reference to unknown feature",
			src: `
			feature_class "C" {
				feature "c_uid" {
					type = string
					key  = true
				}
				feature "other" {
					type = string
					ref  = "C.nope"
				}
			}`,
			errContains: `ref targets unknown feature "nope"`,
		},
		{
			name: "malformed reference",
			src: `
			feature_class "C" {
				feature "c_uid" {
					type = string
					key  = true
					ref  = "no-dot"
				}
			}`,
			errContains: `must have the form "Class.feature"`,
		},
		{
			name: "enum reference without declaration",
			src: `
			feature_class "C" {
				feature "c_uid" {
					type = string
					key  = true
				}
				feature "kind" {
					type = enum(Nope)
				}
			}`,
			errContains: `references undeclared enum "Nope"`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := setupRegistry(t, tc.src, nil)
			// Go-side parity failures are expected too; assert on the shape error.
			err := r.ValidateRegistry(context.Background())
			require.Error(t, err)
			require.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestValidateRegistry_EnumFailures(t *testing.T) {
	t.Parallel()

	t.Run("duplicate wire values", func(t *testing.T) {
		t.Parallel()
		src := `
		enum "E" {
			member "A" { value = "x" }
			member "B" { value = "x" }
		}`
		r := setupRegistry(t, src, func(r *registry.Registry) {
			r.RegisterEnum("E", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  []string{"x"},
			})
		})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `duplicate wire value "x"`)
	})

	t.Run("Go constants out of sync", func(t *testing.T) {
		t.Parallel()
		src := `
		enum "E" {
			member "A" { value = "a" }
			member "B" { value = "b" }
		}`
		r := setupRegistry(t, src, func(r *registry.Registry) {
			r.RegisterEnum("E", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  []string{"a", "c"},
			})
		})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `manifest member "B" (wire "b") has no Go constant`)
		require.ErrorContains(t, err, `Go constant with wire "c" is not declared`)
	})

	t.Run("declared enum without Go type", func(t *testing.T) {
		t.Parallel()
		src := `
		enum "E" {
			member "A" { value = "a" }
		}`
		r := setupRegistry(t, src, nil)
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, `enum "E": declared in a manifest but no Go type is registered`)
	})

	t.Run("empty wire value", func(t *testing.T) {
		t.Parallel()
		src := `
		enum "E" {
			member "A" { value = "" }
		}`
		r := setupRegistry(t, src, func(r *registry.Registry) {
			r.RegisterEnum("E", &registry.RegisteredEnum{
				GoType: reflect.TypeOf(stopKind("")),
				Wires:  nil,
			})
		})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		require.ErrorContains(t, err, "wire value must not be empty")
	})
}

func TestRegisterClass_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := registry.New()
	rc := &registry.RegisteredClass{
		New:    func() any { return new(stop) },
		GoType: reflect.TypeOf(stop{}),
	}
	r.RegisterClass("Stop", rc)
	require.Panics(t, func() { r.RegisterClass("Stop", rc) })
}
