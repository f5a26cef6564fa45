package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/artpar/apiexplorer/core/schema"
)

// Helper function to create a simple test component
func makeTestComponent(name string) schema.Component {
	return schema.Component{
		Name:    name,
		Views:   []schema.Operation{{Name: "version"}, {Name: "urls", Params: []string{"baseurl"}}},
		Actions: []schema.Operation{{Name: "accessUrl", Params: []string{"url", "followRedirects"}}},
	}
}

func TestNew(t *testing.T) {
	r := New()
	if r == nil {
		t.Fatal("New() returned nil")
	}
	if r.components == nil {
		t.Error("components map not initialized")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := New()

	if err := r.Register(makeTestComponent("core")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	comp, ok := r.Get("core")
	if !ok {
		t.Fatal("Get() should find registered component")
	}
	if comp.Name != "core" {
		t.Errorf("Get().Name = %s, want core", comp.Name)
	}
	if comp.Views[0].Kind != schema.KindView {
		t.Errorf("operations should be normalized, kind = %q", comp.Views[0].Kind)
	}
	if comp.Views[0].Params == nil {
		t.Error("operations should be normalized, params nil")
	}
}

func TestRegistry_Register_DuplicateName(t *testing.T) {
	r := New()

	if err := r.Register(makeTestComponent("core")); err != nil {
		t.Fatalf("First Register() error = %v", err)
	}
	if err := r.Register(makeTestComponent("core")); err == nil {
		t.Error("Second Register() should fail with duplicate name")
	}
}

func TestRegistry_Register_EmptyName(t *testing.T) {
	r := New()
	if err := r.Register(schema.Component{}); err == nil {
		t.Error("Register() should reject empty name")
	}
}

func TestRegistry_Register_OperationConflict(t *testing.T) {
	r := New()
	comp := schema.Component{
		Name:    "core",
		Actions: []schema.Operation{{Name: "shutdown"}, {Name: "shutdown"}},
	}

	err := r.Register(comp)
	if err == nil {
		t.Fatal("Register() should fail on duplicate action")
	}

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("error should be ConflictError, got %T", err)
	}
	if !conflictErr.HasConflicts() || len(conflictErr.Conflicts) != 1 {
		t.Errorf("Conflicts = %v, want 1", conflictErr.Conflicts)
	}
	if conflictErr.Conflicts[0].Kind != schema.KindAction {
		t.Errorf("conflict kind = %s, want action", conflictErr.Conflicts[0].Kind)
	}
	if _, ok := r.Get("core"); ok {
		t.Error("conflicting component should not be registered")
	}
}

func TestRegistry_Register_SameNameDifferentKinds(t *testing.T) {
	r := New()
	comp := schema.Component{
		Name:    "core",
		Views:   []schema.Operation{{Name: "status"}},
		Actions: []schema.Operation{{Name: "status"}},
	}

	if err := r.Register(comp); err != nil {
		t.Errorf("Register() error = %v, names may repeat across kinds", err)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("core"))

	if err := r.Unregister("core"); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if _, ok := r.Get("core"); ok {
		t.Error("component should be gone after Unregister()")
	}
	if err := r.Unregister("core"); err == nil {
		t.Error("Unregister() of unknown component should fail")
	}
}

func TestRegistry_Names_Sorted(t *testing.T) {
	r := New()
	for _, name := range []string{"spider", "core", "ascan"} {
		if err := r.Register(makeTestComponent(name)); err != nil {
			t.Fatal(err)
		}
	}

	names := r.Names()
	want := []string{"ascan", "core", "spider"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	list := r.List()
	if len(list) != 3 || list[0].Name != "ascan" {
		t.Errorf("List() not sorted: %v", list)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestRegistry_Get_ReturnsCopy(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("core"))

	comp, _ := r.Get("core")
	comp.Actions[0].Params[0] = "mutated"
	comp.Views = nil

	again, _ := r.Get("core")
	if again.Actions[0].Params[0] != "url" {
		t.Error("mutating a returned component changed registry state")
	}
	if len(again.Views) != 2 {
		t.Error("mutating returned views changed registry state")
	}
}

func TestRegistry_Operations(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("core"))

	ops, ok := r.Operations("core", schema.KindView)
	if !ok {
		t.Fatal("Operations() should find core")
	}
	if len(ops) != 2 || ops[0].Name != "version" || ops[1].Name != "urls" {
		t.Errorf("Operations() = %v, registry order not preserved", ops)
	}

	if _, ok := r.Operations("missing", schema.KindView); ok {
		t.Error("Operations() should report unknown component")
	}
}

func TestRegistry_Replace(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("old"))

	err := r.Replace([]schema.Component{makeTestComponent("core"), makeTestComponent("spider")})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if _, ok := r.Get("old"); ok {
		t.Error("Replace() should drop components not in the new set")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_Replace_InvalidKeepsState(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("core"))

	err := r.Replace([]schema.Component{makeTestComponent("a"), makeTestComponent("a")})
	if err == nil {
		t.Fatal("Replace() should reject duplicate components")
	}
	if _, ok := r.Get("core"); !ok {
		t.Error("failed Replace() must keep previous components")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	r.Register(makeTestComponent("core"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Names()
			r.Get("core")
		}()
		go func() {
			defer wg.Done()
			r.Replace([]schema.Component{makeTestComponent("core")})
		}()
	}
	wg.Wait()

	if _, ok := r.Get("core"); !ok {
		t.Error("core should still be registered")
	}
}
