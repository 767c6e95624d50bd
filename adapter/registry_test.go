package adapter_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/flowkit-plugins/docintel/adapter"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		nodeName string
		wantErr  error
	}{
		{name: "valid node", nodeName: "register_valid"},
		{name: "empty name", nodeName: "", wantErr: adapter.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := adapter.Register(fakeCapability{name: tt.nodeName})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Register() unexpected error: %v", err)
			}
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	if err := adapter.Register(fakeCapability{name: "register_duplicate"}); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}

	err := adapter.Register(fakeCapability{name: "register_duplicate"})
	if !errors.Is(err, adapter.ErrAlreadyExists) {
		t.Errorf("second Register() error = %v, want %v", err, adapter.ErrAlreadyExists)
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := adapter.Get("no_such_node")
	if !errors.Is(err, adapter.ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, adapter.ErrNotFound)
	}
}

func TestGet_ReturnsRegistered(t *testing.T) {
	if err := adapter.Register(fakeCapability{name: "get_existing"}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	capability, err := adapter.Get("get_existing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if capability.Descriptor().Name != "get_existing" {
		t.Errorf("got descriptor name %q, want %q", capability.Descriptor().Name, "get_existing")
	}
}

func TestList_SortedByName(t *testing.T) {
	for _, name := range []string{"list_c", "list_a", "list_b"} {
		if err := adapter.Register(fakeCapability{name: name}); err != nil {
			t.Fatalf("Register(%q) failed: %v", name, err)
		}
	}

	descs := adapter.List()
	names := make([]string, 0, len(descs))
	for _, d := range descs {
		names = append(names, d.Name)
	}

	if !sort.StringsAreSorted(names) {
		t.Errorf("List() names not sorted: %v", names)
	}
}
