package registry

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	Register(Mode{ID: "test-lookup", Title: "Lookup", Scenes: []string{"A", "B"}})

	m, err := Lookup("test-lookup")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if m.Title != "Lookup" {
		t.Errorf("Title = %q, expected %q", m.Title, "Lookup")
	}
	if !Exists("test-lookup") {
		t.Error("Exists() should report registered mode")
	}

	if _, err := Lookup("test-missing"); err == nil {
		t.Error("Lookup() of unknown mode should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(Mode{ID: "test-dup", Title: "Dup"})

	defer func() {
		if recover() == nil {
			t.Error("Register() of duplicate ID should panic")
		}
	}()
	Register(Mode{ID: "test-dup", Title: "Dup again"})
}

func TestListSorted(t *testing.T) {
	Register(Mode{ID: "test-zz", Title: "Z"})
	Register(Mode{ID: "test-aa", Title: "A"})

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestModeSceneWraps(t *testing.T) {
	m := Mode{Scenes: []string{"one", "two", "three"}}

	tests := []struct {
		changes int
		want    string
	}{
		{0, "one"},
		{1, "two"},
		{3, "one"},
		{-1, "one"},
	}
	for _, tc := range tests {
		if got := m.Scene(tc.changes); got != tc.want {
			t.Errorf("Scene(%d) = %q, expected %q", tc.changes, got, tc.want)
		}
	}

	if (Mode{}).Scene(4) != "" {
		t.Error("Scene() without scenes should be empty")
	}
}
