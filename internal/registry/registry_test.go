package registry

import (
	"testing"

	"github.com/vovakirdan/astro-dash/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string                                    { return s.id }
func (s *stubGame) Title() string                                 { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig)                      {}
func (s *stubGame) Step(core.InputFrame, float64) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen)                           {}
func (s *stubGame) State() core.GameState                         { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub_a" || info.ID == "stub_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "stub_a" {
		t.Errorf("List() should be sorted by id, got %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
