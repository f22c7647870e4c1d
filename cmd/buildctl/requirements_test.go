package main

import (
	"testing"

	"github.com/tveita/femctl/internal/config"
)

func TestRequirementSetDefaults(t *testing.T) {
	cfg := config.DefaultBuildConfig()
	set := requirementSet(cfg)
	if len(set) != 5 {
		t.Fatalf("unexpected default set: %+v", set)
	}
	if set[0].Name != "numpy" || set[0].Pin {
		t.Fatalf("unexpected first requirement: %+v", set[0])
	}
	if set[3].Name != "fenics-ffcx" || !set[3].Pin {
		t.Fatalf("unexpected pinned requirement: %+v", set[3])
	}
}

func TestRequirementSetOverride(t *testing.T) {
	cfg := config.DefaultBuildConfig()
	cfg.Requirements = []config.RequirementConfig{{Name: "scipy", Pin: true}}
	set := requirementSet(cfg)
	if len(set) != 1 || set[0].Name != "scipy" || !set[0].Pin {
		t.Fatalf("unexpected set: %+v", set)
	}
}
