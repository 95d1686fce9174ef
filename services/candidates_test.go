package services

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestGenerateCountAndOrder(t *testing.T) {
	g := NewCandidateGenerator(5)

	for _, n := range []int{1, 7, 50} {
		got, err := g.Generate(GenerationParams{Count: n})
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", n, err)
		}
		if len(got) != n {
			t.Fatalf("len = %d, want %d", len(got), n)
		}
		for i, c := range got {
			if c.Score < 0.6 || c.Score > 1.0 {
				t.Errorf("score = %v, want [0.6, 1.0]", c.Score)
			}
			if i > 0 && got[i-1].Score < c.Score {
				t.Errorf("candidates not sorted: %v before %v", got[i-1].Score, c.Score)
			}
			if c.Formula == "" {
				t.Error("formula should not be empty")
			}
		}
	}
}

func TestGenerateDefaultCount(t *testing.T) {
	got, err := NewCandidateGenerator(1).Generate(GenerationParams{})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(got) != DefaultCandidateCount {
		t.Errorf("len = %d, want %d", len(got), DefaultCandidateCount)
	}
}

func TestGenerateRejectsCount(t *testing.T) {
	for _, n := range []int{-1, 51} {
		_, err := NewCandidateGenerator(1).Generate(GenerationParams{Count: n})
		var ce *ConstraintError
		if !errors.As(err, &ce) || ce.Field != "count" {
			t.Errorf("Generate(%d) error = %v, want count ConstraintError", n, err)
		}
	}
}

func TestGenerateProperties(t *testing.T) {
	g := NewCandidateGenerator(8)
	got, err := g.Generate(GenerationParams{
		Count:               50,
		TargetEnergyDensity: floatPtr(300),
		TargetVoltage:       floatPtr(4),
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for _, c := range got {
		p := c.PredictedProperties
		if p.EnergyDensity < 240 || p.EnergyDensity > 360 {
			t.Errorf("energyDensity = %v, want [240, 360]", p.EnergyDensity)
		}
		if p.Voltage < 3.4 || p.Voltage > 4.6 {
			t.Errorf("voltage = %v, want [3.4, 4.6]", p.Voltage)
		}
		if p.Conductivity < 0 || p.Conductivity > 0.01 {
			t.Errorf("conductivity = %v", p.Conductivity)
		}
		if p.Stability < 400 || p.Stability > 600 {
			t.Errorf("stability = %v", p.Stability)
		}
	}

	defaults, _ := g.Generate(GenerationParams{Count: 20})
	for _, c := range defaults {
		if e := c.PredictedProperties.EnergyDensity; e < 160 || e > 240 {
			t.Errorf("default energyDensity = %v, want [160, 240]", e)
		}
	}
}

var elementToken = regexp.MustCompile(`[A-Z][a-z]?`)

func TestGenerateHonorsElementConstraints(t *testing.T) {
	g := NewCandidateGenerator(21)
	got, err := g.Generate(GenerationParams{
		Count: 30,
		Constraints: GenerationConstraints{
			Elements:        []string{"Li", "Na", "Mn", "Fe"},
			ExcludeElements: []string{"Fe"},
		},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	allowed := map[string]bool{"Li": true, "Na": true, "Mn": true, "O": true, "P": true}
	for _, c := range got {
		for _, el := range elementToken.FindAllString(c.Formula, -1) {
			if !allowed[el] {
				t.Errorf("formula %q uses %q", c.Formula, el)
			}
		}
	}
}

func TestGenerateReusesSingleElement(t *testing.T) {
	got, err := NewCandidateGenerator(4).Generate(GenerationParams{
		Count:       20,
		Constraints: GenerationConstraints{Elements: []string{"Li"}},
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for _, c := range got {
		if !strings.HasPrefix(c.Formula, "Li") {
			t.Errorf("formula %q should be built from Li only", c.Formula)
		}
	}
}

func TestGenerateEmptyElementSet(t *testing.T) {
	_, err := NewCandidateGenerator(4).Generate(GenerationParams{
		Count: 3,
		Constraints: GenerationConstraints{
			Elements:        []string{"Li"},
			ExcludeElements: []string{"Li"},
		},
	})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}
}

func TestGenerateMaxAtoms(t *testing.T) {
	g := NewCandidateGenerator(13)

	got, err := g.Generate(GenerationParams{Count: 40, Constraints: GenerationConstraints{MaxAtoms: intPtr(4)}})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	for _, c := range got {
		if !strings.HasSuffix(c.Formula, "O2") {
			t.Errorf("formula %q should use the four-atom template", c.Formula)
		}
	}

	_, err = g.Generate(GenerationParams{Count: 1, Constraints: GenerationConstraints{MaxAtoms: intPtr(3)}})
	var ce *ConstraintError
	if !errors.As(err, &ce) || ce.Field != "constraints.maxAtoms" {
		t.Errorf("err = %v, want maxAtoms ConstraintError", err)
	}
}

func TestTemplateFill(t *testing.T) {
	tests := []struct {
		tmpl template
		els  []string
		want string
	}{
		{templates[0], []string{"Li", "Co"}, "LiCoO2"},
		{templates[3], []string{"Na", "V"}, "Na3V2(PO4)3"},
		{templates[7], []string{"Li", "La", "Zr"}, "Li7La3Zr2O12"},
		{templates[6], []string{"Li", "Fe"}, "LiFeLiO4"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tmpl.fill(tt.els); got != tt.want {
				t.Errorf("fill(%v) = %q, want %q", tt.els, got, tt.want)
			}
		})
	}
}
