package services

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"battery-lab-api/models"
)

const (
	DefaultCandidateCount = 10
	MaxCandidateCount     = 50

	defaultTargetEnergy  = 200.0
	defaultTargetVoltage = 3.5
)

// DefaultElements is used when a request does not name its own elements.
var DefaultElements = []string{"Li", "Na", "K", "Mg", "Ca", "Co", "Ni", "Mn", "Fe", "V", "Ti", "O", "S", "P", "F"}

// template is a stoichiometric pattern with slots for host elements.
type template struct {
	format string
	slots  int
	atoms  int
}

var templates = []template{
	{"%s%sO2", 2, 4},
	{"%s2%sO4", 2, 7},
	{"%s%sPO4", 2, 7},
	{"%s3%s2(PO4)3", 2, 20},
	{"%s%s2O4", 2, 7},
	{"%s2%sO3", 2, 6},
	{"%s%s%sO4", 3, 7},
	{"%s7%s3%s2O12", 3, 24},
}

// fill places elements into the slots. With fewer elements than slots the
// list wraps around, so one element can occupy several slots.
func (t template) fill(elements []string) string {
	args := make([]any, t.slots)
	for i := range args {
		args[i] = elements[i%len(elements)]
	}
	return fmt.Sprintf(t.format, args...)
}

type GenerationConstraints struct {
	Elements        []string
	ExcludeElements []string
	MaxAtoms        *int
	SpaceGroups     []string
}

type GenerationParams struct {
	BaseFormula         string
	TargetEnergyDensity *float64
	TargetVoltage       *float64
	Count               int
	Constraints         GenerationConstraints
}

// ConstraintError reports generation constraints that leave nothing to build.
type ConstraintError struct {
	Field  string
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// CandidateGenerator invents candidate formulas with random properties and
// scores. BaseFormula and SpaceGroups are accepted but not used.
type CandidateGenerator struct {
	sampler
}

func NewCandidateGenerator(seed uint64) *CandidateGenerator {
	return &CandidateGenerator{sampler{src: newSource(seed)}}
}

func allowedElements(c GenerationConstraints) []string {
	base := DefaultElements
	if len(c.Elements) > 0 {
		base = c.Elements
	}
	out := make([]string, 0, len(base))
	for _, el := range base {
		if !slices.Contains(c.ExcludeElements, el) {
			out = append(out, el)
		}
	}
	return out
}

func allowedTemplates(maxAtoms *int) []template {
	if maxAtoms == nil {
		return templates
	}
	var out []template
	for _, t := range templates {
		if t.atoms <= *maxAtoms {
			out = append(out, t)
		}
	}
	return out
}

// Generate returns params.Count candidates sorted by descending score. The
// candidates have no ids yet; the store assigns them.
func (g *CandidateGenerator) Generate(params GenerationParams) ([]models.Candidate, error) {
	count := params.Count
	if count == 0 {
		count = DefaultCandidateCount
	}
	if count < 1 || count > MaxCandidateCount {
		return nil, &ConstraintError{Field: "count", Reason: fmt.Sprintf("must be between 1 and %d", MaxCandidateCount)}
	}
	elements := allowedElements(params.Constraints)
	if len(elements) == 0 {
		return nil, &ConstraintError{Field: "constraints.excludeElements", Reason: "no elements remain after exclusions"}
	}
	tmpls := allowedTemplates(params.Constraints.MaxAtoms)
	if len(tmpls) == 0 {
		return nil, &ConstraintError{Field: "constraints.maxAtoms", Reason: "no formula template fits within the atom limit"}
	}

	targetEnergy := defaultTargetEnergy
	if params.TargetEnergyDensity != nil && *params.TargetEnergyDensity != 0 {
		targetEnergy = *params.TargetEnergyDensity
	}
	targetVoltage := defaultTargetVoltage
	if params.TargetVoltage != nil && *params.TargetVoltage != 0 {
		targetVoltage = *params.TargetVoltage
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	rng := rand.New(g.src)

	candidates := make([]models.Candidate, 0, count)
	for range count {
		shuffled := slices.Clone(elements)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		t := tmpls[rng.IntN(len(tmpls))]

		candidates = append(candidates, models.Candidate{
			Formula: t.fill(shuffled),
			PredictedProperties: models.CandidateProperties{
				EnergyDensity: targetEnergy * g.uniform(0.8, 1.2),
				Voltage:       targetVoltage * g.uniform(0.85, 1.15),
				Conductivity:  g.uniform(0, maxConductivity),
				Stability:     g.uniform(minStability, maxStability),
			},
			Score: g.uniform(0.6, 1.0),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	candidatesGenerated.Add(float64(len(candidates)))
	return candidates, nil
}
