package engine

import (
	"github.com/san-kum/mdconf/internal/analysis"
	"github.com/san-kum/mdconf/internal/schema"
)

const (
	MaxSpecies      = 3
	MaxTemperatures = 32
	MaxMasses       = 16
	MaxIDs          = 16
	MaxNames        = 16

	TitleLen        = 64
	IntegratorWidth = 16
	SpeciesWidth    = 8
)

const (
	DefaultCutoff      = 2.5
	DefaultSeed        = 1
	DefaultTitle       = "untitled"
	DefaultIntegrator  = "verlet"
	DefaultBox         = 10.0
	DefaultTemperature = 300.0
	DefaultSpecies     = "Ar"
	DefaultMass        = 39.948
	DefaultDt          = 0.001
	DefaultDuration    = 10.0
	DefaultSteps       = 10000
	DefaultPairBins    = 100
	DefaultAngleBins   = 90
	DefaultTau         = 0.1
	DefaultCos0        = -1.0 / 3.0
)

// Config is the native storage of a simulation run. Every field reachable
// from Schema is written in place by the marshaler.
type Config struct {
	Cutoff  float64
	Seed    int32
	Verbose bool
	Box     [3]float64
	Grid    [3]int32

	title        [TitleLen]byte
	integrator   [IntegratorWidth]byte
	temperatures [MaxTemperatures]float64
	nTemps       int32
	species      [MaxNames * SpeciesWidth]byte
	nSpecies     int32
	masses       [MaxMasses]float64
	nMasses      int32

	Dynamics   DynamicsConfig
	Pair       DistributionConfig
	Angle      DistributionConfig
	Potential  PotentialConfig
	Thermostat ThermostatConfig

	// Meta is decoded from the reserved "__meta" key.
	Meta Meta

	root *schema.Section
	pair *schema.Section
	ang  *schema.Section
}

type DynamicsConfig struct {
	Dt       float64
	Duration float64
	Steps    int32
}

type DistributionConfig struct {
	NBins  int32
	Cutoff float64
}

type PotentialConfig struct {
	epsilon [MaxSpecies * MaxSpecies]float64
	sigma   [MaxSpecies * MaxSpecies]float64
	ids     [MaxIDs]int32
	nIDs    int32

	ThreeBody ThreeBodyConfig
}

type ThreeBodyConfig struct {
	lambda [MaxSpecies * MaxSpecies * MaxSpecies]float64
	Cos0   float64
}

type ThermostatConfig struct {
	Temperature float64
	Tau         float64
	// Enabled is set when the thermostat section appears in the input.
	Enabled bool
}

type Meta struct {
	Name    string   `mapstructure:"name"`
	Author  string   `mapstructure:"author"`
	Version string   `mapstructure:"version"`
	Tags    []string `mapstructure:"tags"`
}

func DefaultConfig() *Config {
	c := &Config{
		Cutoff: DefaultCutoff,
		Seed:   DefaultSeed,
		Box:    [3]float64{DefaultBox, DefaultBox, DefaultBox},
		Grid:   [3]int32{1, 1, 1},
		Dynamics: DynamicsConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
			Steps:    DefaultSteps,
		},
		Pair:  DistributionConfig{NBins: DefaultPairBins, Cutoff: DefaultCutoff},
		Angle: DistributionConfig{NBins: DefaultAngleBins, Cutoff: DefaultCutoff},
		Thermostat: ThermostatConfig{
			Temperature: DefaultTemperature,
			Tau:         DefaultTau,
		},
	}

	copy(c.title[:], DefaultTitle)
	fill(c.integrator[:], DefaultIntegrator)
	c.temperatures[0], c.nTemps = DefaultTemperature, 1
	fill(c.species[:SpeciesWidth], DefaultSpecies)
	c.nSpecies = 1
	c.masses[0], c.nMasses = DefaultMass, 1

	for i := range c.Potential.epsilon {
		c.Potential.epsilon[i] = 1
		c.Potential.sigma[i] = 1
	}
	c.Potential.ThreeBody.Cos0 = DefaultCos0
	return c
}

// fill writes s blank-padded into a fixed-width field.
func fill(field []byte, s string) {
	n := copy(field, s)
	for i := n; i < len(field); i++ {
		field[i] = ' '
	}
}

// Schema returns the property tree over c's storage. It is built on first
// use and shared by later calls.
func (c *Config) Schema() *schema.Section {
	if c.root == nil {
		c.build()
	}
	return c.root
}

func (c *Config) build() {
	root := schema.NewSection("root").Add(
		schema.NewDouble("cutoff", &c.Cutoff),
		schema.NewInt("seed", &c.Seed),
		schema.NewBool("verbose", &c.Verbose),
		schema.NewString("title", c.title[:]),
		schema.NewFixedString("integrator", c.integrator[:]),
		schema.NewPoint3("box", &c.Box),
		schema.NewIntPoint3("grid", &c.Grid),
		schema.NewFloatList("temperatures", c.temperatures[:], &c.nTemps),
		schema.NewStringList("species", c.species[:], SpeciesWidth, &c.nSpecies),
		schema.NewFloatList("masses", c.masses[:], &c.nMasses),
	)

	root.Section("dynamics").Add(
		schema.NewDouble("dt", &c.Dynamics.Dt),
		schema.NewDouble("duration", &c.Dynamics.Duration),
		schema.NewInt("steps", &c.Dynamics.Steps),
	)

	c.pair = root.Section("pair").Add(
		schema.NewInt("nbins", &c.Pair.NBins),
		schema.NewDouble("cutoff", &c.Pair.Cutoff),
	)
	c.ang = root.Section("angle").Add(
		schema.NewInt("nbins", &c.Angle.NBins),
		schema.NewDouble("cutoff", &c.Angle.Cutoff),
	)

	pot := &c.Potential
	root.Section("potential").Add(
		schema.NewArray2D("epsilon", pot.epsilon[:], MaxSpecies, MaxSpecies),
		schema.NewArray2D("sigma", pot.sigma[:], MaxSpecies, MaxSpecies),
		schema.NewIntList("ids", pot.ids[:], &pot.nIDs),
	).Section("threebody").Add(
		schema.NewArray3D("lambda", pot.ThreeBody.lambda[:], MaxSpecies, MaxSpecies, MaxSpecies),
		schema.NewDouble("cos0", &pot.ThreeBody.Cos0),
	)

	root.Section("thermostat", schema.WithNotify(&c.Thermostat.Enabled)).Add(
		schema.NewDouble("temperature", &c.Thermostat.Temperature),
		schema.NewDouble("tau", &c.Thermostat.Tau),
	)

	c.root = root
}

func (c *Config) Title() string { return schema.CString(c.title[:]) }

func (c *Config) Integrator() string { return schema.FString(c.integrator[:]) }

func (c *Config) Temperatures() []float64 {
	return append([]float64(nil), c.temperatures[:c.nTemps]...)
}

func (c *Config) Species() []string {
	return schema.FStrings(c.species[:], SpeciesWidth, int(c.nSpecies))
}

func (c *Config) Masses() []float64 {
	return append([]float64(nil), c.masses[:c.nMasses]...)
}

// Epsilon is the pair energy scale between species i and j.
func (c *Config) Epsilon(i, j int) float64 {
	return c.Potential.epsilon[i+j*MaxSpecies]
}

func (c *Config) Sigma(i, j int) float64 {
	return c.Potential.sigma[i+j*MaxSpecies]
}

func (c *Config) IDs() []int32 {
	return append([]int32(nil), c.Potential.ids[:c.Potential.nIDs]...)
}

// Lambda is the three-body strength for the triplet (i, j, k).
func (c *Config) Lambda(i, j, k int) float64 {
	return c.Potential.ThreeBody.lambda[i+(j+k*MaxSpecies)*MaxSpecies]
}

// PairParams reports the pair distribution parameters and whether the pair
// section was present in the input.
func (c *Config) PairParams() (analysis.Params, bool) {
	c.Schema()
	return analysis.Params{Bins: int(c.Pair.NBins), Cutoff: c.Pair.Cutoff}, c.pair.Provided()
}

func (c *Config) AngleParams() (analysis.Params, bool) {
	c.Schema()
	return analysis.Params{Bins: int(c.Angle.NBins), Cutoff: c.Angle.Cutoff}, c.ang.Provided()
}
