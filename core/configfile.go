package core

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the on-disk YAML layout the command-line tool loads: the
// antenna array, the observation's visibility sampling, the recombination
// geometry and the worker-pool sizes, all in one file.
type ConfigFile struct {
	Antennas  [][3]float64 `yaml:"antennas"`
	TimeCount int          `yaml:"time_count"`
	TimeStart float64      `yaml:"time_start"`
	TimeStep  float64      `yaml:"time_step"`
	TimeChunk int          `yaml:"time_chunk"`
	FreqCount int          `yaml:"freq_count"`
	FreqStart float64      `yaml:"freq_start"`
	FreqStep  float64      `yaml:"freq_step"`
	FreqChunk int          `yaml:"freq_chunk"`
	Dec       float64      `yaml:"declination"`
	FOV       float64      `yaml:"field_of_view"`

	ImageSize int `yaml:"image_size"`
	XASize    int `yaml:"xa_size"`
	YBSize    int `yaml:"yb_size"`

	SubgridWorkers   int  `yaml:"subgrid_workers"`
	FacetWorkers     int  `yaml:"facet_workers"`
	DumpBaselineBins bool `yaml:"dump_baseline_bins"`
	DumpSubgridWork  bool `yaml:"dump_subgrid_work"`
}

// LoadConfigFile reads and strictly parses a YAML scheduling configuration:
// unrecognized keys are rejected rather than silently ignored.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cf ConfigFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cf); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cf, nil
}

// AntennaConfig returns the AntennaConfig described by the file.
func (cf *ConfigFile) AntennaConfig() AntennaConfig {
	return AntennaConfig{Count: len(cf.Antennas), Positions: cf.Antennas}
}

// VisSpec returns the VisSpec described by the file. TimeChunk/FreqChunk
// default to 1 when left unset (YAML zero value); with a zero chunk size
// ceilDiv would report zero time/frequency chunks.
func (cf *ConfigFile) VisSpec() *VisSpec {
	timeChunk, freqChunk := cf.TimeChunk, cf.FreqChunk
	if timeChunk == 0 {
		timeChunk = 1
	}
	if freqChunk == 0 {
		freqChunk = 1
	}
	return &VisSpec{
		TimeCount: cf.TimeCount,
		TimeStart: cf.TimeStart,
		TimeStep:  cf.TimeStep,
		TimeChunk: timeChunk,
		FreqCount: cf.FreqCount,
		FreqStart: cf.FreqStart,
		FreqStep:  cf.FreqStep,
		FreqChunk: freqChunk,
		Dec:       cf.Dec,
		FOV:       cf.FOV,
	}
}

// RecombConfig returns the RecombConfig described by the file.
func (cf *ConfigFile) RecombConfig() RecombConfig {
	return NewRecombConfig(cf.ImageSize, cf.XASize, cf.YBSize)
}

// ScheduleConfig returns the ScheduleConfig described by the file.
func (cf *ConfigFile) ScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		SubgridWorkers:   cf.SubgridWorkers,
		FacetWorkers:     cf.FacetWorkers,
		DumpBaselineBins: cf.DumpBaselineBins,
		DumpSubgridWork:  cf.DumpSubgridWork,
	}
}
