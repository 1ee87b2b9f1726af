package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/username/datepicker/internal/picker"
	"gopkg.in/yaml.v3"
)

// Descriptor is what an external date widget needs to mirror the engine
// when the picker runs in delegate mode.
type Descriptor struct {
	Mode           string   `yaml:"mode" json:"mode"`
	Open           bool     `yaml:"open" json:"open"`
	Value          string   `yaml:"value,omitempty" json:"value,omitempty"`
	Display        string   `yaml:"display,omitempty" json:"display,omitempty"`
	Format         string   `yaml:"format" json:"format"`
	WeekStart      string   `yaml:"week_start" json:"week_start"`
	ViewMonth      string   `yaml:"view_month" json:"view_month"`
	MinDate        string   `yaml:"min_date,omitempty" json:"min_date,omitempty"`
	MaxDate        string   `yaml:"max_date,omitempty" json:"max_date,omitempty"`
	DisablePast    bool     `yaml:"disable_past" json:"disable_past"`
	DisableFuture  bool     `yaml:"disable_future" json:"disable_future"`
	DisabledDates  []string `yaml:"disabled_dates,omitempty" json:"disabled_dates,omitempty"`
	ScheduledDates []string `yaml:"scheduled_dates,omitempty" json:"scheduled_dates,omitempty"`
}

// Describe snapshots the engine. Disabled and scheduled dates cover the
// current grid only, since those are the days a widget can show.
func Describe(e *picker.Engine) Descriptor {
	policy := e.Policy()
	d := Descriptor{
		Mode:          e.Mode().String(),
		Open:          e.IsOpen(),
		Display:       e.DisplayValue(),
		Format:        e.Format(),
		WeekStart:     e.WeekStart().String(),
		ViewMonth:     e.ViewMonth().Format("YYYY-MM"),
		DisablePast:   policy.DisablePast,
		DisableFuture: policy.DisableFuture,
	}
	if sel := e.Selected(); sel != nil {
		d.Value = sel.String()
	}
	if policy.MinDate != nil {
		d.MinDate = policy.MinDate.String()
	}
	if policy.MaxDate != nil {
		d.MaxDate = policy.MaxDate.String()
	}

	for _, cell := range e.Cells() {
		if cell.IsDisabled {
			d.DisabledDates = append(d.DisabledDates, cell.Date.String())
		}
		if cell.HasSchedule {
			d.ScheduledDates = append(d.ScheduledDates, cell.Date.String())
		}
	}
	return d
}

// Write encodes the descriptor as "yaml" or "json"
func (d Descriptor) Write(w io.Writer, format string) error {
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode descriptor: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode descriptor: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown descriptor format %q", format)
}
