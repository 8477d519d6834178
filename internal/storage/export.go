package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/trojansim/internal/resonance"
)

type ExportData struct {
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Propagator string             `json:"propagator"`
	Step       float64            `json:"step"`
	Margin     float64            `json:"margin"`
	Years      int                `json:"years"`
	Reason     string             `json:"reason"`
	Series     []resonance.Sample `json:"series"`
}

func exportData(meta *RunMetadata, series []resonance.Sample) ExportData {
	return ExportData{
		ID:         meta.ID,
		System:     meta.System,
		Propagator: meta.Propagator,
		Step:       meta.Step,
		Margin:     meta.Margin,
		Years:      meta.Years,
		Reason:     meta.Reason,
		Series:     series,
	}
}

func ExportJSON(w io.Writer, meta *RunMetadata, series []resonance.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, series))
}

func ExportJSONFile(path string, meta *RunMetadata, series []resonance.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, series)
}
