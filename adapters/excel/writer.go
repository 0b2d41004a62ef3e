package excel

import (
	"fmt"
	"log"

	"goshuffle/internal/analysis"
	"goshuffle/internal/report"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet      = "Summary"
	arrangementsSheet = "Arrangements"
	sequencesSheet    = "RisingSequences"
)

// ExportSimulation writes a simulation result to an xlsx workbook with a
// summary sheet, the rising sequence histogram and, for small decks, the
// observed and expected frequency of every arrangement.
func ExportSimulation(path string, res *analysis.SimulationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	summary := [][]interface{}{
		{"Run", res.RunID.String()},
		{"Fingerprint", res.Fingerprint.String()},
		{"Strategy", res.Strategy},
		{"Deck size", res.DeckSize},
		{"Shuffles per trial", res.Repeats},
		{"Trials", res.Trials},
		{"Workers", res.Workers},
		{"Seed", res.Seed},
		{"Mean displacement", res.Displacement.Mean},
		{"Displacement std dev", res.Displacement.StdDev},
		{"Displacement p95", res.Displacement.P95},
		{"Uniform displacement", analysis.UniformDisplacement(res.DeckSize)},
	}
	if res.TheoreticalTV != nil {
		summary = append(summary, []interface{}{"Theoretical variation distance", *res.TheoreticalTV})
	}
	if res.Fit != nil {
		summary = append(summary,
			[]interface{}{"Chi-square", res.Fit.Statistic},
			[]interface{}{"Degrees of freedom", res.Fit.DegreesOfFreedom},
			[]interface{}{"p-value", res.Fit.PValue},
			[]interface{}{"Consistent", res.Fit.Passed},
		)
	}
	if res.EmpiricalTV != nil {
		summary = append(summary, []interface{}{"Empirical variation distance", *res.EmpiricalTV})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	if _, err := f.NewSheet(sequencesSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sequencesSheet, err)
	}
	sequences := [][]interface{}{{"Rising sequences", "Trials"}}
	for r := 1; r <= res.DeckSize; r++ {
		if c, ok := res.RisingSequences[r]; ok {
			sequences = append(sequences, []interface{}{r, c})
		}
	}
	if err := writeRows(f, sequencesSheet, sequences); err != nil {
		return err
	}

	if res.Counts != nil {
		if _, err := f.NewSheet(arrangementsSheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", arrangementsSheet, err)
		}
		arrangements := [][]interface{}{{"Arrangement", "Count", "Observed", "Expected"}}
		for _, row := range report.Rows(res) {
			arrangements = append(arrangements, []interface{}{row.Key, row.Count, row.Observed, row.Expected})
		}
		if err := writeRows(f, arrangementsSheet, arrangements); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	log.Printf("[ExcelExport] Wrote simulation %s to %s", res.RunID, path)
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
