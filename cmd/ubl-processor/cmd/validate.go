package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-processor/internal/model"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate UBL documents",
	Long: `Validate one or more UBL documents for completeness and arithmetic.

Checks performed:
  - Required header fields (ID, issue date)
  - Sum of line amounts against LineExtensionAmount
  - LineExtensionAmount - allowances + charges = TaxExclusiveAmount
  - TaxExclusiveAmount + tax = TaxInclusiveAmount
  - TaxInclusiveAmount - prepaid + rounding = PayableAmount
  - Per-line quantity x price and tax percentage (warnings)

Examples:
  ubl-processor validate invoice.xml
  ubl-processor validate *.xml --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Report warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	inputs, err := readInputs(files)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second*time.Duration(len(inputs)))
	defer cancel()

	batch, err := newProcessor(true, strictValidation).ProcessBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("validation aborted: %w", err)
	}

	results := make([]*ValidationResult, 0, len(batch))
	allValid := true
	for _, b := range batch {
		result := &ValidationResult{
			File:     b.Name,
			Valid:    b.Err == nil && b.Report.Valid,
			Errors:   []*model.ValidationError{},
			Warnings: []*model.ValidationError{},
		}
		if b.Err != nil {
			result.Errors = append(result.Errors,
				model.NewValidationError("document", nil, "parse", b.Error))
		} else {
			result.Errors = b.Report.Errors
			result.Warnings = b.Report.Warnings
		}
		if !result.Valid {
			allValid = false
		}
		results = append(results, result)
	}

	if outputFormat == "json" {
		if err := outputJSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string                   `json:"file"`
	Valid    bool                     `json:"valid"`
	Errors   []*model.ValidationError `json:"errors"`
	Warnings []*model.ValidationError `json:"warnings"`
}
