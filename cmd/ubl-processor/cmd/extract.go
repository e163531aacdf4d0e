package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-processor/internal/processor"
	"github.com/rezonia/ubl-processor/pkg/ublib"
)

var (
	outputFile   string
	timeout      time.Duration
	workers      int
	withValidate bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract UBL documents into normalized records",
	Long: `Extract one or more UBL Invoice or CreditNote files into normalized
extraction records.

Directories are walked for .xml files. Files are processed in parallel;
a file that is not valid UBL is reported in its own result and does not
stop the others. The document ID of each record is the file name without
its extension.

Examples:
  ubl-processor extract invoice.xml
  ubl-processor extract *.xml -o results.json
  ubl-processor extract invoices/ -f table --workers 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for the whole batch")
	extractCmd.Flags().IntVar(&workers, "workers", 0, "Documents processed in parallel (env: UBL_BATCH_WORKERS)")
	extractCmd.Flags().BoolVar(&withValidate, "validate", false, "Attach a validation report to every record")
}

func runExtract(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	printVerbose("Found %d files to process\n", len(files))

	inputs, err := readInputs(files)
	if err != nil {
		return err
	}
	for i := range inputs {
		inputs[i].MimeType = processor.DetectMimeType(inputs[i].Data)
	}

	if workers > 0 {
		cfg.BatchWorkers = workers
	}
	proc := newProcessor(withValidate, false)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	results, err := proc.ProcessBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			printVerbose("%s: %s\n", r.Name, r.Error)
		}
	}
	printVerbose("Processed %d files, %d failed\n", len(results), failed)

	return outputResults(results)
}

func outputResults(results []ublib.BatchResult) error {
	var writer io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "table":
		return outputTable(writer, results)
	case "csv":
		return outputCSV(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputTable(w io.Writer, results []ublib.BatchResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tNUMBER\tKIND\tDATE\tCURRENCY\tTOTAL\tDUE\tLINES")
	fmt.Fprintln(tw, "----\t------\t----\t----\t--------\t-----\t---\t-----")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\t\n", r.Name, r.Error)
			continue
		}

		inv := r.Result.Record.Invoice
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.Name,
			str(inv.InvoiceNumber),
			r.Result.Raw.Invoice.Kind,
			str(inv.InvoiceDate),
			str(inv.Currency),
			amount(inv.Total),
			amount(inv.AmountDue),
			len(r.Result.Record.LineItems),
		)
	}

	return tw.Flush()
}

func outputCSV(w io.Writer, results []ublib.BatchResult) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{
		"file", "document_id", "number", "kind", "date", "due_date", "vendor_name", "vendor_tax_id",
		"customer_name", "customer_tax_id", "currency", "subtotal", "tax_total", "total", "amount_due", "error",
	})

	for _, r := range results {
		if r.Err != nil {
			_ = cw.Write([]string{r.Name, r.DocumentID, "", "", "", "", "", "", "", "", "", "", "", "", "", r.Error})
			continue
		}

		inv := r.Result.Record.Invoice
		_ = cw.Write([]string{
			r.Name,
			r.DocumentID,
			str(inv.InvoiceNumber),
			string(r.Result.Raw.Invoice.Kind),
			str(inv.InvoiceDate),
			str(inv.DueDate),
			str(inv.VendorName),
			str(inv.VendorTaxID),
			str(inv.CustomerName),
			str(inv.CustomerTaxID),
			str(inv.Currency),
			amount(inv.Subtotal),
			amount(inv.TaxTotal),
			amount(inv.Total),
			amount(inv.AmountDue),
			"",
		})
	}

	cw.Flush()
	return cw.Error()
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func amount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
