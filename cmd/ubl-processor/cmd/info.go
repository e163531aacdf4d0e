package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-processor/internal/processor"
	"github.com/rezonia/ubl-processor/pkg/ublib"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about document files",
	Long: `Display information about files without normalizing them.

Shows:
  - Detected format and MIME type
  - UBL document kind, ID, type code and issue date
  - Line, attachment and signature counts

Examples:
  ubl-processor info invoice.xml
  ubl-processor info invoices/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	proc := newProcessor(false, false)
	for _, file := range files {
		printFileInfo(proc, file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(proc *ublib.Processor, filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	format := processor.DetectFormat(data)
	fmt.Printf("  Format: %s\n", format)
	fmt.Printf("  MIME type: %s\n", processor.DetectMimeType(data))

	if format != processor.FormatXML {
		return
	}

	doc, err := proc.Parse(data)
	if err != nil {
		fmt.Printf("  UBL: no (%v)\n", err)
		if preview := getPreview(string(data), 200); preview != "" {
			fmt.Printf("  Preview: %s\n", preview)
		}
		return
	}

	fmt.Printf("  Kind: %s\n", doc.Kind)
	fmt.Printf("  ID: %s\n", doc.ID)
	if doc.TypeCode != "" {
		fmt.Printf("  Type code: %s\n", doc.TypeCode)
	}
	if doc.CustomizationID != "" {
		fmt.Printf("  Customization: %s\n", doc.CustomizationID)
	}
	if doc.IssueDate != "" {
		fmt.Printf("  Issue date: %s\n", doc.IssueDate)
	}
	fmt.Printf("  Lines: %d\n", len(doc.Lines))
	fmt.Printf("  Attachments: %d\n", len(doc.Attachments))
	fmt.Printf("  Signed: %t\n", doc.Signed)
}

func getPreview(content string, maxLen int) string {
	// Remove XML declaration
	if idx := strings.Index(content, "?>"); idx >= 0 {
		content = content[idx+2:]
	}

	content = strings.Join(strings.Fields(content), " ")

	if len(content) > maxLen {
		content = content[:maxLen] + "..."
	}

	return content
}
