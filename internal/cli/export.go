package cli

// This file implements the "export" and "diff" commands.

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"errcatalog/internal/export"
)

func (m *CatalogManager) newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the error catalog",
		Long:  "Export the error catalog as JSON, YAML, Markdown or a ConfigMap manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") && m.cfg.Format != "" {
				format = m.cfg.Format
			}
			if !cmd.Flags().Changed("output") {
				output = m.cfg.Output
			}
			return m.Export(format, output)
		},
	}

	cmd.Flags().StringVar(&format, "format", DefaultFormat, "Output format (json, yaml, markdown, configmap)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")

	return cmd
}

func (m *CatalogManager) newDiffCmd() *cobra.Command {
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two exported catalogs",
		Long:  "Compare two catalogs exported as JSON or YAML and report added, removed and changed codes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Diff(args[0], args[1], exitCode)
		},
	}

	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "Fail when the catalogs differ")

	return cmd
}

// Export writes the catalog in the given format to output, or to the
// manager's writer when output is empty or "-".
func (m *CatalogManager) Export(format, output string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		m.printer.Error(fmt.Sprintf("Unsupported format %q", format))
		logStructuredError(m.logger, err, "Unsupported export format")
		return err
	}

	c, err := m.load()
	if err != nil {
		m.printer.Error("Failed to build the error catalog")
		return err
	}

	doc := export.NewDocument(c, export.Options{DocsBaseURL: m.cfg.DocsBaseURL})
	enc := export.Encoder{
		Format: f,
		Target: export.ConfigMapTarget{Namespace: m.cfg.Namespace, Name: m.cfg.ConfigMapName},
	}

	var buf bytes.Buffer
	if err := enc.Encode(&buf, doc); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrExportFailed, err,
			fmt.Sprintf("failed to encode catalog as %s", f),
			map[string]any{"format": string(f)})
		logStructuredError(m.logger, wrappedErr, "Failed to export catalog")
		return wrappedErr
	}

	if output == "" || output == "-" {
		_, err := m.printer.writer().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrWriteOutputFailed, err,
			fmt.Sprintf("failed to write %s", output),
			map[string]any{"path": output})
		m.printer.Error(fmt.Sprintf("Failed to write %s", output))
		logStructuredError(m.logger, wrappedErr, "Failed to write export")
		return wrappedErr
	}
	m.logger.Debug("Exported error catalog")
	return nil
}

// Diff compares two exported catalogs. With exitCode set a difference is
// reported as a CATALOGS_DIFFER error.
func (m *CatalogManager) Diff(oldPath, newPath string, exitCode bool) error {
	oldDoc, err := m.readDocument(oldPath)
	if err != nil {
		return err
	}
	newDoc, err := m.readDocument(newPath)
	if err != nil {
		return err
	}

	changes := export.Diff(oldDoc, newDoc)
	if changes.Empty() {
		m.printer.Success("Catalogs are identical")
		return nil
	}

	for _, e := range changes.Added {
		m.printer.Printf("%s %s  %s\n", Green("+"), e.Key(), e.Message)
	}
	for _, e := range changes.Removed {
		m.printer.Printf("%s %s  %s\n", Red("-"), e.Key(), e.Message)
	}
	for _, c := range changes.Changed {
		m.printer.Printf("%s %s\n", Yellow("~"), c.Key)
		m.printer.Printf("%s", indent(c.Detail, "    "))
	}
	m.printer.Info(fmt.Sprintf("%d added, %d removed, %d changed",
		len(changes.Added), len(changes.Removed), len(changes.Changed)))

	if exitCode {
		return newWithSentinel(ErrCatalogsDiffer,
			fmt.Sprintf("%d added, %d removed, %d changed",
				len(changes.Added), len(changes.Removed), len(changes.Changed)))
	}
	return nil
}

func (m *CatalogManager) readDocument(path string) (export.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(ErrReadInputFailed, err,
			fmt.Sprintf("failed to open %s", path),
			map[string]any{"path": path})
		m.printer.Error(fmt.Sprintf("Failed to read %s", path))
		logStructuredError(m.logger, wrappedErr, "Failed to read catalog document")
		return export.Document{}, wrappedErr
	}
	defer f.Close()

	doc, err := export.Decode(f, path)
	if err != nil {
		m.printer.Error(fmt.Sprintf("Failed to decode %s", path))
		logStructuredError(m.logger, err, "Failed to decode catalog document")
		return export.Document{}, err
	}
	return doc, nil
}

func indent(s, prefix string) string {
	var buf bytes.Buffer
	for _, line := range bytes.SplitAfter([]byte(s), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		buf.WriteString(prefix)
		buf.Write(line)
	}
	if buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.String()
}
