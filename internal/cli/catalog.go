package cli

// This file implements the catalog inspection commands: list, show and check.
// Export, diff and publish live in export.go and publish.go.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"errcatalog/pkg/catalog"
	"errcatalog/pkg/errx"
)

// CatalogSource yields the catalog the commands operate on.
// *catalog.Accessor implements it.
type CatalogSource interface {
	Get() (*catalog.Catalog, error)
}

// ClientFactory creates the Kubernetes client used by publish.
type ClientFactory func() (client.Client, error)

// CatalogManager runs the catalog commands with injected dependencies.
type CatalogManager struct {
	source    CatalogSource
	cfg       *Config
	newClient ClientFactory
	printer   *Printer
	logger    *zap.Logger
}

// NewCatalogManager creates a CatalogManager. Output goes to out.
func NewCatalogManager(source CatalogSource, cfg *Config, newClient ClientFactory, out io.Writer, logger *zap.Logger) *CatalogManager {
	if cfg == nil {
		cfg = DefaultCLIConfig
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogManager{
		source:    source,
		cfg:       cfg,
		newClient: newClient,
		printer:   &Printer{Writer: out},
		logger:    logger,
	}
}

// DefaultCatalogManager returns a CatalogManager writing to stdout with
// the default configuration and in-cluster or kubeconfig client.
func DefaultCatalogManager(source CatalogSource, logger *zap.Logger) *CatalogManager {
	return NewCatalogManager(source, DefaultCLIConfig, defaultClientFactory, os.Stdout, logger)
}

// NewCatalogCmds builds the catalog subcommands.
func NewCatalogCmds(source CatalogSource, logger *zap.Logger) []*cobra.Command {
	return NewCatalogCmdsWithManager(DefaultCatalogManager(source, logger))
}

// NewCatalogCmdsWithManager returns the catalog subcommands using the provided manager.
func NewCatalogCmdsWithManager(mgr *CatalogManager) []*cobra.Command {
	return []*cobra.Command{
		mgr.newListCmd(),
		mgr.newShowCmd(),
		mgr.newCheckCmd(),
		mgr.newExportCmd(),
		mgr.newDiffCmd(),
		mgr.newPublishCmd(),
	}
}

func (m *CatalogManager) newListCmd() *cobra.Command {
	var domain string
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered error codes",
		Long:  "List every registered error code sorted by domain and code, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.List(domain, tag)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Only list codes of this domain")
	cmd.Flags().StringVar(&tag, "tag", "", "Only list codes carrying this tag")

	return cmd
}

func (m *CatalogManager) newShowCmd() *cobra.Command {
	var problem bool

	cmd := &cobra.Command{
		Use:   "show <domain> <code>",
		Short: "Show one error code",
		Long:  "Show the full descriptor registered for a domain and code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Show(args[0], args[1], problem)
		},
	}

	cmd.Flags().BoolVar(&problem, "problem", false, "Also print the problem body clients receive for this code")

	return cmd
}

func (m *CatalogManager) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the error catalog",
		Long:  "Build the error catalog and report duplicate or incomplete registrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.Check()
		},
	}
}

// load returns the catalog or a CATALOG_BUILD_FAILED error.
func (m *CatalogManager) load() (*catalog.Catalog, error) {
	c, err := m.source.Get()
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrCatalogBuildFailed, err, "error catalog build failed")
		logStructuredError(m.logger, wrappedErr, "Error catalog build failed")
		return nil, wrappedErr
	}
	return c, nil
}

// List prints the registered codes, filtered by domain and tag when set.
func (m *CatalogManager) List(domain, tag string) error {
	c, err := m.load()
	if err != nil {
		m.printer.Error("Failed to build the error catalog")
		return err
	}

	entries := c.All()
	if domain != "" {
		entries = c.FilterByDomain(domain)
	}
	if tag != "" {
		filtered := entries[:0:0]
		for _, d := range entries {
			if d.HasTag(tag) {
				filtered = append(filtered, d)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		m.printer.Warn("No error codes match")
		return nil
	}

	rows := [][]string{{"Domain", "Code", "Variant", "Status", "Message"}}
	for _, d := range entries {
		rows = append(rows, []string{d.Domain(), d.Code(), d.Variant(), statusCell(d), d.Message()})
	}
	m.printer.Table(rows)
	m.printer.Info(fmt.Sprintf("%d error codes", len(entries)))
	return nil
}

// Show prints one descriptor. A miss is a CATALOG_ENTRY_NOT_FOUND error.
func (m *CatalogManager) Show(domain, code string, problem bool) error {
	c, err := m.load()
	if err != nil {
		m.printer.Error("Failed to build the error catalog")
		return err
	}

	d, ok := c.Lookup(domain, code)
	if !ok {
		notFound := errx.FromSentinel(ErrEntryNotFound, lookupSpec, "", nil).
			WithField("domain", domain).
			WithField("code", code)
		m.printer.Error(notFound.Message())
		logStructuredError(m.logger, notFound, "Error code not found")
		return notFound
	}

	rows := [][]string{
		{"Field", "Value"},
		{"Domain", d.Domain()},
		{"Code", d.Code()},
		{"Variant", d.Variant()},
		{"Status", statusCell(d)},
		{"Message", d.Message()},
	}
	if ph := d.Placeholders(); len(ph) > 0 {
		rows = append(rows, []string{"Placeholders", strings.Join(ph, ", ")})
	}
	if tags := d.Tags(); len(tags) > 0 {
		rows = append(rows, []string{"Tags", strings.Join(tags, ", ")})
	}
	if url := docURL(d, m.cfg.DocsBaseURL); url != "" {
		rows = append(rows, []string{"Docs", url})
	}
	m.printer.TableBoxed(rows)

	if problem {
		body, err := json.MarshalIndent(errx.ProblemFrom(errx.New(d)), "", "  ")
		if err != nil {
			return wrapWithSentinel(ErrExportFailed, err, "failed to render problem body")
		}
		m.printer.Println(string(body))
	}
	return nil
}

// Check builds the catalog and prints every violation when it fails.
func (m *CatalogManager) Check() error {
	m.printer.Section("Error catalog check")

	c, err := m.source.Get()
	if err != nil {
		for _, violation := range splitJoined(err) {
			m.printer.Error(errx.Summary(violation))
		}
		wrappedErr := wrapWithSentinelAndContext(ErrCatalogBuildFailed, err,
			"error catalog has violations",
			map[string]any{"violations": len(splitJoined(err))})
		logStructuredError(m.logger, wrappedErr, "Error catalog check failed")
		return wrappedErr
	}

	counts := map[string]int{}
	for _, d := range c.All() {
		counts[d.Domain()]++
	}
	domains := c.Domains()
	sort.Strings(domains)
	rows := [][]string{{"Domain", "Codes"}}
	for _, domain := range domains {
		rows = append(rows, []string{domain, strconv.Itoa(counts[domain])})
	}
	m.printer.Table(rows)
	m.printer.Success(fmt.Sprintf("Catalog OK: %d codes in %d domains", c.Len(), len(domains)))
	return nil
}

// splitJoined returns the errors combined by errors.Join, or err itself.
func splitJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

func statusCell(d errx.Descriptor) string {
	if d.Status() == 0 {
		return "-"
	}
	return fmt.Sprintf("%d %s", d.Status(), d.StatusText())
}

func docURL(d errx.Descriptor, base string) string {
	if d.DocURL() != "" || base == "" {
		return d.DocURL()
	}
	return strings.TrimRight(base, "/") + "/" + d.Domain() + "/" + d.Code()
}
