package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikogura/interview-roadmap/pkg/config"
	"github.com/nikogura/interview-roadmap/pkg/intake"
	"github.com/nikogura/interview-roadmap/pkg/llm"
	"github.com/nikogura/interview-roadmap/pkg/renderer"
	"github.com/nikogura/interview-roadmap/pkg/roadmap"
	"github.com/nikogura/interview-roadmap/pkg/search"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var role string

//nolint:gochecknoglobals // Cobra boilerplate
var jdSource string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var outputPath string

//nolint:gochecknoglobals // Cobra boilerplate
var outputFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var overwrite bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an interview preparation roadmap",
	Long: `Generate an interview preparation roadmap for a company and role.

Company, role and job description are prompted for interactively unless given
as flags. The job description is read until end of input (Ctrl+D).

The roadmap is saved as <company>_<role>_roadmap.json in the output directory,
replacing any previous roadmap of the same name unless --overwrite=false.

Example:
  interview-roadmap generate
  interview-roadmap generate --company "Acme Corp" --role "Staff Engineer" --jd jd.txt
  interview-roadmap generate --company Acme --role SRE --jd https://example.com/jobs/123 --format yaml`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&company, "company", "", "Company name (prompted if not provided)")
	generateCmd.Flags().StringVar(&role, "role", "", "Job role (prompted if not provided)")
	generateCmd.Flags().StringVar(&jdSource, "jd", "", "Job description file or URL (prompted if not provided)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Explicit output file path (overrides --output-dir)")
	generateCmd.Flags().StringVar(&outputFormat, "format", "", "Output format: json or yaml (default from config)")
	generateCmd.Flags().BoolVar(&overwrite, "overwrite", true, "Replace an existing roadmap file of the same name")
}

// session holds everything one generate run needs, so the flow can be
// exercised without cobra globals.
type session struct {
	in        io.Reader
	out       io.Writer
	generator *roadmap.Generator

	company  string
	role     string
	jdSource string

	outputDir  string
	outputPath string
	format     string
	overwrite  bool
	lockDir    string

	verbose bool
	color   bool
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	// No run-wide deadline: search and URL fetches carry their own timeouts
	// and the model call is bounded by the provider.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	// Configuration problems stop the run before any prompt or request.
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			fmt.Fprintf(out, "❌ Missing API key for provider %s\n   %s\n", cfg.ProviderName(), cfg.CredentialHint())
		}
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), getVerbose())

	var completer llm.Completer
	completer, err = llm.New(ctx, llm.Options{
		Provider:    cfg.ProviderName(),
		APIKey:      cfg.APIKey(),
		Model:       cfg.Model(),
		Temperature: cfg.GetTemperature(),
	})
	if err != nil {
		err = errors.Wrap(err, "failed to create LLM client")
		return err
	}

	searcher := search.NewClient(cfg.Search.Endpoint, time.Duration(cfg.Search.TimeoutSeconds)*time.Second, logger)
	generator := roadmap.NewGenerator(searcher, completer, llm.BuildRoadmapPrompt, roadmap.WithLogger(logger))

	s := &session{
		in:         cmd.InOrStdin(),
		out:        out,
		generator:  generator,
		company:    company,
		role:       role,
		jdSource:   jdSource,
		outputDir:  getOutputDir(outputDir, cfg.Defaults.OutputDir),
		outputPath: outputPath,
		format:     getOutputFormat(outputFormat, cfg.Defaults.Format),
		overwrite:  overwrite,
		verbose:    getVerbose(),
		color:      renderer.ShouldColorize(out),
	}

	_, err = s.run(ctx)
	return err
}

// run gathers input, generates, displays and saves the roadmap. It returns the
// path written.
func (s *session) run(ctx context.Context) (path string, err error) {
	fmt.Fprintln(s.out, "🚀 Job Preparation Roadmap Generator")
	fmt.Fprintln(s.out, strings.Repeat("=", 50))

	if s.format != renderer.FormatJSON && s.format != renderer.FormatYAML {
		err = errors.Errorf("invalid format '%s': must be '%s' or '%s'", s.format, renderer.FormatJSON, renderer.FormatYAML)
		return path, err
	}

	var req roadmap.Request
	req, err = s.gatherInput(ctx)
	if err != nil {
		if errors.Is(err, intake.ErrEmptyJobDescription) {
			fmt.Fprintln(s.out, "❌ Error: Job description cannot be empty.")
		}
		return path, err
	}

	fmt.Fprintf(s.out, "🎯 Generating roadmap for %s at %s...\n", req.Role, req.Company)
	fmt.Fprintln(s.out, "🌐 Gathering company information and generating roadmap with AI...")

	result := s.generator.Generate(ctx, req)
	s.reportResult(result)

	err = renderer.Display(s.out, result.Roadmap, renderer.DisplayOptions{Color: s.color})
	if err != nil {
		return path, err
	}

	path = s.targetPath(req)
	err = renderer.Save(result.Roadmap, path, renderer.SaveOptions{Format: s.format, Overwrite: s.overwrite, LockDir: s.lockDir})
	if err != nil {
		if errors.Is(err, renderer.ErrArtifactExists) {
			fmt.Fprintf(s.out, "❌ %s already exists (use --overwrite to replace it)\n", path)
		}
		err = errors.Wrap(err, "failed to save roadmap")
		return path, err
	}

	fmt.Fprintf(s.out, "💾 Roadmap saved as: %s\n", path)
	fmt.Fprintf(s.out, "\n✅ Complete! Roadmap saved to: %s\n", path)
	return path, err
}

func (s *session) gatherInput(ctx context.Context) (req roadmap.Request, err error) {
	prompter := intake.NewPrompter(s.in, s.out)

	req.Company = strings.TrimSpace(s.company)
	if req.Company == "" {
		req.Company, err = prompter.Required("company name", "Company name is required. Please enter a company name.")
		if err != nil {
			return req, err
		}
	}

	req.Role = strings.TrimSpace(s.role)
	if req.Role == "" {
		req.Role, err = prompter.Required("job role", "Job role is required. Please enter a job role.")
		if err != nil {
			return req, err
		}
	}

	if s.jdSource != "" {
		if s.verbose {
			fmt.Fprintf(s.out, "Loading job description from: %s\n", s.jdSource)
		}
		req.JobDescription, err = intake.LoadJobDescription(ctx, s.jdSource)
	} else {
		req.JobDescription, err = prompter.JobDescription()
	}
	if err != nil {
		return req, err
	}

	if s.verbose {
		fmt.Fprintf(s.out, "Job description received (%d characters)\n", len(req.JobDescription))
	}

	return req, err
}

func (s *session) reportResult(result roadmap.Result) {
	if s.verbose {
		fmt.Fprintf(s.out, "Company info (%d characters):\n%s\n", len(result.CompanyInfo), result.CompanyInfo)
	}

	if result.Failure != nil {
		switch result.Failure.Kind {
		case roadmap.FailureLLM:
			fmt.Fprintf(s.out, "❌ LLM call failed: %v\n", result.Failure.Err)
		case roadmap.FailureDecode:
			fmt.Fprintf(s.out, "❌ JSON parsing failed: %v\n", result.Failure.Err)
			fmt.Fprintf(s.out, "Raw response: %s\n", result.Failure.Preview)
		}
		fmt.Fprintln(s.out, "⚠️  Using default roadmap.")
		return
	}

	if s.verbose {
		s.echoDecoded(result.Raw)
		if len(result.Filled) > 0 {
			fmt.Fprintf(s.out, "Filled with defaults: %s\n", strings.Join(result.Filled, ", "))
		}
	}

	fmt.Fprintln(s.out, "✅ Roadmap generated successfully!")
}

// echoDecoded prints the JSON object the model returned, before overrides.
func (s *session) echoDecoded(raw string) {
	obj, err := roadmap.Extract(raw)
	if err != nil {
		return
	}
	formatted := pretty.Pretty([]byte(obj.Raw))
	if s.color {
		formatted = pretty.Color(formatted, nil)
	}
	fmt.Fprintf(s.out, "Model output:\n%s", formatted)
}

func (s *session) targetPath(req roadmap.Request) (path string) {
	if s.outputPath != "" {
		path = s.outputPath
		return path
	}
	path = filepath.Join(s.outputDir, renderer.Filename(req.Company, req.Role, s.format))
	return path
}

func getOutputDir(flagValue, configValue string) (dir string) {
	dir = flagValue
	if dir == "" {
		dir = configValue
	}
	if dir == "" {
		dir = "."
	}
	return dir
}

func getOutputFormat(flagValue, configValue string) (format string) {
	format = strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = configValue
	}
	if format == "" {
		format = renderer.FormatJSON
	}
	return format
}
