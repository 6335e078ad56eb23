package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dosio/internal/catalog"
	"github.com/roach88/dosio/internal/catalogen"
)

// FEMRepoEnv names the environment variable holding the default FEM
// repository for catalog generation.
const FEMRepoEnv = "FEM_REPO"

// CatalogList is the output of catalog list.
type CatalogList struct {
	Fingerprint string   `json:"fingerprint"`
	Kinds       []string `json:"kinds"`
}

// RenderText prints one kind per line.
func (l CatalogList) RenderText(w io.Writer) error {
	for _, k := range l.Kinds {
		if _, err := fmt.Fprintln(w, k); err != nil {
			return err
		}
	}
	return nil
}

// NormalizedName pairs a raw FEM group name with its identifier.
type NormalizedName struct {
	Raw       string `json:"raw"`
	Name      string `json:"name"`
	Valid     bool   `json:"valid"`
	Cataloged bool   `json:"cataloged"`
}

// NormalizeResult is the output of catalog normalize.
type NormalizeResult struct {
	Names []NormalizedName `json:"names"`
}

// RenderText prints "raw -> name" per line, flagging names that are not
// identifiers or not in the compiled catalog.
func (r NormalizeResult) RenderText(w io.Writer) error {
	for _, n := range r.Names {
		note := ""
		switch {
		case !n.Valid:
			note = " (not an identifier)"
		case !n.Cataloged:
			note = " (not in catalog)"
		}
		if _, err := fmt.Fprintf(w, "%s -> %s%s\n", n.Raw, n.Name, note); err != nil {
			return err
		}
	}
	return nil
}

// GenerateResult is the output of catalog gen.
type GenerateResult struct {
	Kinds       int    `json:"kinds"`
	Curated     int    `json:"curated"`
	Discovered  int    `json:"discovered"`
	Fingerprint string `json:"fingerprint"`

	// Stale is set when the generated catalog differs from the one this
	// binary was built with.
	Stale bool `json:"stale"`

	Out    string `json:"out,omitempty"`
	Source string `json:"source,omitempty"`
}

// RenderText prints the generated source when it was not written to a
// file, and a summary otherwise.
func (r GenerateResult) RenderText(w io.Writer) error {
	if r.Out == "" {
		_, err := io.WriteString(w, r.Source)
		return err
	}
	_, err := fmt.Fprintf(w, "Wrote %d kinds to %s (fingerprint %s, stale: %t)\n",
		r.Kinds, r.Out, r.Fingerprint, r.Stale)
	return err
}

// CatalogGenOptions holds flags for the catalog gen command.
type CatalogGenOptions struct {
	*RootOptions
	Curated string
	FEMRepo string
	Out     string
	Package string
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and generate the signal catalog",
	}
	cmd.AddCommand(newCatalogListCommand(rootOpts))
	cmd.AddCommand(newCatalogNormalizeCommand(rootOpts))
	cmd.AddCommand(newCatalogGenCommand(rootOpts))
	return cmd
}

func newCatalogListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List every signal kind of the compiled catalog",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			f.VerboseLog("%d kinds, fingerprint %s", catalog.Len(), catalog.Fingerprint())
			return f.Success(CatalogList{
				Fingerprint: catalog.Fingerprint(),
				Kinds:       catalog.Names(),
			})
		},
	}
}

func newCatalogNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <raw-name>...",
		Short: "Turn FEM group names into signal identifiers",
		Long: `Normalize FEM input/output group names the way catalog generation does:
the name is split on underscores and each segment is capitalized.

Example:
  dosio catalog normalize OSS_M1_lcl MC_M2_lcl_6D`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := NormalizeResult{Names: make([]NormalizedName, 0, len(args))}
			for _, raw := range args {
				name := catalog.Normalize(raw)
				_, cataloged := catalog.Lookup(name)
				res.Names = append(res.Names, NormalizedName{
					Raw:       raw,
					Name:      name,
					Valid:     catalog.IsIdentifier(name),
					Cataloged: cataloged,
				})
			}
			return newFormatter(rootOpts, cmd).Success(res)
		},
	}
}

func newCatalogGenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogGenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the catalog source from the curated list and a FEM",
		Long: `Generate kinds_gen.go from the curated signal list and, when a FEM
repository is given, the input/output groups of its
modal_state_space_model_2ndOrder.zip.

The FEM repository defaults to the FEM_REPO environment variable.

Examples:
  dosio catalog gen --out internal/catalog/kinds_gen.go
  dosio catalog gen --curated extra.cue --fem-repo ~/fem/20230131_1605`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogGen(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curated, "curated", "", "CUE curated list (default: embedded)")
	cmd.Flags().StringVar(&opts.FEMRepo, "fem-repo", os.Getenv(FEMRepoEnv), "FEM repository directory")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.Package, "package", "catalog", "package clause of the generated file")

	return cmd
}

func runCatalogGen(opts *CatalogGenOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	gen, err := catalogen.Generate(catalogen.Options{
		CuratedPath: opts.Curated,
		FEMRepo:     opts.FEMRepo,
		Package:     opts.Package,
	})
	if err != nil {
		_ = f.Error(ErrCodeCatalog, err.Error(), nil)
		return WrapExitError(ExitCommandError, "catalog generation failed", err)
	}
	f.VerboseLog("curated %d, discovered %d, merged %d", gen.Curated, gen.Discovered, len(gen.Names))

	res := GenerateResult{
		Kinds:       len(gen.Names),
		Curated:     gen.Curated,
		Discovered:  gen.Discovered,
		Fingerprint: gen.Fingerprint,
		Stale:       gen.Fingerprint != catalog.Fingerprint(),
		Out:         opts.Out,
	}
	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, gen.Source, 0644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write catalog", err)
		}
	} else {
		res.Source = string(gen.Source)
	}
	return f.Success(res)
}
