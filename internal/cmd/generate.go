package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nsxt-tools/policygen/internal/codegen/generator"
	"github.com/nsxt-tools/policygen/internal/codegen/templates"
)

// sdkModelFile is the declarations file inside a GOPATH checkout of the SDK.
var sdkModelFile = filepath.Join("src", "github.com", "vmware", "vsphere-automation-sdk-go",
	"services", "nsxt", "model", "ModelPackageTypes.go")

// SourceFlags locate the model declarations and tune how they are read.
type SourceFlags struct {
	SDKPath       string   `name:"sdk-path" help:"Path to the SDK model declarations file (default: the SDK checkout under GOPATH)" env:"POLICYGEN_SDK_PATH"`
	Abbreviations []string `help:"Acronyms kept whole when converting names" default:"IP,LB,SSL,TCP,UDP" sep:"," env:"POLICYGEN_ABBREVIATIONS"`
	APISpec       string   `name:"api-spec" help:"Optional OpenAPI document used to mark required and computed attributes" env:"POLICYGEN_API_SPEC"`
}

// resolveSDKPath returns the configured declarations file, falling back to
// the first GOPATH entry.
func (s SourceFlags) resolveSDKPath() (string, error) {
	if s.SDKPath != "" {
		return s.SDKPath, nil
	}
	gopath := os.Getenv("GOPATH")
	if list := filepath.SplitList(gopath); len(list) > 0 {
		gopath = list[0]
	}
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.New("no --sdk-path given and GOPATH is not set")
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, sdkModelFile), nil
}

func (s SourceFlags) generatorConfig() (generator.Config, error) {
	sdk, err := s.resolveSDKPath()
	if err != nil {
		return generator.Config{}, err
	}
	return generator.Config{
		SDKPath:       sdk,
		APISpec:       s.APISpec,
		Abbreviations: s.Abbreviations,
	}, nil
}

type Generate struct {
	Resource string `arg:"" help:"SDK model type to generate for (e.g. PolicyWidget)"`

	SourceFlags `embed:""`

	Data         bool   `help:"Generate the data source instead of the resource" env:"POLICYGEN_DATA"`
	Output       string `short:"o" help:"Output directory" default:"." env:"POLICYGEN_OUTPUT"`
	TemplateDir  string `help:"Directory with template overrides" env:"POLICYGEN_TEMPLATE_DIR"`
	OrderedLists bool   `help:"Model scalar lists as ordered lists instead of sets" env:"POLICYGEN_ORDERED_LISTS"`
	Descriptions bool   `help:"Copy SDK field comments into the schema descriptions" env:"POLICYGEN_DESCRIPTIONS"`
	NoFormat     bool   `help:"Skip gofmt on generated Go files"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, err := g.generate(ctx, logger)
	return err
}

func (g *Generate) generate(ctx context.Context, logger *slog.Logger) ([]string, error) {
	cfg, err := g.generatorConfig()
	if err != nil {
		return nil, err
	}
	cfg.OutputDir = g.Output
	cfg.TemplateDir = g.TemplateDir
	cfg.OrderedLists = g.OrderedLists
	cfg.Descriptions = g.Descriptions
	cfg.Format = !g.NoFormat

	variant := templates.VariantResource
	if g.Data {
		variant = templates.VariantData
	}

	written, err := generator.New(cfg, logger).Generate(ctx, g.Resource, variant)
	if err != nil {
		return nil, err
	}
	for _, p := range written {
		logger.Info("Generated", "file", p)
	}
	return written, nil
}
