package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsxt-tools/policygen/internal/codegen/generator"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

type Inspect struct {
	Resource string `arg:"" help:"SDK model type to inspect (e.g. PolicyWidget)"`

	SourceFlags `embed:""`

	Format    string `help:"Output format" enum:"yaml,json,toml" default:"yaml"`
	Constants bool   `help:"Include the constants referenced by enum attributes"`

	out io.Writer
}

type inspection struct {
	Resource   string            `json:"resource" yaml:"resource" toml:"resource"`
	Attributes []*meta.Attribute `json:"attributes" yaml:"attributes" toml:"attributes"`
	Constants  []meta.Constant   `json:"constants,omitempty" yaml:"constants,omitempty" toml:"constants,omitempty"`
}

// Run is called by Kong when the inspect command is executed.
func (i *Inspect) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return i.inspect(ctx, logger)
}

func (i *Inspect) inspect(ctx context.Context, logger *slog.Logger) error {
	cfg, err := i.generatorConfig()
	if err != nil {
		return err
	}
	md, err := generator.New(cfg, logger).LoadMetadata(ctx, i.Resource)
	if err != nil {
		return err
	}

	report := inspection{Resource: md.Resource, Attributes: md.Attrs}
	if i.Constants {
		report.Constants = referencedConstants(md)
	}

	data, err := encodeReport(report, i.Format)
	if err != nil {
		return err
	}
	w := i.out
	if w == nil {
		w = os.Stdout
	}
	_, err = w.Write(data)
	return err
}

// referencedConstants returns the constants named by enum attributes, in
// source order.
func referencedConstants(md *meta.Metadata) []meta.Constant {
	used := make(map[string]bool)
	for _, a := range md.Attributes() {
		for _, name := range a.Constants {
			used[name] = true
		}
	}
	var out []meta.Constant
	for _, k := range md.Constants.All() {
		if used[k.Name] {
			out = append(out, k)
		}
	}
	return out
}

func encodeReport(report inspection, format string) ([]byte, error) {
	switch normalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(report)
	case "toml":
		return toml.Marshal(report)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
