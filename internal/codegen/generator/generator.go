// Package generator runs a generation: it loads the metadata of a resource,
// builds the fragments, renders the templates of the requested variant and
// writes the artifacts.
package generator

import (
	"context"
	"fmt"
	"go/format"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nsxt-tools/policygen/internal/codegen/common"
	cgerrors "github.com/nsxt-tools/policygen/internal/codegen/errors"
	"github.com/nsxt-tools/policygen/internal/codegen/generator/terraform"
	"github.com/nsxt-tools/policygen/internal/codegen/meta"
	"github.com/nsxt-tools/policygen/internal/codegen/openapi"
	"github.com/nsxt-tools/policygen/internal/codegen/render"
	"github.com/nsxt-tools/policygen/internal/codegen/scanner"
	"github.com/nsxt-tools/policygen/internal/codegen/templates"
)

// Config describes one generator.
type Config struct {
	SDKPath       string   // model declarations file
	OutputDir     string   // artifact directory, created when missing
	TemplateDir   string   // optional template overrides
	APISpec       string   // optional companion OpenAPI document
	Abbreviations []string // kept unsplit by the naming transform
	OrderedLists  bool
	Descriptions  bool
	Format        bool // run go/format on Go artifacts
}

type Generator struct {
	cfg       Config
	namer     common.Namer
	templates *templates.Source
	logger    *slog.Logger
}

// Output is a rendered artifact.
type Output struct {
	Path    string
	Content []byte
}

func New(cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	abbrs := cfg.Abbreviations
	if abbrs == nil {
		abbrs = common.DefaultAbbreviations
	}
	return &Generator{
		cfg:       cfg,
		namer:     common.NewNamer(abbrs...),
		templates: templates.NewSource(cfg.TemplateDir),
		logger:    logger,
	}
}

// LoadMetadata loads resource from the declarations file and applies the
// companion OpenAPI document when one is configured.
func (g *Generator) LoadMetadata(ctx context.Context, resource string) (*meta.Metadata, error) {
	g.logger.Info("Loading resource metadata", "resource", resource, "sdk", g.cfg.SDKPath)
	g.logger.Debug("Naming abbreviations", "abbreviations", g.namer.Abbreviations())

	opts := scanner.DefaultOptions()
	opts.Namer = g.namer
	opts.Logger = g.logger
	md, err := scanner.LoadFile(g.cfg.SDKPath, resource, opts)
	if err != nil {
		return nil, fmt.Errorf("load metadata for %s: %w", resource, err)
	}

	if g.cfg.APISpec != "" {
		doc, err := openapi.Load(ctx, g.cfg.APISpec)
		if err != nil {
			return nil, err
		}
		stats := doc.Enrich(md, g.namer)
		g.logger.Info("Applied OpenAPI schema",
			"matched", stats.Matched,
			"required", stats.Required,
			"computed", stats.Computed,
			"described", stats.Described)
		if stats.MissingType > 0 {
			g.logger.Warn("Types without OpenAPI component schema", "count", stats.MissingType)
		}
	}
	return md, nil
}

// ResourceLower is the lower-separated resource name without the "policy_" prefix.
func (g *Generator) ResourceLower(resource string) string {
	return strings.TrimPrefix(g.namer.ToLowerSeparated(resource), "policy_")
}

// Fragments builds every placeholder value for md.
func (g *Generator) Fragments(md *meta.Metadata) render.Fragments {
	b := terraform.New(md, terraform.Options{
		OrderedLists: g.cfg.OrderedLists,
		Descriptions: g.cfg.Descriptions,
	})
	lower := g.ResourceLower(md.Resource)

	return render.Fragments{
		render.Resource:                 md.Resource,
		render.Resources:                md.Resource + "s",
		render.Module:                   common.LowercaseFirst(md.Resource) + "s",
		render.ResourceLower:            lower,
		render.ResourceDash:             strings.TrimPrefix(g.namer.ToDashSeparated(md.Resource), "policy-"),
		render.SchemaAttrs:              b.SchemaAttrs(),
		render.GetAttrsFromSchema:       b.GetAttrsFromSchema(),
		render.SetAttrsInObj:            b.SetAttrsInObj(),
		render.SetObjAttrsInSchema:      b.SetObjAttrsInSchema(),
		render.Enums:                    b.Enums(),
		render.TestAttrs:                b.TestAttrs(false),
		render.TestRequiredAttrs:        b.TestAttrs(true),
		render.TestAttrsCreate:          b.TestAttrsMap(true),
		render.TestAttrsUpdate:          b.TestAttrsMap(false),
		render.TestAttrsSprintf:         b.TestAttrsSprintf(false),
		render.TestRequiredAttrsSprintf: b.TestAttrsSprintf(true),
		render.CheckAttrsCreate:         b.CheckAttrs(true),
		render.CheckAttrsUpdate:         b.CheckAttrs(false),
		render.DocAttrs:                 b.DocAttrs(),
		render.DocAttrsReference:        b.DocAttrsReference(),
	}
}

// Render renders every artifact of variant without touching the disk.
func (g *Generator) Render(md *meta.Metadata, variant templates.Variant) ([]Output, error) {
	if overrides := g.templates.Overrides(); len(overrides) > 0 {
		g.logger.Info("Using template overrides", "dir", g.cfg.TemplateDir, "templates", overrides)
	}
	fragments := g.Fragments(md)
	lower := g.ResourceLower(md.Resource)

	var outputs []Output
	for _, artifact := range templates.Artifacts(variant) {
		text, err := g.templates.Read(artifact.Template)
		if err != nil {
			return nil, err
		}
		content := []byte(render.Substitute(text, fragments))

		path := filepath.Join(g.cfg.OutputDir, artifact.FileName(lower))
		if artifact.GoSource() && g.cfg.Format {
			formatted, err := format.Source(content)
			if err != nil {
				g.logger.Warn("Generated code does not format, keeping it unformatted", "file", path, "error", err)
			} else {
				content = formatted
			}
		}
		outputs = append(outputs, Output{Path: path, Content: content})
	}
	return outputs, nil
}

// Generate loads resource, renders the artifacts of variant and writes them.
// Nothing is written unless every artifact rendered.
func (g *Generator) Generate(ctx context.Context, resource string, variant templates.Variant) ([]string, error) {
	md, err := g.LoadMetadata(ctx, resource)
	if err != nil {
		return nil, err
	}
	outputs, err := g.Render(md, variant)
	if err != nil {
		return nil, fmt.Errorf("render %s %s: %w", variant, resource, err)
	}

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, &cgerrors.OutputWriteError{Path: g.cfg.OutputDir, Err: err}
	}

	written := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if err := os.WriteFile(out.Path, out.Content, 0o644); err != nil {
			return written, &cgerrors.OutputWriteError{Path: out.Path, Err: err}
		}
		g.logger.Debug("Wrote artifact", "file", out.Path, "bytes", len(out.Content))
		written = append(written, out.Path)
	}

	g.logger.Info("Generation complete", "resource", resource, "variant", variant, "files", len(written), "output", g.cfg.OutputDir)
	return written, nil
}
