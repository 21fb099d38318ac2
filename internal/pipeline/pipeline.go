// Package pipeline turns a selection and an object of interest into an opened PDF
// describing the object.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/credential"
	"github.com/baalimago/mathobj/internal/document"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/baalimago/mathobj/internal/prompt"
	"github.com/baalimago/mathobj/internal/render"
)

var (
	ErrEmptySelection = errors.New("empty selection")
	ErrInference      = errors.New("inference failed")
	ErrOpenArtifact   = errors.New("failed to open artifact")
)

type Inferer interface {
	Infer(ctx context.Context, prompt, apiKey string) (string, error)
}

type Renderer interface {
	Render(ctx context.Context, source string) (render.Artifact, error)
}

type Pipeline struct {
	Host        host.Host
	Credentials credential.Provider
	Inferer     Inferer
	Renderer    Renderer
	// Output, if set with a Dir, receives a copy of the artifact which is then opened
	// instead of the original
	Output *render.Output
	// Raw emits the document source through the host instead of rendering it
	Raw bool
	// NoOpen skips opening the artifact
	NoOpen bool
}

// Describe the object of interest using selection as context. Every failure is reported
// to the host exactly once, and returned wrapped so that callers may inspect it.
func (p *Pipeline) Describe(ctx context.Context, selection, object string) error {
	if strings.TrimSpace(selection) == "" {
		return p.fail(host.Info, "No text selected. Capture a selection before describing an object.", ErrEmptySelection)
	}
	if strings.TrimSpace(object) == "" {
		return p.fail(host.Info, "No object selected.", ErrEmptySelection)
	}

	apiKey, err := p.Credentials.Get(ctx)
	if err != nil {
		if errors.Is(err, credential.ErrMissingCredential) {
			return p.fail(host.Info,
				fmt.Sprintf("Please configure your OpenAI API key in the settings ('%v').", credential.SettingName),
				err)
		}
		return p.fail(host.Error, fmt.Sprintf("Failed to read the OpenAI API key: %v", err), err)
	}

	completion, err := p.infer(ctx, prompt.Build(selection, object), apiKey)
	if err != nil {
		return p.fail(host.Error, fmt.Sprintf("Error sending text to GPT: %v", err), fmt.Errorf("%w: %w", ErrInference, err))
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("completion: %v\n", completion))
	}

	doc := document.Assemble(completion)
	if p.Raw {
		p.Host.Emit(doc)
		return nil
	}

	artifact, err := p.Renderer.Render(ctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, render.ErrToolchainNotFound):
			return p.fail(host.Error, "pdflatex not found. Install a TeX distribution and make sure pdflatex is on PATH.", err)
		case errors.Is(err, render.ErrCompileFailed):
			return p.fail(host.Error, fmt.Sprintf("Failed to compile the document: %v", err), err)
		default:
			return p.fail(host.Error, fmt.Sprintf("Failed to render the document: %v", err), err)
		}
	}

	artifactPath := artifact.Path
	if p.Output != nil && p.Output.Dir != "" {
		saved, err := render.Save(artifact, *p.Output)
		if err != nil {
			return p.fail(host.Error, fmt.Sprintf("Failed to save the document: %v", err), err)
		}
		artifactPath = saved
	}

	if p.NoOpen {
		p.Host.Notify(host.Info, fmt.Sprintf("Rendered: %v", artifactPath))
		return nil
	}
	err = p.Host.OpenArtifact(artifactPath)
	if err != nil {
		return p.fail(host.Error,
			fmt.Sprintf("Rendered '%v' but failed to open it: %v", artifactPath, err),
			fmt.Errorf("%w: %w", ErrOpenArtifact, err))
	}
	return nil
}

func (p *Pipeline) infer(ctx context.Context, promptStr, apiKey string) (string, error) {
	stop := p.Host.Progress("Waiting for GPT")
	defer stop()
	return p.Inferer.Infer(ctx, promptStr, apiKey)
}

func (p *Pipeline) fail(level host.Level, msg string, err error) error {
	p.Host.Notify(level, msg)
	return err
}
