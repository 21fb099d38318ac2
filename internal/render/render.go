// Package render compiles LaTeX sources into PDF artifacts using a local toolchain.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

var (
	ErrToolchainNotFound = errors.New("rendering toolchain not found")
	ErrCompileFailed     = errors.New("compilation failed")
	ErrInvalidArtifact   = errors.New("invalid artifact")
)

const (
	DefaultCompiler = "pdflatex"
	SourceName      = "mathobj.tex"
	ArtifactExt     = ".pdf"
	// amount of compiler output attached to compile errors
	outputTailRunes = 800
)

// Artifact is a rendered file. It lives inside a directory owned by the Renderer
// until Renderer.Close is called.
type Artifact struct {
	Path string
	Dir  string
}

// Renderer compiles document sources. Every Render call gets a fresh directory inside
// the renderer's workspace.
type Renderer struct {
	Compiler string

	mu        sync.Mutex
	workspace string
	lookup    func(string) (string, error)
	runner    Runner
	verify    func(string) error
	debug     bool
}

func New(compiler string) *Renderer {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	return &Renderer{
		Compiler: compiler,
		lookup:   lookupCompiler,
		runner:   ExecRunner{},
		verify:   verifyPDF,
		debug:    misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("DEBUG_RENDER")),
	}
}

// Render writes source into a fresh directory and compiles it. On any failure the
// directory is removed and no artifact is returned.
func (r *Renderer) Render(ctx context.Context, source string) (Artifact, error) {
	compilerPath, err := r.lookup(r.Compiler)
	if err != nil {
		if !errors.Is(err, ErrToolchainNotFound) {
			err = fmt.Errorf("%w: %v", ErrToolchainNotFound, err)
		}
		return Artifact{}, err
	}
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("found compiler: '%v'\n", compilerPath))
	}

	ws, err := r.ensureWorkspace()
	if err != nil {
		return Artifact{}, err
	}
	dir, err := os.MkdirTemp(ws, "render-")
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to create render dir: %w", err)
	}

	artifact, err := r.compile(ctx, compilerPath, dir, source)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			ancli.PrintWarn(fmt.Sprintf("failed to remove render dir: '%v', err: %v\n", dir, rmErr))
		}
		return Artifact{}, err
	}
	return artifact, nil
}

func (r *Renderer) compile(ctx context.Context, compilerPath, dir, source string) (Artifact, error) {
	srcPath := filepath.Join(dir, SourceName)
	err := os.WriteFile(srcPath, []byte(source), 0o644)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to write document source: %w", err)
	}

	out, err := r.runner.Run(ctx, compilerPath,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory="+dir,
		srcPath,
	)
	if r.debug {
		ancli.PrintOK(fmt.Sprintf("compiler output:\n%v\n", string(out)))
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v, output: %v", ErrCompileFailed, err, tail(string(out), outputTailRunes))
	}

	artifactPath := filepath.Join(dir, strings.TrimSuffix(SourceName, filepath.Ext(SourceName))+ArtifactExt)
	if r.verify != nil {
		if err := r.verify(artifactPath); err != nil {
			return Artifact{}, err
		}
	}
	return Artifact{Path: artifactPath, Dir: dir}, nil
}

func (r *Renderer) ensureWorkspace() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.workspace != "" {
		return r.workspace, nil
	}
	ws, err := os.MkdirTemp("", "mathobj-")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	r.workspace = ws
	return ws, nil
}

// Close removes every artifact rendered so far
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.workspace == "" {
		return nil
	}
	err := os.RemoveAll(r.workspace)
	r.workspace = ""
	if err != nil {
		return fmt.Errorf("failed to remove workspace: %w", err)
	}
	return nil
}

func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return "..." + string(runes[len(runes)-n:])
}
