// Package nvimhost runs the commands as a Neovim remote plugin.
package nvimhost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/baalimago/mathobj/internal/credential"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
)

// VarAPIKey is the global variable checked for the API key before falling back to the config file
const VarAPIKey = "mathobj_api_key"

// client is the subset of *nvim.Nvim used by the host
type client interface {
	WriteOut(str string) error
	WritelnErr(str string) error
	Command(cmd string) error
	SetBufferLines(buffer nvim.Buffer, start, end int, strict bool, replacement [][]byte) error
}

type Host struct {
	v    client
	open func(string) error
}

func New(v *nvim.Nvim) *Host {
	return &Host{
		v:    v,
		open: host.OpenFile,
	}
}

func (h *Host) Notify(level host.Level, msg string) {
	var err error
	switch level {
	case host.Error:
		err = h.v.WritelnErr("mathobj: " + msg)
	default:
		err = h.v.WriteOut("mathobj: " + msg + "\n")
	}
	if err != nil {
		log.Printf("failed to notify editor: %v", err)
	}
}

func (h *Host) Progress(msg string) func() {
	if err := h.v.WriteOut("mathobj: " + msg + "...\n"); err != nil {
		log.Printf("failed to show progress: %v", err)
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := h.v.Command("echo ''"); err != nil {
				log.Printf("failed to clear progress: %v", err)
			}
		})
	}
}

func (h *Host) OpenArtifact(path string) error {
	return h.open(path)
}

// Emit s into a new scratch buffer
func (h *Host) Emit(s string) {
	err := h.v.Command("new | setlocal buftype=nofile bufhidden=wipe noswapfile filetype=tex")
	if err != nil {
		h.Notify(host.Error, fmt.Sprintf("failed to open scratch buffer: %v", err))
		return
	}
	lines := bytes.Split([]byte(strings.TrimSuffix(s, "\n")), []byte("\n"))
	err = h.v.SetBufferLines(0, 0, -1, true, lines)
	if err != nil {
		h.Notify(host.Error, fmt.Sprintf("failed to write scratch buffer: %v", err))
	}
}

type varGetter interface {
	Var(name string, result any) error
}

// VarProvider reads the API key from g:mathobj_api_key, using Fallback when it's unset or blank
type VarProvider struct {
	v        varGetter
	Fallback credential.Provider
}

func NewVarProvider(v *nvim.Nvim, fallback credential.Provider) *VarProvider {
	return &VarProvider{v: v, Fallback: fallback}
}

func (p *VarProvider) Get(ctx context.Context) (string, error) {
	var raw string
	if err := p.v.Var(VarAPIKey, &raw); err == nil {
		if key, err := credential.Validate(raw); err == nil {
			return key, nil
		}
	}
	if p.Fallback == nil {
		return "", credential.ErrMissingCredential
	}
	return p.Fallback.Get(ctx)
}

// Serve the plugin over in and out until the editor closes the channel. Anything
// written to os.Stdout by the plugin corrupts the channel, so callers should
// redirect it before calling.
func Serve(in io.Reader, out io.WriteCloser, register func(p *plugin.Plugin) error) error {
	v, err := nvim.New(in, out, out, log.Printf)
	if err != nil {
		return fmt.Errorf("failed to create nvim client: %w", err)
	}
	p := plugin.New(v)
	err = register(p)
	if err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	err = v.Serve()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}

// Manifest returns the vimscript which registers the plugin's commands for hostName
func Manifest(hostName string, register func(p *plugin.Plugin) error) ([]byte, error) {
	p := plugin.New(nil)
	err := register(p)
	if err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	return p.Manifest(hostName), nil
}
