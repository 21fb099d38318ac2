package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/baalimago/mathobj/internal/host/nvimhost"
	"github.com/baalimago/mathobj/internal/render"
	"github.com/baalimago/mathobj/internal/session"
	"github.com/neovim/go-client/nvim/plugin"
)

// setupNvim for either serving the plugin, or printing its manifest with 'nvim manifest <host>'
func setupNvim(flagSet Configurations, args []string) (Runnable, error) {
	if len(args) > 0 && args[0] == "manifest" {
		hostName := "mathobj"
		if len(args) > 1 {
			hostName = args[1]
		}
		return nvimManifest{hostName: hostName, sessionID: flagSet.Session, out: os.Stdout}, nil
	}

	// The rpc channel is stdout, anything else printed there breaks it
	rpcOut := os.Stdout
	os.Stdout = os.Stderr

	conf, err := loadConfig(flagSet)
	if err != nil {
		return nil, err
	}
	return &nvimPlugin{
		in:    os.Stdin,
		out:   rpcOut,
		serve: nvimhost.Serve,
		setup: func(ctx context.Context, p *plugin.Plugin) (*render.Renderer, error) {
			h := nvimhost.New(p.Nvim)
			creds := nvimhost.NewVarProvider(p.Nvim, conf.Credentials())
			registry, renderer, err := newRegistry(h, creds, conf, flagSet.PrintRaw, session.NewMemoryStore())
			if err != nil {
				return nil, err
			}
			nvimhost.Register(ctx, p, registry, flagSet.Session)
			return renderer, nil
		},
	}, nil
}

type nvimPlugin struct {
	in       io.Reader
	out      io.WriteCloser
	serve    func(io.Reader, io.WriteCloser, func(*plugin.Plugin) error) error
	setup    func(context.Context, *plugin.Plugin) (*render.Renderer, error)
	renderer *render.Renderer
}

func (n *nvimPlugin) Run(ctx context.Context) error {
	defer func() {
		if n.renderer == nil {
			return
		}
		if err := n.renderer.Close(); err != nil {
			ancli.PrintWarn(fmt.Sprintf("failed to clean up render workspace: %v\n", err))
		}
	}()
	return n.serve(n.in, n.out, func(p *plugin.Plugin) error {
		r, err := n.setup(ctx, p)
		if err != nil {
			return err
		}
		n.renderer = r
		return nil
	})
}

type nvimManifest struct {
	hostName  string
	sessionID string
	out       io.Writer
}

func (n nvimManifest) Run(ctx context.Context) error {
	manifest, err := nvimhost.Manifest(n.hostName, func(p *plugin.Plugin) error {
		nvimhost.Register(ctx, p, host.NewRegistry(), n.sessionID)
		return nil
	})
	if err != nil {
		return err
	}
	_, err = n.out.Write(manifest)
	return err
}
