package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/mathobj/internal/capture"
	"github.com/baalimago/mathobj/internal/config"
	"github.com/baalimago/mathobj/internal/credential"
	"github.com/baalimago/mathobj/internal/extension"
	"github.com/baalimago/mathobj/internal/host"
	"github.com/baalimago/mathobj/internal/host/terminal"
	"github.com/baalimago/mathobj/internal/pipeline"
	"github.com/baalimago/mathobj/internal/render"
	"github.com/baalimago/mathobj/internal/session"
	"github.com/baalimago/mathobj/internal/utils"
)

type Mode int

const (
	HELP Mode = iota
	VERSION
	SELECT
	DESCRIBE
	CLEAR
	COMMANDS
	NVIM
)

// Runnable is a fully set up command
type Runnable interface {
	Run(ctx context.Context) error
}

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "select", "s":
		return SELECT, nil
	case "describe", "d":
		return DESCRIBE, nil
	case "clear", "x":
		return CLEAR, nil
	case "commands", "c":
		return COMMANDS, nil
	case "nvim":
		return NVIM, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", cmd)
	}
}

// Setup parses args and returns whatever the command in args describes. Help and
// version are printed directly, returning utils.ErrUserInitiatedExit.
func Setup(usage string, args []string) (Runnable, error) {
	flagSet, args, err := parseFlags(defaultFlags, args)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return nil, err
	}
	args = args[1:]

	switch mode {
	case HELP:
		fmt.Print(usage)
		return nil, utils.ErrUserInitiatedExit
	case VERSION:
		return nil, printVersion()
	case NVIM:
		return setupNvim(flagSet, args)
	}

	conf, err := loadConfig(flagSet)
	if err != nil {
		return nil, err
	}
	cacheDir, err := utils.GetCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find cache dir: %w", err)
	}
	store := session.NewFileStore(cacheDir)

	if mode == CLEAR {
		return clearSession{store: store, id: flagSet.Session}, nil
	}

	// The renderer workspace is removed once the process exits, so the artifact
	// is always copied somewhere which outlives it
	if conf.Output.Dir == "" {
		conf.Output.Dir = os.TempDir()
	}
	h := terminal.New()
	registry, renderer, err := newRegistry(h, conf.Credentials(), conf, flagSet.PrintRaw, store)
	if err != nil {
		return nil, err
	}
	switch mode {
	case COMMANDS:
		return commandList{registry: registry}, nil
	case SELECT:
		return invocation{
			registry: registry,
			renderer: renderer,
			id:       host.CmdCaptureSelection,
			inv:      selectInvocation(flagSet, args),
		}, nil
	case DESCRIBE:
		return invocation{
			registry: registry,
			renderer: renderer,
			id:       host.CmdDescribeObject,
			inv: host.Invocation{
				SessionID: flagSet.Session,
				Selector:  capture.Stdin(flagSet.StdinReplace, args),
				Source:    "args",
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown mode: %v", mode)
	}
}

func loadConfig(flagSet Configurations) (config.Configurations, error) {
	configDir, err := utils.GetConfigDir()
	if err != nil {
		return config.Configurations{}, fmt.Errorf("failed to find config dir: %w", err)
	}
	conf, err := config.Load(configDir)
	if err != nil {
		return conf, err
	}
	applyFlagOverrides(&conf, flagSet, defaultFlags)
	if misc.Truthy(os.Getenv("DEBUG")) {
		redacted := conf
		if redacted.APIKey != "" {
			redacted.APIKey = "<redacted>"
		}
		ancli.PrintOK(fmt.Sprintf("config: %v\n", debug.IndentedJsonFmt(redacted)))
	}
	return conf, nil
}

// newRegistry wires an extension for h into a fresh registry. The returned renderer
// should be closed once no more commands will run.
func newRegistry(h host.Host, creds credential.Provider, conf config.Configurations, raw bool, store session.Store) (*host.Registry, *render.Renderer, error) {
	renderer := render.New(conf.Compiler)
	output := conf.Output
	p := &pipeline.Pipeline{
		Host:        h,
		Credentials: creds,
		Inferer:     conf.Client(),
		Renderer:    renderer,
		Output:      &output,
		Raw:         raw,
		NoOpen:      conf.NoOpen,
	}
	registry := host.NewRegistry()
	err := extension.New(h, store, p).Register(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return registry, renderer, nil
}

func selectInvocation(flagSet Configurations, args []string) host.Invocation {
	inv := host.Invocation{SessionID: flagSet.Session}
	switch {
	case flagSet.Glob != "":
		inv.Selector = capture.Glob(flagSet.Glob)
		inv.Source = flagSet.Glob
	case flagSet.URL != "":
		inv.Selector = capture.URL(flagSet.URL, &http.Client{Timeout: 30 * time.Second})
		inv.Source = flagSet.URL
	default:
		inv.Selector = capture.Stdin(flagSet.StdinReplace, args)
		inv.Source = "args"
	}
	return inv
}

type invocation struct {
	registry *host.Registry
	renderer *render.Renderer
	id       string
	inv      host.Invocation
}

func (i invocation) Run(ctx context.Context) error {
	defer func() {
		if err := i.renderer.Close(); err != nil {
			ancli.PrintWarn(fmt.Sprintf("failed to clean up render workspace: %v\n", err))
		}
	}()
	return i.registry.Invoke(ctx, i.id, i.inv)
}

type commandList struct {
	registry *host.Registry
}

func (c commandList) Run(_ context.Context) error {
	for _, id := range c.registry.IDs() {
		fmt.Println(id)
	}
	return nil
}

type clearSession struct {
	store session.Store
	id    string
}

func (c clearSession) Run(ctx context.Context) error {
	err := c.store.Delete(ctx, c.id)
	if err != nil {
		if errors.Is(err, session.ErrInvalidID) {
			ancli.Errf("invalid session: '%v'\n", c.id)
		} else {
			ancli.Errf("failed to clear session: %v\n", err)
		}
		return err
	}
	ancli.Okf("cleared session: '%v'\n", c.id)
	return nil
}
