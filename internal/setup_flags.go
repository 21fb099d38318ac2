package internal

import (
	"errors"
	"flag"
	"fmt"

	"github.com/baalimago/mathobj/internal/config"
	"github.com/baalimago/mathobj/internal/session"
	"github.com/baalimago/mathobj/internal/utils"
)

type Configurations struct {
	Session       string
	ChatModel     string
	Glob          string
	URL           string
	StdinReplace  string
	ExpectReplace bool
	PrintRaw      bool
	OutDir        string
	OutPrefix     string
	NoOpen        bool
}

var defaultFlags = Configurations{
	Session:      session.DefaultID,
	ChatModel:    "",
	Glob:         "",
	URL:          "",
	StdinReplace: "",
	PrintRaw:     false,
	OutDir:       "",
	OutPrefix:    "",
	NoOpen:       false,
}

// parseFlags parses CLI flags into Configurations, returning the remaining args.
// Short and long versions of the same flag are mutually exclusive.
func parseFlags(defaults Configurations, args []string) (Configurations, []string, error) {
	fs := flag.NewFlagSet("mathobj", flag.ContinueOnError)
	fs.String("A-helpful-nonexisting-flag", "there is no default", "This isn't a flag. It's only here to tell you that 'mathobj h/help' gives better overview of usage than 'mathobj -h'.")

	sShort := fs.String("s", defaults.Session, "Set the session to capture into and describe from.")
	sLong := fs.String("session", defaults.Session, "Set the session to capture into and describe from.")

	cmShort := fs.String("cm", defaults.ChatModel, "Set the chat model to use. Mutually exclusive with chat-model flag.")
	cmLong := fs.String("chat-model", defaults.ChatModel, "Set the chat model to use. Mutually exclusive with cm flag.")

	fShort := fs.String("f", defaults.Glob, "Capture the contents of the files matching this glob.")
	fLong := fs.String("file", defaults.Glob, "Capture the contents of the files matching this glob.")

	uShort := fs.String("u", defaults.URL, "Capture the visible text of this web page.")
	uLong := fs.String("url", defaults.URL, "Capture the visible text of this web page.")

	stdinReplaceShort := fs.String("I", defaults.StdinReplace, "Set the string to replace with stdin. (flag syntax borrowed from xargs)")
	stdinReplaceLong := fs.String("replace", defaults.StdinReplace, "Set the string to replace with stdin. (flag syntax borrowed from xargs)")
	expectReplace := fs.Bool("i", defaults.ExpectReplace, "Set to true to replace '{}' with stdin. This is overwritten by -I and -replace. (flag syntax borrowed from xargs)")

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to print the LaTeX source instead of rendering it.")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to print the LaTeX source instead of rendering it.")

	odShort := fs.String("od", defaults.OutDir, "Set the directory where the rendered PDF is saved.")
	odLong := fs.String("out-dir", defaults.OutDir, "Set the directory where the rendered PDF is saved.")

	opShort := fs.String("op", defaults.OutPrefix, "Set the prefix of the saved PDF.")
	opLong := fs.String("out-prefix", defaults.OutPrefix, "Set the prefix of the saved PDF.")

	noOpen := fs.Bool("no-open", defaults.NoOpen, "Set to true to skip opening the rendered PDF.")

	err := fs.Parse(args)
	if err != nil {
		return Configurations{}, []string{}, fmt.Errorf("failed to parse args: %w", err)
	}

	sessionID, err := utils.ReturnNonDefault(*sShort, *sLong, defaults.Session)
	if err != nil {
		return Configurations{}, nil, flagError(err, "s", "session")
	}
	chatModel, err := utils.ReturnNonDefault(*cmShort, *cmLong, defaults.ChatModel)
	if err != nil {
		return Configurations{}, nil, flagError(err, "cm", "chat-model")
	}
	glob, err := utils.ReturnNonDefault(*fShort, *fLong, defaults.Glob)
	if err != nil {
		return Configurations{}, nil, flagError(err, "f", "file")
	}
	url, err := utils.ReturnNonDefault(*uShort, *uLong, defaults.URL)
	if err != nil {
		return Configurations{}, nil, flagError(err, "u", "url")
	}
	stdinReplace, err := utils.ReturnNonDefault(*stdinReplaceShort, *stdinReplaceLong, defaults.StdinReplace)
	if err != nil {
		return Configurations{}, nil, flagError(err, "I", "replace")
	}
	outDir, err := utils.ReturnNonDefault(*odShort, *odLong, defaults.OutDir)
	if err != nil {
		return Configurations{}, nil, flagError(err, "od", "out-dir")
	}
	outPrefix, err := utils.ReturnNonDefault(*opShort, *opLong, defaults.OutPrefix)
	if err != nil {
		return Configurations{}, nil, flagError(err, "op", "out-prefix")
	}
	if glob != "" && url != "" {
		return Configurations{}, nil, flagError(utils.ErrMutuallyExclusive, "file", "url")
	}

	if *expectReplace && stdinReplace == "" {
		stdinReplace = "{}"
	}

	return Configurations{
		Session:       sessionID,
		ChatModel:     chatModel,
		Glob:          glob,
		URL:           url,
		StdinReplace:  stdinReplace,
		ExpectReplace: *expectReplace,
		PrintRaw:      *printRawShort || *printRawLong,
		OutDir:        outDir,
		OutPrefix:     outPrefix,
		NoOpen:        *noOpen,
	}, fs.Args(), nil
}

// applyFlagOverrides only sets the values of conf where the flag isn't the default one, to
// keep the precedence flags > file > default
func applyFlagOverrides(conf *config.Configurations, flagSet, defaultFlags Configurations) {
	if flagSet.ChatModel != defaultFlags.ChatModel {
		conf.Model = flagSet.ChatModel
	}
	if flagSet.OutDir != defaultFlags.OutDir {
		conf.Output.Dir = flagSet.OutDir
	}
	if flagSet.OutPrefix != defaultFlags.OutPrefix {
		conf.Output.Prefix = flagSet.OutPrefix
	}
	if flagSet.NoOpen != defaultFlags.NoOpen {
		conf.NoOpen = flagSet.NoOpen
	}
}

func flagError(err error, shortFlag, longFlag string) error {
	if errors.Is(err, utils.ErrMutuallyExclusive) {
		return fmt.Errorf("flags: '%v' and '%v' are mutually exclusive: %w", shortFlag, longFlag, err)
	}
	return fmt.Errorf("unexpected error for flag '%v': %w", longFlag, err)
}
