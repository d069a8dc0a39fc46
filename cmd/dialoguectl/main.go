// Command dialoguectl inspects and edits stored dialogue state using the same
// backend configuration as the server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"parley/internal/dialogue/backend"
	"parley/internal/dialogue/models"
	"parley/internal/platform/config"
	"parley/internal/platform/logger"
	"parley/pkg/domain"
	"parley/pkg/requestcontext"
)

// Options is the root command. Struct tags are interpreted by go-flags.
type Options struct {
	Backend    string `short:"b" long:"backend" description:"storage backend (memory, redis, postgres, sqlite, bolt); defaults to PARLEY_STORAGE_BACKEND"`
	Serializer string `short:"s" long:"serializer" description:"state serializer (json, yaml); defaults to PARLEY_SERIALIZER"`
	Verbose    bool   `short:"v" long:"verbose" description:"print storage trace events to stderr"`

	Get    GetCmd    `command:"get" description:"Print a chat's dialogue state as JSON"`
	Set    SetCmd    `command:"set" description:"Replace a chat's dialogue state"`
	Remove RemoveCmd `command:"remove" description:"Delete a chat's dialogue state"`
}

type chatArg struct {
	ChatID string `positional-arg-name:"chat-id" required:"yes"`
}

type GetCmd struct {
	Args chatArg `positional-args:"yes"`
	app  *app
}

type SetCmd struct {
	Step string   `long:"step" required:"yes" description:"dialogue step name"`
	Data []string `long:"data" description:"answer as key=value; repeatable"`
	Args chatArg  `positional-args:"yes"`
	app  *app
}

type RemoveCmd struct {
	Args chatArg `positional-args:"yes"`
	app  *app
}

type app struct {
	ctx    context.Context
	opts   *Options
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := &Options{}
	a := &app{ctx: ctx, opts: opts, stdout: stdout, stderr: stderr}
	opts.Get.app, opts.Set.app, opts.Remove.app = a, a, a

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}

func (a *app) withStore(fn func(ctx context.Context, store backend.Store) error) error {
	ctx := a.ctx
	cfg := config.FromEnv()
	if a.opts.Backend != "" {
		cfg.Storage.Backend = a.opts.Backend
	}
	if a.opts.Serializer != "" {
		cfg.Storage.Serializer = a.opts.Serializer
	}
	cfg.Storage.Trace = a.opts.Verbose
	cfg.Log = config.Log{Level: "warn", Format: "text"}
	if a.opts.Verbose {
		cfg.Log.Level = "trace"
	}

	log, err := logger.New(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	store, closer, err := backend.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(ctx, store)
}

func (c *GetCmd) Execute([]string) error {
	chatID, err := domain.ParseChatID(c.Args.ChatID)
	if err != nil {
		return err
	}
	return c.app.withStore(func(ctx context.Context, store backend.Store) error {
		state, ok, err := store.GetDialogue(ctx, chatID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no dialogue for chat %d", chatID)
		}
		enc := json.NewEncoder(c.app.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	})
}

func (c *SetCmd) Execute([]string) error {
	chatID, err := domain.ParseChatID(c.Args.ChatID)
	if err != nil {
		return err
	}
	data, err := parseData(c.Data)
	if err != nil {
		return err
	}
	req := models.UpdateStateRequest{Step: c.Step, Data: data}
	if err := req.Validate(); err != nil {
		return err
	}
	return c.app.withStore(func(ctx context.Context, store backend.Store) error {
		return store.UpdateDialogue(ctx, chatID, req.ToState(requestcontext.Now(ctx)))
	})
}

func (c *RemoveCmd) Execute([]string) error {
	chatID, err := domain.ParseChatID(c.Args.ChatID)
	if err != nil {
		return err
	}
	return c.app.withStore(func(ctx context.Context, store backend.Store) error {
		return store.RemoveDialogue(ctx, chatID)
	})
}

func parseData(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	data := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --data %q: want key=value", pair)
		}
		data[key] = value
	}
	return data, nil
}
