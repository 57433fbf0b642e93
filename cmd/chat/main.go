package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/suPer8Hu/gopherchat/internal/config"
	"github.com/suPer8Hu/gopherchat/internal/logging"
)

const usage = `usage: chat [flags] [command]

commands:
  repl              interactive pages (default)
  register          create an account
  login             log in and store the token
  logout            forget the stored token
  whoami            show the logged in user
  history           print the conversation
  send <text...>    send one message and print the reply

flags:
`

func main() {
	fs := pflag.NewFlagSet("chat", pflag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logging.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		stop()
		log.Fatal().Err(err).Str(logging.FieldStore, cfg.TokenStore).Msg("open token store")
	}

	a, err := newApp(ctx, cfg, store, os.Stdin, os.Stdout)
	if err == nil {
		err = a.run(ctx, fs.Args())
	}

	if cerr := closeStore(); cerr != nil {
		log.Warn().Err(cerr).Msg("close token store")
	}
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
