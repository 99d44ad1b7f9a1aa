// Command draftctl drives the team draft service from a terminal: log in,
// pick ten players, step through the balanced pairings, adjust them by hand
// and record the game that was played.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"team-draft/internal/api"
	"team-draft/internal/config"
	"team-draft/internal/constants"
	"team-draft/internal/logger"
	"team-draft/internal/session"
)

type app struct {
	client *api.DraftClient
	store  *session.Store
	sess   *session.Session
	log    zerolog.Logger
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"register":   {"register -username NAME -email EMAIL -password PASS", cmdRegister},
		"login":      {"login -email EMAIL -password PASS", cmdLogin},
		"logout":     {"logout", cmdLogout},
		"players":    {"players", cmdPlayers},
		"add-player": {"add-player -name NAME -lol ID -main LANE -sub LANE -score N", cmdAddPlayer},
		"pools":      {"pools", cmdPools},
		"ranking":    {"ranking -pool ID", cmdRanking},
		"generate":   {"generate (-players 1,2,...,10 | -pool ID)", cmdGenerate},
		"reroll":     {"reroll -n COMBINATION", cmdReroll},
		"swap":       {"swap [-remote] TEAM:LANE TEAM:LANE", cmdSwap},
		"show":       {"show", cmdShow},
		"submit":     {"submit -winner 1|2 -kills K1:K2 -gold G1:G2 -lines K/D/A/CS,... [-apply]", cmdSubmit},
		"games":      {"games", cmdGames},
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: draftctl [-v] <command> [flags]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	log := logger.Console(*verbose)
	cfg := config.LoadClient()
	store := session.NewStore(cfg.SessionFile)
	sess, err := store.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load session")
	}

	client := api.NewDraftClient(cfg)
	client.SetToken(sess.Token)
	a := &app{client: client, store: store, sess: sess, log: log}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	log.Debug().Str("api", cfg.APIURL).Str("session", cfg.SessionFile).Str("command", flag.Arg(0)).Msg("running")
	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			log.Debug().Str("request_id", client.LastRequestID()).Int("status", apiErr.Status).Msg("call failed")
		}
		fmt.Fprintf(os.Stderr, "draftctl %s: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
}

func (a *app) save() error {
	if err := a.store.Save(a.sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.log.Debug().Str("path", a.store.Path()).Msg("session saved")
	return nil
}

func (a *app) requireLogin() error {
	if a.sess.Token == "" {
		return errors.New("not logged in, run draftctl login first")
	}
	return nil
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprintf(os.Stderr, "usage: draftctl %s\n", commands[name].usage) }
	return fs
}

func required(fs *flag.FlagSet, names ...string) error {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	var missing []string
	for _, n := range names {
		if !set[n] {
			missing = append(missing, "-"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
