package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"team-draft/internal/draft"
	"team-draft/internal/draftv1"
)

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	username := fs.String("username", "", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "username", "email", "password"); err != nil {
		return err
	}
	p, err := a.client.Register(ctx, draftv1.RegisterRequest{Username: *username, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("registered %s <%s>\n", p.Username, p.Email)
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "email", "password"); err != nil {
		return err
	}
	resp, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	a.sess.Token = resp.Token
	a.sess.Email = resp.Profile.Email
	if err := a.save(); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", resp.Profile.Username)
	return nil
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	return a.store.Clear()
}

func cmdPlayers(ctx context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.client.ListPlayers(ctx)
	if err != nil {
		return err
	}
	printPlayers(os.Stdout, resp.Players)
	return nil
}

func cmdAddPlayer(ctx context.Context, a *app, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	fs := newFlags("add-player")
	in := draftv1.PlayerInput{}
	fs.StringVar(&in.Name, "name", "", "player name")
	fs.StringVar(&in.LolID, "lol", "", "in-game id")
	fs.StringVar(&in.MainLane, "main", "", "main lane")
	fs.StringVar(&in.SubLane, "sub", "", "secondary lane")
	fs.IntVar(&in.Score, "score", 500, "starting score")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "name", "lol", "main", "sub"); err != nil {
		return err
	}
	p, err := a.client.CreatePlayer(ctx, in)
	if err != nil {
		return err
	}
	fmt.Printf("created player %d %s\n", p.PlayerID, p.Name)
	return nil
}

func cmdPools(ctx context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.client.ListPools(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPLAYERS")
	for _, p := range resp.Pools {
		fmt.Fprintf(w, "%d\t%s\t%d\n", p.PoolID, p.Name, p.PlayersCount)
	}
	return w.Flush()
}

func cmdRanking(ctx context.Context, a *app, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	fs := newFlags("ranking")
	pool := fs.Int64("pool", 0, "pool id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "pool"); err != nil {
		return err
	}
	r, err := a.client.GetPoolRanking(ctx, *pool)
	if err != nil {
		return err
	}
	fmt.Printf("%s: mean %.1f  median %.1f  stddev %.1f\n", r.Name, r.MeanScore, r.MedianScore, r.StandardDeviation)
	printPlayers(os.Stdout, r.Players)
	return nil
}

func cmdGenerate(ctx context.Context, a *app, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	fs := newFlags("generate")
	list := fs.String("players", "", "comma separated player ids")
	pool := fs.Int64("pool", 0, "use the players of this pool")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var ids []int64
	switch {
	case *list != "":
		var err error
		if ids, err = parseIDs(*list); err != nil {
			return err
		}
	case *pool != 0:
		p, err := a.client.GetPool(ctx, *pool)
		if err != nil {
			return err
		}
		for _, pl := range p.Players {
			ids = append(ids, pl.PlayerID)
		}
	default:
		return errors.New("one of -players or -pool is required")
	}
	if len(ids) != draft.PlayersPerGame {
		return fmt.Errorf("need %d players, got %d", draft.PlayersPerGame, len(ids))
	}

	pairing, err := a.client.GenerateTeams(ctx, ids)
	if err != nil {
		return err
	}
	a.sess.PlayerIDs = ids
	a.sess.Pairing = pairing
	printPairing(os.Stdout, pairing)
	return a.save()
}

func cmdReroll(ctx context.Context, a *app, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	fs := newFlags("reroll")
	n := fs.Int("n", 0, "combination number, default is the next one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(a.sess.PlayerIDs) == 0 || a.sess.Pairing == nil {
		return errors.New("nothing generated yet, run draftctl generate first")
	}
	// the server takes a 0-based index; -n is the 1-based number shown to users
	index := *n - 1
	if *n == 0 {
		index = a.sess.Pairing.CurrentCombination % max(a.sess.Pairing.TotalCombinations, 1)
	}
	pairing, err := a.client.RerollTeams(ctx, a.sess.PlayerIDs, index)
	if err != nil {
		return err
	}
	a.sess.Pairing = pairing
	printPairing(os.Stdout, pairing)
	return a.save()
}

// cmdSwap exchanges two seats. The swap is computed locally unless -remote
// asks the server to do it.
func cmdSwap(ctx context.Context, a *app, args []string) error {
	fs := newFlags("swap")
	remote := fs.Bool("remote", false, "let the server compute the swap")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errors.New("two seats are required")
	}
	if a.sess.Pairing == nil {
		return errors.New("nothing generated yet, run draftctl generate first")
	}
	from, err := parseSlot(fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := parseSlot(fs.Arg(1))
	if err != nil {
		return err
	}

	var out *draftv1.Pairing
	if *remote {
		if err := a.requireLogin(); err != nil {
			return err
		}
		out, err = a.client.SwapPlayers(ctx, draftv1.SwapPlayersRequest{Pairing: *a.sess.Pairing, From: from, To: to})
	} else {
		out, err = swapLocal(*a.sess.Pairing, from, to)
	}
	if err != nil {
		return err
	}
	a.sess.Pairing = out
	printPairing(os.Stdout, out)
	return a.save()
}

func swapLocal(p draftv1.Pairing, from, to draftv1.SlotRef) (*draftv1.Pairing, error) {
	pairing, err := draftv1.ToPairing(p)
	if err != nil {
		return nil, err
	}
	a, err := draftv1.ToSlotRef(from)
	if err != nil {
		return nil, err
	}
	b, err := draftv1.ToSlotRef(to)
	if err != nil {
		return nil, err
	}
	swapped, err := pairing.Swap(a, b)
	if err != nil {
		return nil, err
	}
	out := draftv1.FromPairing(swapped)
	return &out, nil
}

func cmdShow(_ context.Context, a *app, _ []string) error {
	if a.sess.Pairing == nil {
		return errors.New("nothing generated yet, run draftctl generate first")
	}
	printPairing(os.Stdout, a.sess.Pairing)
	return nil
}

func cmdSubmit(ctx context.Context, a *app, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	fs := newFlags("submit")
	winner := fs.Int("winner", 0, "winning team, 1 or 2")
	kills := fs.String("kills", "0:0", "team kills as team1:team2")
	gold := fs.String("gold", "0:0", "team gold as team1:team2")
	lines := fs.String("lines", "", "K/D/A/CS for each seat, team 1 TOP..SUP then team 2")
	apply := fs.Bool("apply", false, "apply the score changes right away")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := required(fs, "winner", "lines"); err != nil {
		return err
	}
	if *winner != 1 && *winner != 2 {
		return fmt.Errorf("winner must be 1 or 2, got %d", *winner)
	}
	if a.sess.Pairing == nil {
		return errors.New("nothing generated yet, run draftctl generate first")
	}

	req, err := buildGameRequest(*a.sess.Pairing, *winner == 1, *kills, *gold, *lines)
	if err != nil {
		return err
	}
	rec, err := a.client.CreateGameRecord(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("recorded game %d\n", rec.GameID)
	if *apply {
		if _, err := a.client.ApplyGameRecord(ctx, rec.GameID); err != nil {
			return err
		}
		detail, err := a.client.GetGameRecord(ctx, rec.GameID)
		if err != nil {
			return err
		}
		printGame(os.Stdout, detail)
	}
	return nil
}

func cmdGames(ctx context.Context, a *app, _ []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	resp, err := a.client.ListGameRecords(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLAYED\tWINNER\tKILLS\tAPPLIED")
	for _, g := range resp.GameRecords {
		win := 2
		if g.Team1Won {
			win = 1
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d:%d\t%t\n", g.GameID, g.CreatedAt.Format("2006-01-02 15:04"), win, g.Team1Kills, g.Team2Kills, g.IsApplied)
	}
	return w.Flush()
}

func buildGameRequest(p draftv1.Pairing, team1Won bool, kills, gold, lines string) (draftv1.GameRecordRequest, error) {
	req := draftv1.GameRecordRequest{Team1Won: team1Won}
	var err error
	if req.Team1Kills, req.Team2Kills, err = parsePair(kills); err != nil {
		return req, fmt.Errorf("kills: %w", err)
	}
	if req.Team1Gold, req.Team2Gold, err = parsePair(gold); err != nil {
		return req, fmt.Errorf("gold: %w", err)
	}

	stats := strings.Split(lines, ",")
	if len(stats) != draft.PlayersPerGame {
		return req, fmt.Errorf("need %d K/D/A/CS entries, got %d", draft.PlayersPerGame, len(stats))
	}
	seats := seatOrder(p)
	for i, raw := range stats {
		parts := strings.Split(strings.TrimSpace(raw), "/")
		if len(parts) != 4 {
			return req, fmt.Errorf("entry %d %q is not K/D/A/CS", i+1, raw)
		}
		var n [4]int
		for j, s := range parts {
			if n[j], err = strconv.Atoi(s); err != nil {
				return req, fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
		st := seats[i]
		req.PlayerRecords = append(req.PlayerRecords, draftv1.PlayerGameRecordInput{
			PlayerID:         st.PlayerID,
			TeamNumber:       st.team,
			AssignedPosition: st.AssignedPosition,
			Kills:            n[0],
			Deaths:           n[1],
			Assists:          n[2],
			CS:               n[3],
		})
	}
	return req, nil
}

type seat struct {
	draftv1.TeamPlayer
	team int
}

// seatOrder lists the players of both teams in lane order, team 1 first.
func seatOrder(p draftv1.Pairing) []seat {
	var out []seat
	for _, t := range []draftv1.Team{p.Team1, p.Team2} {
		for _, lane := range draft.Lanes {
			for _, tp := range t.Players {
				if l, ok := draft.ParseLane(tp.AssignedPosition); ok && l == lane {
					out = append(out, seat{TeamPlayer: tp, team: t.TeamNumber})
				}
			}
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("player id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseSlot(s string) (draftv1.SlotRef, error) {
	team, lane, ok := strings.Cut(s, ":")
	if !ok {
		return draftv1.SlotRef{}, fmt.Errorf("seat %q is not TEAM:LANE", s)
	}
	n, err := strconv.Atoi(team)
	if err != nil {
		return draftv1.SlotRef{}, fmt.Errorf("seat %q: %w", s, err)
	}
	ref := draftv1.SlotRef{TeamNumber: n, Position: lane}
	if _, err := draftv1.ToSlotRef(ref); err != nil {
		return draftv1.SlotRef{}, err
	}
	return ref, nil
}

func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not A:B", s)
	}
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func printPlayers(out io.Writer, players []draftv1.Player) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOL ID\tMAIN\tSUB\tSCORE\tSTREAK")
	for _, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%+d\n", p.PlayerID, p.Name, p.LolID, p.MainLane, p.SubLane, p.Score, p.WinLossStreak)
	}
	w.Flush()
}

func printPairing(out io.Writer, p *draftv1.Pairing) {
	fmt.Fprintf(out, "combination %d of %d  difference %d  main lanes %d\n",
		p.CurrentCombination, p.TotalCombinations, p.ScoreDifference, p.MainPositionCount)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LANE\tTEAM 1\t\tTEAM 2\t")
	seats := seatOrder(*p)
	half := len(seats) / 2
	for i := 0; i < half && i+half < len(seats); i++ {
		a, b := seats[i], seats[i+half]
		fmt.Fprintf(w, "%s\t%s %d\t%s\t%s %d\t%s\n", a.AssignedPosition,
			a.Name, a.AdjustedScore, a.PositionType, b.Name, b.AdjustedScore, b.PositionType)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t\t%d\t\n", p.Team1.TotalScore, p.Team2.TotalScore)
	w.Flush()
}

func printGame(out io.Writer, g *draftv1.GameRecord) {
	fmt.Fprintf(out, "game %d (%s model)\n", g.GameID, g.ScoreModel)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tLANE\tPLAYER\tK/D/A\tCS\tBEFORE\tCHANGE\tAFTER")
	for _, l := range g.PlayerRecords {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d/%d\t%d\t%s\t%s\t%s\n", l.TeamNumber, l.AssignedPosition, l.PlayerName,
			l.Kills, l.Deaths, l.Assists, l.CS, optional(l.BeforeScore, false), optional(l.ScoreChange, true), optional(l.AfterScore, false))
	}
	w.Flush()
}

func optional(v *int, signed bool) string {
	switch {
	case v == nil:
		return "-"
	case signed:
		return fmt.Sprintf("%+d", *v)
	default:
		return strconv.Itoa(*v)
	}
}
