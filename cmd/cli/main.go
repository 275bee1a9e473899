package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"bet-dashboard/internal/analysis"
	"bet-dashboard/internal/app"
	"bet-dashboard/internal/config"
	"bet-dashboard/internal/daily"
	"bet-dashboard/internal/data"
	"bet-dashboard/internal/export"
	"bet-dashboard/internal/logging"
)

const noHistoryMessage = "Nenhum histórico de aposta encontrado."

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "today":
		err = cmdToday(args[1:], stdout)
	case "report":
		err = cmdReport(args[1:], stdout)
	case "breakdown":
		err = cmdBreakdown(args[1:], stdout)
	case "export":
		err = cmdExport(args[1:], stdout)
	case "types":
		err = cmdTypes(args[1:], stdout)
	default:
		usage(stderr)
		return 2
	}

	var notFound *data.DataNotFoundError
	var usageErr *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &notFound):
		fmt.Fprintf(stderr, "warning: %s (%s)\n", noHistoryMessage, notFound.Source)
		return 1
	case errors.As(err, &usageErr):
		fmt.Fprintln(stderr, usageErr.msg)
		return 2
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli today     [--date 2024-01-01] [--stake 100]")
	fmt.Fprintln(w, "  cli report    --type Over [--start 2024-01-01 --end 2024-01-31] [--min-ev 10]")
	fmt.Fprintln(w, "  cli breakdown [--start 2024-01-01 --end 2024-01-31] [--min-ev 10]")
	fmt.Fprintln(w, "  cli export    --type Over [--start ... --end ...] [--min-ev 10] [--out apostas_filtradas.csv]")
	fmt.Fprintln(w, "  cli types")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "common flags:")
	fmt.Fprintln(w, "  --config config.yaml   optional YAML config")
	fmt.Fprintln(w, "  --data apostas_reais.json | postgres://...")
}

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// common holds the flags every subcommand accepts.
type common struct {
	config *string
	data   *string
}

func addCommon(fs *flag.FlagSet) common {
	return common{
		config: fs.String("config", "", "Path to YAML config"),
		data:   fs.String("data", "", "Records source (JSON path or postgres DSN)"),
	}
}

func (c common) load() (*config.Config, *analysis.Engine, error) {
	cfg, err := config.Load(*c.config)
	if err != nil {
		return nil, nil, err
	}
	if *c.data != "" {
		cfg.Data.Source = *c.data
	}
	// Keep the table output clean.
	logging.Setup(cfg.Server.Env, "warn")

	ctx := context.Background()
	ds, err := app.LoadDataset(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewEngine(cfg, ds, nil), nil
}

// filterFlags are shared by report, breakdown and export.
type filterFlags struct {
	fs      *flag.FlagSet
	betType *string
	start   *string
	end     *string
	minEV   *float64
}

func addFilter(fs *flag.FlagSet, withType bool) filterFlags {
	f := filterFlags{
		fs:    fs,
		start: fs.String("start", "", "Start date YYYY-MM-DD (requires --end)"),
		end:   fs.String("end", "", "End date YYYY-MM-DD (requires --start)"),
		minEV: fs.Float64("min-ev", analysis.DefaultMinEV, "Minimum EV, may be negative (default from config)"),
	}
	if withType {
		f.betType = fs.String("type", "", "Bet type")
	}
	return f
}

// isSet reports whether name was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (f filterFlags) criteria(cfg *config.Config) (analysis.Criteria, error) {
	c := analysis.Criteria{MinEV: cfg.Analytics.DefaultMinEV}
	if f.betType != nil {
		if *f.betType == "" {
			return c, &usageError{"--type is required"}
		}
		c.BetType = *f.betType
	}
	if isSet(f.fs, "min-ev") {
		if math.IsNaN(*f.minEV) {
			return c, &usageError{"--min-ev must be a number"}
		}
		c.MinEV = *f.minEV
	}
	if (*f.start == "") != (*f.end == "") {
		return c, &usageError{"--start and --end must be given together"}
	}
	if *f.start != "" {
		loc, _ := cfg.Location()
		s, err := time.ParseInLocation("2006-01-02", *f.start, loc)
		if err != nil {
			return c, &usageError{"--start must be YYYY-MM-DD"}
		}
		e, err := time.ParseInLocation("2006-01-02", *f.end, loc)
		if err != nil {
			return c, &usageError{"--end must be YYYY-MM-DD"}
		}
		c.Range = &analysis.DateRange{Start: s, End: e, Mode: cfg.RangeMode()}
	}
	return c, nil
}

func cmdToday(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("today", flag.ContinueOnError)
	com := addCommon(fs)
	date := fs.String("date", "", "Day to show (YYYY-MM-DD, default today)")
	stake := fs.Float64("stake", daily.DefaultStake, "Stake to simulate (default from config)")
	if err := fs.Parse(args); err != nil {
		return &usageError{err.Error()}
	}

	cfg, engine, err := com.load()
	if err != nil {
		return err
	}
	loc, _ := cfg.Location()
	target := time.Now().In(loc)
	if *date != "" {
		if target, err = time.ParseInLocation("2006-01-02", *date, loc); err != nil {
			return &usageError{"--date must be YYYY-MM-DD"}
		}
	}
	amount := cfg.Simulator.DefaultStake
	if isSet(fs, "stake") {
		amount = *stake
	}
	if !(amount >= cfg.Simulator.MinStake) || math.IsInf(amount, 0) {
		return &usageError{fmt.Sprintf("--stake must be at least %v", cfg.Simulator.MinStake)}
	}

	pick, ok := daily.SelectForDate(engine.Records(), target)
	if !ok {
		fmt.Fprintln(out, "Nenhum palpite registrado para hoje ainda.")
		return nil
	}
	sim, err := daily.Simulate(pick, amount)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", pick.BetType)
	fmt.Fprintf(out, "%s - %s\n", pick.Match, pick.ScheduledTime)
	fmt.Fprintf(out, "Lado: %s | Odd: %v | EV: %v%%\n", pick.Side, pick.Odd, pick.EV)
	fmt.Fprintf(out, "Entrada: R$%s  Retorno Total: R$%s  Lucro Potencial: R$%s\n",
		sim.Stake.StringFixed(2), sim.GrossReturn.StringFixed(2), sim.Profit.StringFixed(2))
	return nil
}

func cmdReport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	com := addCommon(fs)
	ff := addFilter(fs, true)
	if err := fs.Parse(args); err != nil {
		return &usageError{err.Error()}
	}
	cfg, engine, err := com.load()
	if err != nil {
		return err
	}
	c, err := ff.criteria(cfg)
	if err != nil {
		return err
	}

	rep, err := engine.Report(context.Background(), c)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Total de Apostas: %d\n", rep.Count)
	fmt.Fprintf(out, "Odd Média:        %s\n", fmtMean(rep.MeanOdd, ""))
	fmt.Fprintf(out, "EV Médio:         %s\n", fmtMean(rep.MeanEV, "%"))
	fmt.Fprintf(out, "Dias distintos:   %d\n", rep.DistinctDays)
	fmt.Fprintf(out, "Lucro:            R$%s\n", rep.Profit.StringFixed(2))
	fmt.Fprintf(out, "ROI Total:        %.2f%%\n", rep.ROI)
	fmt.Fprintf(out, "Taxa de Acerto:   %.1f%%\n", rep.HitRate)

	if len(rep.Outcomes) > 0 {
		fmt.Fprintln(out, "\nResultados:")
		for _, o := range rep.Outcomes {
			fmt.Fprintf(out, "  %-12s %d\n", o.Result, o.Count)
		}
	}
	if len(rep.DailyEV) > 0 {
		fmt.Fprintln(out, "\nEV Diário:")
		for day, ev := range rep.DailyEVSeq() {
			fmt.Fprintf(out, "  %s %.2f\n", day.Format("2006-01-02"), ev)
		}
	}
	return nil
}

func cmdBreakdown(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("breakdown", flag.ContinueOnError)
	com := addCommon(fs)
	ff := addFilter(fs, false)
	if err := fs.Parse(args); err != nil {
		return &usageError{err.Error()}
	}
	cfg, engine, err := com.load()
	if err != nil {
		return err
	}
	c, err := ff.criteria(cfg)
	if err != nil {
		return err
	}

	ranked, err := engine.Breakdown(context.Background(), c)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-4s %-20s %-6s %-8s %-8s %-10s\n", "rank", "tipo", "count", "roi%", "acerto%", "lucro")
	for i, r := range ranked {
		fmt.Fprintf(out, "%-4d %-20s %-6d %-8.2f %-8.1f %-10s\n",
			i+1, r.BetType, r.Count, r.ROI, r.HitRate, r.Profit.StringFixed(2))
	}
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	com := addCommon(fs)
	ff := addFilter(fs, true)
	outPath := fs.String("out", "", "Output CSV path (default from config)")
	if err := fs.Parse(args); err != nil {
		return &usageError{err.Error()}
	}
	cfg, engine, err := com.load()
	if err != nil {
		return err
	}
	c, err := ff.criteria(cfg)
	if err != nil {
		return err
	}

	path := cfg.Export.Path
	if *outPath != "" {
		path = *outPath
	}
	view := engine.Filter(c)
	if err := export.WriteRecordsCSV(path, view); err != nil {
		return err
	}
	fmt.Fprintf(out, "CSV exportado com sucesso! %d linhas em %s\n", len(view), path)
	return nil
}

func cmdTypes(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("types", flag.ContinueOnError)
	com := addCommon(fs)
	if err := fs.Parse(args); err != nil {
		return &usageError{err.Error()}
	}
	_, engine, err := com.load()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.Join(engine.BetTypes(), "\n"))
	return nil
}

func fmtMean(x float64, suffix string) string {
	if math.IsNaN(x) {
		return "-"
	}
	return fmt.Sprintf("%.2f%s", x, suffix)
}
