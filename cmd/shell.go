package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/aggregator"
	"github.com/pable/go-lol-matches/internal/descriptor"
	"github.com/pable/go-lol-matches/internal/export"
	"github.com/pable/go-lol-matches/internal/filter"
	"github.com/pable/go-lol-matches/internal/model"
	"github.com/pable/go-lol-matches/internal/preset"
	"github.com/pable/go-lol-matches/internal/report"
	"github.com/pable/go-lol-matches/internal/session"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive explorer",
	Long:  "Load the dataset and open a menu-driven session: filter, sort, inspect statistics, manage presets and save the working set.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	records, err := loadRecords()
	if err != nil {
		return err
	}
	sh := &shell{
		in:        bufio.NewScanner(os.Stdin),
		out:       os.Stdout,
		sess:      session.New(records, logger),
		store:     newPresetStore(),
		log:       logger,
		minGames:  cfg.MinChampionGames,
		topN:      cfg.TopN,
		exportDir: exportDir,
	}
	sh.run()
	return nil
}

// shell is the menu loop over one session.
type shell struct {
	in        *bufio.Scanner
	out       io.Writer
	sess      *session.Session
	store     *preset.Store
	log       *slog.Logger
	minGames  int
	topN      int
	exportDir string
}

type menuEntry struct{ key, desc string }

func (sh *shell) run() {
	cGreeting.Fprintf(sh.out, "lolmatches shell: %d games loaded\n", len(sh.sess.All()))
	for {
		sh.menu("Main Menu", []menuEntry{
			{"1", "summary"},
			{"2", "statistics"},
			{"3", "advanced statistics"},
			{"4", "filter"},
			{"5", "sort"},
			{"6", "filter presets"},
			{"7", "save"},
			{"8", "reset data"},
			{"0", "quit"},
		})
		choice, ok := sh.prompt("choice")
		if !ok {
			fmt.Fprintln(sh.out)
			return
		}
		switch choice {
		case "0", "q", "quit", "exit":
			fmt.Fprintln(sh.out, "Bye.")
			return
		case "1":
			fmt.Fprintf(sh.out, "\nSession: %s\n", sh.sess.ID)
			report.PrintSummary(sh.out, sh.sess.Working(), sh.sess.History())
		case "2":
			report.PrintFieldStats(sh.out, aggregator.FieldStats(sh.sess.Working()))
		case "3":
			sh.advancedStats()
		case "4":
			sh.filterMenu()
		case "5":
			sh.sortMenu()
		case "6":
			sh.presetMenu()
		case "7":
			sh.saveMenu()
		case "8":
			sh.sess.Reset()
			fmt.Fprintf(sh.out, "Data reset: %d games.\n", len(sh.sess.Working()))
		default:
			sh.invalid()
		}
	}
}

func (sh *shell) menu(title string, entries []menuEntry) {
	fmt.Fprintln(sh.out)
	cHeader.Fprintf(sh.out, "=== %s ===\n", title)
	for _, e := range entries {
		fmt.Fprint(sh.out, "  ")
		cCmd.Fprintf(sh.out, "%-3s", e.key)
		fmt.Fprintln(sh.out, e.desc)
	}
}

// prompt reads one trimmed line. ok is false on end of input.
func (sh *shell) prompt(label string) (string, bool) {
	cPrompt.Fprint(sh.out, label)
	cMuted.Fprint(sh.out, "> ")
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.in.Text()), true
}

func (sh *shell) invalid() {
	cWarn.Fprintln(sh.out, "Invalid choice.")
}

func (sh *shell) errorf(format string, args ...any) {
	cError.Fprintf(sh.out, format+"\n", args...)
}

func (sh *shell) results() {
	fmt.Fprintf(sh.out, "%d results after filtering.\n", len(sh.sess.Working()))
}

// chooseIndex prints a numbered list and returns the selected index.
func (sh *shell) chooseIndex(title string, items []string) (int, bool) {
	fmt.Fprintf(sh.out, "\n%s:\n", title)
	for i, it := range items {
		fmt.Fprintf(sh.out, "  %2d. %s\n", i+1, it)
	}
	raw, ok := sh.prompt("number")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 1 || i > len(items) {
		sh.invalid()
		return 0, false
	}
	return i - 1, true
}

func (sh *shell) chooseField(fields []string) (string, bool) {
	i, ok := sh.chooseIndex("Available fields", fields)
	if !ok {
		return "", false
	}
	return fields[i], true
}

func (sh *shell) chooseOp() (filter.Op, bool) {
	syms := make([]string, 0, len(filter.Ops()))
	for _, op := range filter.Ops() {
		syms = append(syms, op.Symbol())
	}
	raw, ok := sh.prompt("operator (" + strings.Join(syms, ", ") + ")")
	if !ok {
		return filter.OpInvalid, false
	}
	op, err := filter.ParseSymbol(raw)
	if err != nil {
		sh.errorf("Invalid operator %q.", raw)
		return filter.OpInvalid, false
	}
	return op, true
}

func (sh *shell) advancedStats() {
	sh.menu("Advanced Statistics", []menuEntry{
		{"1", "overview"},
		{"2", "single champion"},
		{"3", "objectives (first tower, dragon, baron, ...)"},
		{"0", "back"},
	})
	choice, ok := sh.prompt("choice")
	if !ok {
		return
	}
	switch choice {
	case "0":
	case "1":
		report.PrintOverview(sh.out, aggregator.Summarize(sh.sess.Working()), sh.minGames, sh.topN)
	case "2":
		name, ok := sh.prompt("champion name")
		if !ok {
			return
		}
		if name == "" {
			cWarn.Fprintln(sh.out, "Empty name.")
			return
		}
		report.PrintChampion(sh.out, aggregator.Summarize(sh.sess.Working()), name)
	case "3":
		report.PrintObjectives(sh.out, aggregator.Summarize(sh.sess.Working()))
	default:
		sh.invalid()
	}
}

func (sh *shell) filterMenu() {
	for {
		sh.menu("Filter", []menuEntry{
			{"1", "by field"},
			{"2", "by list length"},
			{"3", "by champion played"},
			{"4", "by champion banned"},
			{"5", "by tag (role)"},
			{"0", "back"},
		})
		choice, ok := sh.prompt("filter")
		if !ok {
			return
		}
		var step descriptor.Descriptor
		switch choice {
		case "0":
			return
		case "1":
			field, ok := sh.chooseField(model.FilterableFields)
			if !ok {
				continue
			}
			op, ok := sh.chooseOp()
			if !ok {
				continue
			}
			raw, ok := sh.prompt("value")
			if !ok {
				return
			}
			step = descriptor.NewFieldCompare(field, op, raw)
		case "2":
			field, ok := sh.chooseField(model.ListFields)
			if !ok {
				continue
			}
			op, ok := sh.chooseOp()
			if !ok {
				continue
			}
			raw, ok := sh.prompt("length")
			if !ok {
				return
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				sh.errorf("Invalid length %q.", raw)
				continue
			}
			step = descriptor.ListLength{Field: field, Op: op, Length: n}
		case "3", "4":
			name, ok := sh.prompt("champion name")
			if !ok {
				return
			}
			if name == "" {
				cWarn.Fprintln(sh.out, "Empty name.")
				continue
			}
			if choice == "3" {
				step = descriptor.ChampionPlayed{Name: name}
			} else {
				step = descriptor.ChampionBanned{Name: name}
			}
		case "5":
			tag, ok := sh.prompt("tag (e.g. Assassin)")
			if !ok {
				return
			}
			if tag == "" {
				cWarn.Fprintln(sh.out, "Empty tag.")
				continue
			}
			raw, ok := sh.prompt("minimum champions with this tag")
			if !ok {
				return
			}
			minCount, err := strconv.Atoi(raw)
			if err != nil {
				minCount = 1
			}
			step = descriptor.TagAtLeast{Tag: tag, MinCount: minCount}
		default:
			sh.invalid()
			continue
		}
		sh.sess.Apply(step)
		sh.results()
	}
}

func (sh *shell) sortMenu() {
	field, ok := sh.chooseField(model.SortableFields)
	if !ok {
		return
	}
	order, ok := sh.prompt("order (asc/desc)")
	if !ok {
		return
	}
	sh.sess.Sort(field, strings.EqualFold(order, "desc"))
	fmt.Fprintln(sh.out, "Sorted.")
}

func (sh *shell) presetMenu() {
	for {
		sh.menu("Filter Presets", []menuEntry{
			{"1", "save current filters as a preset"},
			{"2", "load a preset"},
			{"3", "delete a preset"},
			{"4", "list presets"},
			{"0", "back"},
		})
		choice, ok := sh.prompt("presets")
		if !ok {
			return
		}
		switch choice {
		case "0":
			return
		case "1":
			history := sh.sess.History()
			if len(history) == 0 {
				cWarn.Fprintln(sh.out, "No active filters to save.")
				continue
			}
			name, ok := sh.prompt("preset name")
			if !ok {
				return
			}
			if name == "" {
				cWarn.Fprintln(sh.out, "Empty name, preset not saved.")
				continue
			}
			if err := sh.store.Put(name, history); err != nil {
				sh.errorf("error: %v", err)
				continue
			}
			fmt.Fprintf(sh.out, "Preset %q saved.\n", name)
		case "2":
			p := sh.store.Load()
			if len(p) == 0 {
				cWarn.Fprintln(sh.out, "No presets available.")
				continue
			}
			names := p.Names()
			labels := make([]string, len(names))
			for i, n := range names {
				labels[i] = fmt.Sprintf("%s (%d filters)", n, len(p[n]))
			}
			i, ok := sh.chooseIndex("Available presets", labels)
			if !ok {
				continue
			}
			working, history := preset.Apply(sh.sess.All(), p[names[i]], sh.log)
			sh.sess.Restore(working, history)
			fmt.Fprintf(sh.out, "Preset %q applied.\n", names[i])
			fmt.Fprintf(sh.out, "%d results after applying the preset.\n", len(working))
		case "3":
			p := sh.store.Load()
			if len(p) == 0 {
				cWarn.Fprintln(sh.out, "No presets to delete.")
				continue
			}
			names := p.Names()
			i, ok := sh.chooseIndex("Available presets", names)
			if !ok {
				continue
			}
			if err := sh.store.Delete(names[i]); err != nil {
				sh.errorf("error: %v", err)
				continue
			}
			fmt.Fprintf(sh.out, "Preset %q deleted.\n", names[i])
		case "4":
			report.PrintPresets(sh.out, sh.store.Load())
		default:
			sh.invalid()
		}
	}
}

func (sh *shell) saveMenu() {
	entries := make([]menuEntry, 0, len(export.Formats)+1)
	for i, f := range export.Formats {
		entries = append(entries, menuEntry{strconv.Itoa(i + 1), "save as " + strings.ToUpper(string(f))})
	}
	entries = append(entries, menuEntry{"0", "back"})

	for {
		sh.menu("Save", entries)
		choice, ok := sh.prompt("save")
		if !ok || choice == "0" {
			return
		}
		i, err := strconv.Atoi(choice)
		if err != nil || i < 1 || i > len(export.Formats) {
			sh.invalid()
			continue
		}
		path, err := export.Save(sh.exportDir, sh.sess.History(), export.Formats[i-1], sh.sess.Working())
		if errors.Is(err, export.ErrNoRecords) {
			cWarn.Fprintln(sh.out, "No data to save.")
			continue
		}
		if err != nil {
			sh.errorf("error: %v", err)
			continue
		}
		fmt.Fprintf(sh.out, "Saved to %s\n", path)
	}
}
