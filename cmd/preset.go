package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-matches/internal/descriptor"
	"github.com/pable/go-lol-matches/internal/preset"
	"github.com/pable/go-lol-matches/internal/report"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved filter presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		report.PrintPresets(os.Stdout, newPresetStore().Load())
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset's filter steps",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetShow,
}

var presetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		err := newPresetStore().Delete(args[0])
		if errors.Is(err, preset.ErrNotFound) {
			return fmt.Errorf("no preset named %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Preset %q deleted.\n", args[0])
		return nil
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <name>",
	Short: "Replay a preset over the dataset and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		records, history, err := loadPresetRecords(args[0])
		if err != nil {
			return err
		}
		report.PrintSummary(os.Stdout, records, history)
		return nil
	},
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetShowCmd)
	presetCmd.AddCommand(presetDeleteCmd)
	presetCmd.AddCommand(presetApplyCmd)
}

func runPresetShow(_ *cobra.Command, args []string) error {
	tokens, err := newPresetStore().Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Preset %q (%d steps):\n", args[0], len(tokens))
	for i, tok := range tokens {
		fmt.Fprintf(os.Stdout, "  %d. %-40s %s\n", i+1, tok, describeStep(descriptor.Decode(tok)))
	}
	return nil
}

// describeStep names the filter a decoded token will run.
func describeStep(d descriptor.Descriptor) string {
	switch s := d.(type) {
	case descriptor.FieldCompare:
		return fmt.Sprintf("%s %s %s", s.Field, s.Op.Symbol(), descriptor.FormatValue(s.Value))
	case descriptor.ListLength:
		return fmt.Sprintf("len(%s) %s %d", s.Field, s.Op.Symbol(), s.Length)
	case descriptor.ChampionPlayed:
		return "played: " + s.Name
	case descriptor.ChampionBanned:
		return "banned: " + s.Name
	case descriptor.TagAtLeast:
		return fmt.Sprintf("tag %s >= %d", s.Tag, s.MinCount)
	case descriptor.Noop:
		return cWarn.Sprintf("ignored (%v)", s.Err)
	}
	return ""
}
