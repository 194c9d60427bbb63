package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/versioncheck/pkg/config"
	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/inventory"
	"github.com/ajxudir/versioncheck/pkg/output"
	"github.com/ajxudir/versioncheck/pkg/pins"
	"github.com/ajxudir/versioncheck/pkg/report"
	"github.com/ajxudir/versioncheck/pkg/verbose"
	"github.com/ajxudir/versioncheck/pkg/warnings"
)

// stdinPath selects stdin as the inventory source.
const stdinPath = "-"

var (
	newerOnlyFlag      bool
	limitFlag          int
	outputFlag         string
	showRequiredByFlag bool
	colorFlag          string
	configFlag         string
	pinsFlag           string
	trackingFlag       string
)

var loadConfigFunc = config.LoadConfig

// reportSettings is the effective configuration of one report run: the
// config file layered under explicitly set flags.
type reportSettings struct {
	inventory      string
	pins           string
	tracking       string
	format         output.Format
	color          output.ColorMode
	newerOnly      bool
	limit          int
	showRequiredBy bool
}

func addReportFlags(c *cobra.Command) {
	c.Flags().BoolVarP(&newerOnlyFlag, "newer-only", "n", false, "Only show packages that are not up to date")
	c.Flags().IntVarP(&limitFlag, "limit", "l", 0, "Report at most this many packages (0 = all)")
	c.Flags().StringVarP(&outputFlag, "output", "o", "human", "Output format: human, json")
	c.Flags().BoolVarP(&showRequiredByFlag, "show-required-by", "r", false, "Show the packages requiring each package")
	c.Flags().StringVar(&colorFlag, "color", "auto", "Colorize the human report: auto, always, never")
	c.Flags().StringVarP(&configFlag, "config", "c", "", "Config file path (default: ./.versioncheck.yml)")
	c.Flags().StringVarP(&pinsFlag, "pins", "p", "", "Pin file whose extends chain replaces the inventory's packages")
	c.Flags().StringVarP(&trackingFlag, "tracking", "t", "", "Tracking file replacing the inventory's tracking section")
}

// runReport executes the report command.
//
// It performs the following operations:
//   - Step 1: Loads the configuration and applies explicitly set flags on top
//   - Step 2: Loads the inventory and replaces sections from pin and tracking files
//   - Step 3: Builds the report
//   - Step 4: Writes it in the selected format
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Optional inventory path ("-" for stdin)
//
// Returns:
//   - error: ExitConfigError for config and input problems, ExitFailure otherwise
func runReport(cmd *cobra.Command, args []string) error {
	workDir, _ := os.Getwd()
	cfg, err := loadConfigFunc(configFlag, workDir)
	if err != nil {
		verbose.WithDocRef("config", "Configuration rejected: "+err.Error())
		if _, ok := errors.IsExitError(err); ok {
			return err
		}
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	settings, err := resolveSettings(cmd, cfg, args)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}

	b, err := loadBundle(settings, cmd.InOrStdin())
	if err != nil {
		return err
	}

	r, err := report.Build(b, report.Options{
		NewerOnly: settings.newerOnly,
		Limit:     settings.limit,
	})
	if err != nil {
		if errors.IsInvalidInput(err) {
			verbose.WithDocRef("inventory", "Inventory rejected: "+err.Error())
		}
		return err
	}
	verbose.WithDocRef("states", fmt.Sprintf("Report built: %d packages, version column %d wide", r.Len(), r.MaxVersionWidth))

	return output.Write(cmd.OutOrStdout(), cmd.ErrOrStderr(), settings.format, r, output.HumanOptions{
		ShowRequiredBy: settings.showRequiredBy,
		Color:          settings.color,
	})
}

// resolveSettings merges the config with the flags the user actually set.
func resolveSettings(cmd *cobra.Command, cfg *config.Config, args []string) (reportSettings, error) {
	flags := cmd.Flags()
	s := reportSettings{
		inventory:      cfg.Inventory,
		pins:           cfg.Pins,
		tracking:       cfg.Tracking,
		newerOnly:      cfg.IsNewerOnly(),
		limit:          cfg.GetLimit(),
		showRequiredBy: cfg.IsShowRequiredBy(),
	}
	formatName := cfg.GetOutput()
	colorName := cfg.GetColor()

	if len(args) > 0 {
		s.inventory = args[0]
	}
	if flags.Changed("pins") {
		s.pins = pinsFlag
	}
	if flags.Changed("tracking") {
		s.tracking = trackingFlag
	}
	if flags.Changed("newer-only") {
		s.newerOnly = newerOnlyFlag
	}
	if flags.Changed("limit") {
		s.limit = limitFlag
	}
	if flags.Changed("show-required-by") {
		s.showRequiredBy = showRequiredByFlag
	}
	if flags.Changed("output") {
		formatName = outputFlag
	}
	if flags.Changed("color") {
		colorName = colorFlag
	}

	if !output.IsValidFormat(formatName) {
		return reportSettings{}, fmt.Errorf("unsupported output format: %s (expected human or json)", formatName)
	}
	s.format = output.ParseFormat(formatName)

	mode, err := output.ParseColorMode(colorName)
	if err != nil {
		return reportSettings{}, err
	}
	s.color = mode

	if s.limit < 0 {
		return reportSettings{}, fmt.Errorf("limit must not be negative, got %d", s.limit)
	}
	if s.inventory == "" && s.pins == "" && s.tracking == "" {
		return reportSettings{}, fmt.Errorf("no inventory given: pass an inventory file, --pins or --tracking")
	}
	return s, nil
}

// loadBundle assembles the inventory from its sources.
//
// Returns:
//   - *inventory.Bundle: The inventory to report on
//   - error: ExitConfigError when a source cannot be read or decoded
func loadBundle(s reportSettings, stdin io.Reader) (*inventory.Bundle, error) {
	b := inventory.NewBundle()

	switch s.inventory {
	case "":
	case stdinPath:
		loaded, err := readInventory(stdin)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load inventory from stdin: %w", err))
		}
		b = loaded
	default:
		loaded, err := inventory.LoadFile(s.inventory)
		if err != nil {
			verbose.WithDocRef("inventory", "Inventory rejected: "+err.Error())
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
		b = loaded
	}

	if s.pins != "" {
		result, err := pins.Load(s.pins)
		if err != nil {
			verbose.WithDocRef("pins", "Pin file rejected: "+err.Error())
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
		warnings.SectionReplaced("packages", s.pins, len(b.Packages))
		result.Apply(b)
		verbose.List("Pin files", result.Files)
	}

	if s.tracking != "" {
		tr, err := inventory.LoadTracking(s.tracking)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, err)
		}
		warnings.SectionReplaced("tracking", s.tracking, len(b.Tracking.Versions))
		b.Tracking = tr
	}

	return b, nil
}

// readInventory decodes an inventory document from r, refusing oversized input.
func readInventory(r io.Reader) (*inventory.Bundle, error) {
	data, err := io.ReadAll(io.LimitReader(r, inventory.DefaultMaxInventorySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > inventory.DefaultMaxInventorySize {
		return nil, fmt.Errorf("inventory too large (max %d bytes)", inventory.DefaultMaxInventorySize)
	}

	b, err := inventory.Parse(data)
	if err != nil {
		return nil, err
	}
	verbose.InventoryLoaded("stdin", len(b.Packages), len(b.Tracking.Versions))
	return b, nil
}
