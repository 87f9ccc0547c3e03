// Command analyze inspects store configuration files in the configs directory.
//
// Without a subcommand it prints a summary of every store: grid size, sections,
// catalog size, and items that cannot be reached on foot from the entrance.
// The validate subcommand reports every problem in each file, and route plans a
// shopping route through a store from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/multierr"

	"github.com/wricardo/storenav/store/config"
	"github.com/wricardo/storenav/store/engine"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "inspect store configurations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing store configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: runAnalyze,
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "validate configuration files and report every error",
				ArgsUsage: "[file...]",
				Action:    runValidate,
			},
			{
				Name:  "route",
				Usage: "plan a shopping route",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Value: config.DefaultConfigName, Usage: "config id in the config directory"},
					&cli.StringFlag{Name: "start", Usage: "start cell as x,y (default: the store entrance)"},
					&cli.StringSliceFlag{Name: "item", Usage: "item id to pick up (repeatable)"},
					&cli.StringFlag{Name: "mode", Value: string(engine.PathWalkable), Usage: "walkable or manhattan"},
				},
				Action: runRoute,
			},
		},
	}
}

// configFiles lists the store files in dir in name order
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func runAnalyze(ctx context.Context, cmd *cli.Command) error {
	files, err := configFiles(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	for _, file := range files {
		fmt.Fprintf(cmd.Root().Writer, "\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(cmd.Root().Writer, file)
	}
	return nil
}

func analyzeConfig(w io.Writer, path string) {
	storeConfig, err := engine.LoadStoreConfig(path)
	if err != nil {
		fmt.Fprintf(w, "Error loading config: %v\n", err)
		return
	}

	eng, err := engine.NewEngine(storeConfig)
	if err != nil {
		fmt.Fprintf(w, "Error building engine: %v\n", err)
		return
	}

	layout := eng.Layout()
	entrance := storeConfig.Entrance.Cell()

	fmt.Fprintf(w, "Name: %s\n", storeConfig.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", layout.Width(), layout.Height())
	fmt.Fprintf(w, "Entrance: (%d, %d)\n", entrance.X, entrance.Y)
	fmt.Fprintf(w, "Sections: %d\n", len(storeConfig.Sections))
	fmt.Fprintf(w, "Items: %d\n", len(storeConfig.Items))
	fmt.Fprintf(w, "Section Priority: %s\n", strings.Join(eng.SectionPriority(), ", "))

	var unreachable []engine.Item
	farthest, farthestSteps := engine.Item{}, -1
	for _, item := range eng.Items() {
		path := eng.FindPath(entrance, item.Cell())
		if engine.IsUnreachable(path, entrance, item.Cell()) {
			unreachable = append(unreachable, item)
			continue
		}
		if steps := len(path) - 1; steps > farthestSteps {
			farthest, farthestSteps = item, steps
		}
	}

	if farthestSteps >= 0 {
		fmt.Fprintf(w, "Farthest Item: %s (%d steps, %d ft)\n",
			farthest.Name, farthestSteps, farthestSteps*eng.Units().FeetPerCell)
	}

	if len(unreachable) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d items cannot be reached on foot from the entrance!\n", len(unreachable))
		for i, item := range unreachable {
			if i < 5 {
				c := item.Cell()
				fmt.Fprintf(w, "   Unreachable: %s [%s] at (%d, %d) in %s\n", item.Name, item.ID, c.X, c.Y, item.Location.Section)
			}
		}
		if len(unreachable) > 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(unreachable)-5)
		}
	} else {
		fmt.Fprintf(w, "✅ All items are reachable from the entrance\n")
	}
}

// validateFile returns every problem found in one configuration file
func validateFile(path string) []error {
	data, err := os.ReadFile(path)
	if err != nil {
		return []error{fmt.Errorf("failed to read file: %w", err)}
	}

	storeConfig, err := engine.ParseStoreConfig(data, filepath.Ext(path))
	if err != nil {
		return []error{err}
	}

	return multierr.Errors(engine.ValidateStoreConfig(storeConfig))
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	files := cmd.Args().Slice()
	if len(files) == 0 {
		var err error
		files, err = configFiles(cmd.String("config-dir"))
		if err != nil {
			return err
		}
	}

	invalid := 0
	for _, file := range files {
		errs := validateFile(file)
		if len(errs) == 0 {
			fmt.Fprintf(w, "✅ %s\n", filepath.Base(file))
			continue
		}

		invalid++
		fmt.Fprintf(w, "❌ %s (%d errors)\n", filepath.Base(file), len(errs))
		for _, err := range errs {
			fmt.Fprintf(w, "   - %v\n", err)
		}
	}

	fmt.Fprintf(w, "\n%d of %d configurations valid\n", len(files)-invalid, len(files))
	if invalid > 0 {
		return fmt.Errorf("%d invalid configuration(s)", invalid)
	}
	return nil
}

// parseCell parses "x,y"
func parseCell(s string) (engine.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return engine.Cell{}, fmt.Errorf("invalid cell %q, expected x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return engine.Cell{}, fmt.Errorf("invalid cell %q, expected x,y", s)
	}
	return engine.Cell{X: x, Y: y}, nil
}

func runRoute(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer

	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	storeConfig, err := manager.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	eng, err := engine.NewEngine(storeConfig)
	if err != nil {
		return err
	}

	mode, err := engine.ParsePathMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	start := storeConfig.Entrance.Cell()
	if s := cmd.String("start"); s != "" {
		if start, err = parseCell(s); err != nil {
			return err
		}
		if !eng.Layout().InBounds(start) {
			return fmt.Errorf("start (%d, %d) is not on the %dx%d grid", start.X, start.Y, eng.Layout().Width(), eng.Layout().Height())
		}
	}

	ids := append(cmd.StringSlice("item"), cmd.Args().Slice()...)
	if len(ids) == 0 {
		return fmt.Errorf("at least one --item is required")
	}
	items, err := eng.LookupItems(ids)
	if err != nil {
		return err
	}

	route := eng.CalculateOptimalRoute(start, items, mode)

	fmt.Fprintf(w, "%s: %d items from (%d, %d), %s\n", storeConfig.Name, len(items), start.X, start.Y, mode)
	for i, segment := range route.Segments {
		status := ""
		if !segment.Reachable {
			status = " [unreachable]"
		}
		fmt.Fprintf(w, "%d. %s (%d ft, %d min)%s\n", i+1, segment.Destination.Name, segment.Distance, segment.Time, status)
		for _, step := range segment.Steps {
			fmt.Fprintf(w, "   - %s\n", step.Instruction)
		}
	}
	fmt.Fprintf(w, "Total: %d ft, about %d min, %d cells walked\n", route.TotalDistance, route.EstimatedTime, len(route.FullPath)-1)
	return nil
}
