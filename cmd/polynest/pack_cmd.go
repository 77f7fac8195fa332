package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"polynest/internal/bin"
	"polynest/internal/config"
	"polynest/internal/emit"
	"polynest/internal/loader"
	"polynest/internal/pack"
)

func newPackCmd() *cobra.Command {
	var (
		configPath    string
		outDir        string
		preserveOrder bool
		useNFP        bool
		rotations     string
	)

	cmd := &cobra.Command{
		Use:   "pack <input-file>",
		Short: "Pack the pieces described in input-file into bins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.OutDir = outDir
			}
			if cmd.Flags().Changed("preserve-order") {
				cfg.PreserveOrder = preserveOrder
			}
			if cmd.Flags().Changed("nfp") {
				cfg.UseNFP = useNFP
			}
			if cmd.Flags().Changed("rotations") {
				rotSet, err := parseRotations(rotations)
				if err != nil {
					return err
				}
				cfg.Rotations = rotSet
			}
			return runPack(cmd.Context(), args[0], cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "JSON config file of packing defaults (see internal/config.PackConfig)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "directory to write Bin-<k>.txt result files to")
	cmd.Flags().BoolVar(&preserveOrder, "preserve-order", false, "pack pieces in input order instead of largest-area-first")
	cmd.Flags().BoolVar(&useNFP, "nfp", false, "also check placements against cached no-fit-polygons, on top of the precise polygon oracle")
	cmd.Flags().StringVar(&rotations, "rotations", "0,90,180,270", "comma-separated rotation set tried at every placement, in degrees")

	return cmd
}

func parseRotations(spec string) ([]float64, error) {
	fields := strings.Split(spec, ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --rotations value %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func runPack(ctx context.Context, path string, cfg config.PackConfig) error {
	runID := uuid.New().String()
	log := logrus.WithField("run", runID)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	input, err := loader.Load(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{
		"pieces": len(input.Pieces),
		"width":  input.Bin.Width(),
		"height": input.Bin.Height(),
	}).Info("loaded input")

	mode := bin.CollisionPrecise
	if cfg.UseNFP {
		mode = bin.CollisionNFP
	}
	opts := pack.Options{CollisionMode: mode, Rotations: cfg.Rotations, Ctx: ctx}

	var result pack.Result
	if cfg.PreserveOrder {
		result = pack.PackPreserveOrder(input.Pieces, input.Bin, opts)
	} else {
		result = pack.Pack(input.Pieces, input.Bin, opts)
	}

	if err := emit.WriteBinFiles(cfg.OutDir, result.Bins); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"bins":      len(result.Bins),
		"unplaced":  len(result.Unplaced),
		"out":       cfg.OutDir,
		"cancelled": result.Cancelled,
	}).Info("packing complete")

	if result.Cancelled {
		log.Warn("run cancelled; wrote partial results")
		return fmt.Errorf("packing cancelled after placing pieces in %d bin(s)", len(result.Bins))
	}

	if len(result.Unplaced) > 0 {
		ids := make([]int, len(result.Unplaced))
		for i, p := range result.Unplaced {
			ids[i] = p.ID()
		}
		log.WithField("ids", ids).Warn("some pieces could not be placed in any bin")
		return fmt.Errorf("%d piece(s) could not be placed in any bin: %v", len(ids), ids)
	}

	return nil
}
