// Command voxelgen generates the terrain around a point and prints a
// top-down map of it, plus generation diagnostics. It is the standalone
// driver for the world generator; a game client would replace its main loop
// with its own.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"voxelgen/internal/config"
	"voxelgen/internal/core"
	"voxelgen/internal/profiling"
	"voxelgen/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a world config yaml; defaults apply when empty")
		seed       = flag.Int64("seed", 0, "world seed, overriding the config when nonzero")
		debugPos   = flag.String("debug", "", "world position x,y,z to describe in detail")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *configPath, *seed, *debugPos); err != nil {
		log.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, configPath string, seed int64, debugPos string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	w, err := world.New(cfg, log)
	if err != nil {
		return err
	}
	defer w.Close()

	center := core.ChunkPos{}
	start := time.Now()
	w.StreamAround(center)
	for w.PendingCount() > 0 {
		if w.ApplyResults() == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	log.Info("area generated",
		"chunks", w.ChunkCount(),
		"radius", cfg.StreamRadius,
		"elapsed", time.Since(start),
		"profile", profiling.Summary(4))

	printSurfaceMap(w, cfg)

	if debugPos != "" {
		var x, y, z int32
		if _, err := fmt.Sscanf(debugPos, "%d,%d,%d", &x, &y, &z); err != nil {
			return fmt.Errorf("bad -debug position %q: %w", debugPos, err)
		}
		w.Generator().DebugInfo(os.Stdout, x, y, z)
	}
	return nil
}

// surfaceChars maps a surface block to its map glyph.
var surfaceChars = map[core.BlockType]rune{
	core.BlockTypeWater:       '~',
	core.BlockTypeSand:        '.',
	core.BlockTypeSandstone:   '.',
	core.BlockTypeGrass:       '"',
	core.BlockTypePodzol:      '\'',
	core.BlockTypeDirt:        ',',
	core.BlockTypeGravel:      ':',
	core.BlockTypeStone:       '^',
	core.BlockTypeOakLeaves:   'T',
	core.BlockTypePineLeaves:  'A',
	core.BlockTypeOakLog:      't',
	core.BlockTypePineLog:     't',
	core.BlockTypePlanks:      '#',
	core.BlockTypeCobblestone: 'o',
}

// printSurfaceMap renders the loaded area top-down, one character per
// 2-block cell of the center region.
func printSurfaceMap(w *world.World, cfg config.Config) {
	const half = 64
	top := (cfg.MaxChunkY + 1) * core.ChunkSide
	bottom := cfg.MinChunkY * core.ChunkSide

	var sb strings.Builder
	for z := int32(-half); z < half; z += 2 {
		for x := int32(-half); x < half; x += 2 {
			ch := ' '
			for y := top - 1; y >= bottom; y-- {
				b := w.Block(x, y, z)
				if b == core.BlockTypeAir {
					continue
				}
				if c, ok := surfaceChars[b]; ok {
					ch = c
				} else {
					ch = '?'
				}
				break
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte('\n')
	}
	fmt.Print(sb.String())
}
