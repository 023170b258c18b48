// Command tbprobe probes endgame tablebases for positions given as FEN
// strings, and can download the Syzygy table files for offline use.
//
// Usage:
//
//	tbprobe [flags] FEN...
//	tbprobe --download --max-pieces 5
//
// Configuration is read from flags first, then TBPROBE_* environment
// variables (e.g. TBPROBE_CACHE_SIZE).
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hailam/tbprobe/internal/board"
	"github.com/hailam/tbprobe/internal/storage"
	"github.com/hailam/tbprobe/internal/tablebase"
)

func main() {
	pflag.Bool("download", false, "download tablebase files instead of probing")
	pflag.Int("max-pieces", 5, "piece limit for downloads")
	pflag.Int("concurrency", 4, "parallel downloads")
	pflag.Bool("rank", false, "print the full ranked move list")
	pflag.Bool("no-rule50", false, "ignore the fifty-move rule")
	pflag.Bool("repeated", false, "treat the game as having repeated a position")
	pflag.Int("cache-size", 100000, "in-memory probe cache entries")
	pflag.Bool("no-disk-cache", false, "disable the persistent probe cache")
	pflag.Bool("verbose", false, "debug logging")
	pflag.Parse()

	viper.SetEnvPrefix("tbprobe")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	if viper.GetBool("download") {
		runDownload(log)
		return
	}

	if pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tbprobe [flags] FEN...")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	os.Exit(runProbe(log))
}

func runProbe(log zerolog.Logger) int {
	store := tablebase.NewLichessStore()
	store.SetLogger(log)

	opts := []tablebase.SyzygyOption{tablebase.WithLogger(log)}
	if viper.GetBool("no-rule50") {
		opts = append(opts, tablebase.WithoutRule50())
	}
	prober := tablebase.NewSyzygyProber(store, opts...)

	var disk *storage.Cache
	if !viper.GetBool("no-disk-cache") {
		var err error
		disk, err = storage.OpenCache("")
		if err != nil {
			log.Warn().Err(err).Msg("probe cache unavailable, continuing without it")
		}
	}
	cached := tablebase.NewCachedProber(prober, viper.GetInt("cache-size"), disk)
	defer cached.Close()

	exit := 0
	for _, fen := range pflag.Args() {
		if err := probeOne(cached, prober, fen); err != nil {
			log.Error().Err(err).Str("fen", fen).Msg("probe failed")
			exit = 1
		}
	}
	return exit
}

func probeOne(cached *tablebase.CachedProber, prober *tablebase.SyzygyProber, fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}

	result := cached.Probe(pos)
	if !result.Found {
		return fmt.Errorf("position not in tablebase (%d pieces, limit %d)",
			tablebase.CountPieces(pos), cached.MaxPieces())
	}
	fmt.Printf("%s\n  wdl: %s  dtz: %d\n", fen, result.WDL, result.DTZ)

	root, ranked := prober.ProbeRootDTZ(pos, viper.GetBool("repeated"))
	if root.Found {
		fmt.Printf("  best: %s\n", root.Move)
		if viper.GetBool("rank") {
			for _, rm := range ranked {
				fmt.Printf("    %-7s rank %5d\n", rm.Move, rm.Rank)
			}
		}
	}
	return nil
}

func runDownload(log zerolog.Logger) {
	dir, err := storage.GetSyzygyDir()
	if err != nil {
		log.Fatal().Err(err).Msg("resolving syzygy directory")
	}
	d := tablebase.NewSyzygyDownloader(dir)

	progress := make(chan tablebase.DownloadProgress, 64)
	go func() {
		for p := range progress {
			if p.Done {
				log.Info().Str("file", p.File).Msg("downloaded")
			}
		}
	}()

	maxPieces := viper.GetInt("max-pieces")
	log.Info().Int("max_pieces", maxPieces).Str("dir", dir).
		Int("tables", len(tablebase.TableNames(maxPieces))).Msg("starting download")

	err = d.DownloadAll(context.Background(), maxPieces, viper.GetInt("concurrency"), progress)
	close(progress)
	if err != nil {
		log.Fatal().Err(err).Msg("download failed")
	}
	log.Info().Int("available", len(d.GetAvailableFiles())).Msg("download complete")
}
