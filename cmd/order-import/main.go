package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/app"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/importer"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/file"
)

func main() {
	var (
		cakeFile string
		bookFile string
		toyFile  string
		opts     importer.Options
	)

	flag.StringVar(&cakeFile, "cakes", "", "cake orders file (.csv, .json, .xml, optionally .gz)")
	flag.StringVar(&bookFile, "books", "", "book orders file (.csv, .json, .xml, optionally .gz)")
	flag.StringVar(&toyFile, "toys", "", "toy orders file (.csv, .json, .xml, optionally .gz)")
	flag.BoolVar(&opts.ReassignIDs, "reassign-ids", false, "place orders under fresh order and item ids")
	flag.BoolVar(&opts.SkipExisting, "skip-existing", false, "skip orders whose id is already stored")
	flag.Parse()

	files := map[item.Category]string{
		item.CategoryCake: cakeFile,
		item.CategoryBook: bookFile,
		item.CategoryToy:  toyFile,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, files, opts); err != nil {
		slog.Error("order import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("order import completed successfully")
}

func run(ctx context.Context, files map[item.Category]string, opts importer.Options) error {
	var sources []importer.Source
	for _, c := range item.Categories() {
		path := files[c]
		if path == "" {
			continue
		}
		src, err := file.New(path, c)
		if err != nil {
			return errors.Wrapf(err, "open %s", path)
		}
		slog.Info("reading orders", slog.String("category", c.String()), slog.String("path", path))
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return errors.New("no input files: set -cakes, -books or -toys")
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(ctx, zap.NewNop(), otel.GetMeterProvider(), cfg)
	if err != nil {
		return errors.Wrap(err, "initialize services")
	}
	defer func() { _ = svc.Close() }()

	stats, err := importer.Run(ctx, svc.Orders, sources, opts)
	slog.Info("import finished",
		slog.Int("read", stats.Read),
		slog.Int("created", stats.Created),
		slog.Int("skipped", stats.Skipped),
	)
	return err
}
