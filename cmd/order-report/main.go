package main

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/app"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/analytics"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}
		svc, err := appkg.New(ctx, lg, m.MeterProvider(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = svc.Close() }()

		summary, err := svc.Analytics.Summary(ctx)
		if err != nil {
			return errors.Wrap(err, "compute summary")
		}
		lg.Info("Computed summary",
			zap.Int("orders", summary.TotalOrders),
			zap.Stringer("revenue", summary.TotalRevenue),
		)

		_, err = os.Stdout.Write(encode(summary))
		return err
	})
}

func encode(s *analytics.Summary) []byte {
	var e jx.Encoder
	e.SetIdent(2)
	e.ObjStart()
	e.FieldStart("totalOrders")
	e.Int(s.TotalOrders)
	e.FieldStart("totalRevenue")
	e.Num(jx.Num(s.TotalRevenue.String()))
	e.FieldStart("categories")
	e.ArrStart()
	for _, c := range s.Categories {
		e.ObjStart()
		e.FieldStart("category")
		e.Str(c.Category.String())
		e.FieldStart("orders")
		e.Int(c.Orders)
		e.FieldStart("revenue")
		e.Num(jx.Num(c.Revenue.String()))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	return append(e.Bytes(), '\n')
}
