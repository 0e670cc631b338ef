// Package popstat turns NOMIS regional population estimates into
// render-ready comparative charts.
//
// Usage:
//
//	import (
//	    "github.com/spektr-org/popstat/engine"
//	    "github.com/spektr-org/popstat/nomis"
//	)
//
//	client := nomis.New(nomis.DefaultConfig())
//	raw, err := client.Fetch(ctx, "2023")
//	table, err := engine.FilterRegions(engine.NewTableView(raw))
//	bar := engine.BuildRegionBarChart(table, 2023)
//
// The nomis package is the only one that talks to the network. The engine
// never calls any external service; it filters, reshapes and describes
// charts. Rendering (render), spreadsheet export (export) and the HTTP
// dashboard (dashboard) sit on top of the engine's output.
package popstat
