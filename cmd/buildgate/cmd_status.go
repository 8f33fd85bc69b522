package main

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lienzo-app/buildgate/internal"
	"github.com/lienzo-app/buildgate/internal/console"
	"github.com/lienzo-app/buildgate/internal/gate"
	"github.com/lienzo-app/buildgate/internal/repo"
	"github.com/lienzo-app/buildgate/internal/wasi"
)

// Status prints every probe the gate relies on without building anything.
func Status(ctx context.Context, cfg Config) error {
	out := console.FromContext(ctx)

	repository, err := repo.Open(cfg.Root)
	if err != nil {
		if !errors.Is(err, repo.ErrNotRepository) {
			return err
		}
		console.Debug(ctx).Printf("%v\n", err)
	}

	var (
		artifacts = cfg.Artifacts()
		marker    = cfg.Builder(out).Marker()
	)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)
	tbl.AppendHeader(table.Row{"probe", "path", "present", "tracked", "details"})

	rows := []struct {
		Name    string
		Path    string
		Details func() string
	}{
		{Name: "loader", Path: artifacts.Loader},
		{Name: "payload", Path: artifacts.Payload, Details: func() string { return inspect(ctx, artifacts.Payload) }},
		{Name: "toolchain", Path: marker},
	}

	for _, row := range rows {
		present := gate.Exists(row.Path)

		var details string
		if present && row.Details != nil {
			details = row.Details()
		}

		tbl.AppendRow(table.Row{row.Name, relative(cfg.Root, row.Path), strconv.FormatBool(present), tracked(repository, row.Path), details})
	}

	out.Println(tbl.Render())

	if missing := artifacts.Missing(); len(missing) > 0 {
		return internal.Warnf("%d of %d artifact(s) missing: run buildgate to build them", len(missing), len(artifacts.Paths()))
	}

	return nil
}

func inspect(ctx context.Context, path string) string {
	summary, err := wasi.InspectFile(ctx, path)
	if err != nil {
		return err.Error()
	}
	return summary.String()
}

func tracked(repository *repo.Repo, path string) string {
	if repository == nil {
		return "-"
	}
	ok, err := repository.Tracked(path)
	if err != nil {
		return err.Error()
	}
	return strconv.FormatBool(ok)
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
