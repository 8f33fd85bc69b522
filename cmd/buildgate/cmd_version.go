package main

import (
	"context"
	"runtime/debug"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lienzo-app/buildgate/internal/console"
)

func Version(ctx context.Context) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleRounded)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		tbl.AppendRow(table.Row{"buildgate", "(unknown)"})
		console.FromContext(ctx).Println(tbl.Render())
		return nil
	}

	tbl.AppendRow(table.Row{"buildgate", info.Main.Version})

	for _, mod := range info.Deps {
		if !slices.Contains([]string{"github.com/tetratelabs/wazero", "github.com/go-git/go-git/v5"}, mod.Path) {
			continue
		}
		tbl.AppendRow(table.Row{mod.Path, mod.Version})
	}

	console.FromContext(ctx).Println(tbl.Render())

	return nil
}
