package wasi

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/tetratelabs/wazero"

	"github.com/davidmdm/x/xerr"
)

type Summary struct {
	Imports []string
	Exports []string
}

func (summary Summary) String() string {
	return fmt.Sprintf("%d imports, %d exports", len(summary.Imports), len(summary.Exports))
}

// Inspect compiles the module without instantiating it. Imports are not
// resolved, so emscripten "env" imports compile fine without a host.
func Inspect(ctx context.Context, wasm []byte) (summary Summary, err error) {
	cfg := wazero.
		NewRuntimeConfig().
		WithCloseOnContextDone(true)

	runtime := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer func() {
		err = xerr.MultiErrFrom("", err, runtime.Close(ctx))
	}()

	mod, err := runtime.CompileModule(ctx, wasm)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to compile module: %w", err)
	}

	for _, fn := range mod.ImportedFunctions() {
		module, name, _ := fn.Import()
		summary.Imports = append(summary.Imports, module+"."+name)
	}

	for name := range mod.ExportedFunctions() {
		summary.Exports = append(summary.Exports, name)
	}

	slices.Sort(summary.Imports)
	slices.Sort(summary.Exports)

	return summary, nil
}

func InspectFile(ctx context.Context, path string) (Summary, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return Inspect(ctx, wasm)
}
