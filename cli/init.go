package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/saft/loader"
)

type InitCmd struct {
	Path  string `help:"Where to write the configuration file." arg:"" optional:"" default:"saft.yaml" type:"path"`
	Force bool   `help:"Overwrite an existing file without asking." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context) error {
	return writeConfig(ctx.Stdout, cmd.Path, cmd.Force, promptYesNo)
}

// writeConfig writes the default configuration to path. An existing file is only
// replaced when force is set or confirm agrees.
func writeConfig(w io.Writer, path string, force bool, confirm func(question string) (bool, error)) error {
	if _, err := os.Stat(path); err == nil {
		overwrite := force
		if !overwrite {
			confirmed, err := confirm(fmt.Sprintf("File %q already exists. Overwrite it?", path))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			overwrite = confirmed
		}

		if !overwrite {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", path)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	data, err := loader.DefaultConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	printSuccess(w, fmt.Sprintf("Wrote configuration to %s", pathStyle.Render(path)))
	return nil
}
