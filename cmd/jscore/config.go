package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"jscore/internal/config"
	jserrors "jscore/internal/errors"
)

var configForceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jscore configuration",
	Long:  "View and create jscore configuration files (jscore.toml, jscore.yaml or jscore.json)",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration as TOML to ./jscore.toml, or to the
--config path when given.

Examples:
  jscore config init
  jscore config init --config ~/.config/jscore/jscore.toml --force`,
	Args:        argsRange(0, 0),
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPathFlag
		if path == "" {
			path = config.FileName + ".toml"
		}
		return runConfigInit(path, configForceFlag, cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults, file values and JSCORE_*
environment overrides are applied.

Examples:
  jscore config show
  jscore config show --format=json`,
	Args: argsRange(0, 0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return encode(cmd.OutOrStdout(), ConfigView{Path: state.cfgPath, Config: state.cfg})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForceFlag, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// ConfigView is the output of `jscore config show`.
type ConfigView struct {
	Path   string         `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Config *config.Config `json:"config" yaml:"config" toml:"config"`
}

// RenderHuman prints the source of the configuration followed by its TOML form.
func (v ConfigView) RenderHuman(w io.Writer) error {
	fmt.Fprintf(w, "# Config file: %s\n", describePath(v.Path))
	data, err := toml.Marshal(v.Config)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func runConfigInit(path string, force bool, w io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		return jserrors.New(jserrors.InvalidArgument,
			fmt.Sprintf("%s already exists (use --force to overwrite)", path), nil)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return jserrors.New(jserrors.InternalError, "cannot write "+path, err)
	}

	state.logger.Info("Wrote configuration", "path", path)
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}
