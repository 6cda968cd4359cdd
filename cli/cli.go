package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ipfs/go-log/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/anywherelan/resextract"
	"github.com/anywherelan/resextract/config"
	"github.com/anywherelan/resextract/resource"
)

const defaultResourceType = "rcdata"

type Application struct {
	logger *log.ZapEventLogger
	module resource.Module
	stdout io.Writer
	cliapp *cli.App
}

func New(module resource.Module) *Application {
	return newApplication(module, os.Stdout)
}

func newApplication(module resource.Module, stdout io.Writer) *Application {
	app := new(Application)
	app.logger = log.Logger("resextract/cli")
	app.module = module
	app.stdout = stdout
	app.init()

	return app
}

// Run parses args (including the program name) and runs the selected command.
func (a *Application) Run(args []string) error {
	return a.cliapp.Run(args)
}

func (a *Application) init() {
	a.cliapp = &cli.App{
		Name:    "resextract",
		Version: config.BuildInfo(),
		Usage:   "extract resources embedded into this executable",
		Writer:  a.stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("path to config file, default: %s in data directory", config.AppConfigFilename),
				EnvVars: []string{"RESEXTRACT_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override config logger level: debug, info, warn, error, dev",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "extract",
				Usage: "Write one resource to a file, replacing the file content",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Value: defaultResourceType,
					},
					&cli.StringFlag{
						Name:     "name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "lang",
						Usage: "resource language, falls back to the language neutral resource",
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "destination file, its directory must exist",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "if-changed",
						Usage: "do not rewrite the destination if it already holds the resource",
					},
					&cli.BoolFlag{
						Name:  "atomic",
						Usage: "write a temporary file and rename it over the destination",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "octal permissions of the created file, default from config",
					},
				},
				Action: a.extract,
			},
			{
				Name:   "sync",
				Usage:  "Extract every target listed in the config and print a summary table",
				Action: a.sync,
			},
			{
				Name:  "config",
				Usage: "Manage config file",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Write default config file",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "overwrite existing config",
							},
						},
						Action: a.configInit,
					},
				},
			},
		},
	}
}

func (a *Application) setup(c *cli.Context) (*resextract.Application, error) {
	app := resextract.New()
	_, err := app.SetupLoggerAndConfig(c.String("config"), c.String("log-level"))
	if err != nil {
		return nil, err
	}
	err = app.Conf.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app.Init(a.module)

	return app, nil
}

func (a *Application) extract(c *cli.Context) error {
	app, err := a.setup(c)
	if err != nil {
		return err
	}

	opts := app.Extractor.Options()
	if c.IsSet("atomic") {
		opts.Atomic = c.Bool("atomic")
	}
	if c.IsSet("mode") {
		opts.FileMode, err = config.ParseFileMode(c.String("mode"))
		if err != nil {
			return fmt.Errorf("mode flag is incorrect: %v", err)
		}
	}
	extractor := resource.New(a.module, opts)

	ref := resource.NewRef(c.String("type"), c.String("name")).WithLang(c.String("lang"))
	dst := c.String("out")
	a.logger.Debugf("extract %s to %s with options %+v", ref, dst, opts)

	status := resource.StatusWritten
	if c.Bool("if-changed") {
		written, err := extractor.ExtractIfChanged(dst, ref)
		if err != nil {
			return err
		}
		if !written {
			status = resource.StatusUnchanged
		}
	} else {
		err = extractor.Extract(dst, ref)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(a.stdout, "%s -> %s: %s\n", ref, dst, status)
	return nil
}

func (a *Application) sync(c *cli.Context) error {
	app, err := a.setup(c)
	if err != nil {
		return err
	}
	if len(app.Conf.Targets) == 0 {
		fmt.Fprintf(a.stdout, "no targets in config %s\n", app.Conf.Path())
		return nil
	}

	results, syncErr := app.Sync()

	table := tablewriter.NewWriter(a.stdout)
	table.SetBorders(tablewriter.Border{Left: false, Top: false, Right: false, Bottom: false})
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"resource", "destination", "status", "error"})
	for _, res := range results {
		status, errMsg := res.Status.String(), ""
		if res.Err != nil {
			status, errMsg = "failed", res.Err.Error()
		}
		table.Append([]string{res.Target.String(), res.Destination, status, errMsg})
	}
	table.Render()

	return syncErr
}

func (a *Application) configInit(c *cli.Context) error {
	var conf *config.Config
	if path := c.String("config"); path != "" {
		conf = config.NewConfigAt(path)
	} else {
		conf = config.NewConfigInDir(config.CalcAppDataDir())
	}

	_, err := os.Stat(conf.Path())
	if err == nil && !c.Bool("force") {
		return fmt.Errorf("config %s already exists, use --force to overwrite", conf.Path())
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	err = conf.Save()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "config written to %s\n", conf.Path())
	return nil
}
