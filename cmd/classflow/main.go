// classflow generates code from class diagrams, recovers diagrams from
// code and runs generated code on a remote execution service.
//
//	classflow parse Garage.java --out garage.yaml
//	classflow connect garage.yaml --source car --target engine --kind Composition
//	classflow gen garage.yaml --dialect go --out ./model
//	classflow watch garage.yaml --out ./model
//	classflow run garage.yaml --main 'new Car(new Engine());'
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/syssam/classflow/internal/config"
	"github.com/syssam/classflow/internal/logs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}
	if err := newApp().Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "classflow:", err)
		os.Exit(1)
	}
}

// app holds what every command shares.
type app struct {
	conf *config.Loader
	log  *logs.Logger
}

func newApp() *cli.Command {
	a := &app{}
	return &cli.Command{
		Name:  "classflow",
		Usage: "Class diagrams with bidirectional code synthesis",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "config file (default ./classflow.yaml)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			a.parseCommand(),
			a.connectCommand(),
			a.genCommand(),
			a.watchCommand(),
			a.runCommand(),
		},
	}
}

func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if err := override(conf, cmd, map[string]string{"log-level": "log.level"}); err != nil {
		return ctx, err
	}
	a.conf = conf
	a.log = logs.New("classflow", conf.Config().Log, stderr(cmd))
	if f := conf.File(); f != "" {
		a.log.Debug("config loaded", "file", f)
	}
	return ctx, nil
}

func (a *app) teardown(context.Context, *cli.Command) error {
	if a.log != nil {
		_ = a.log.Close()
	}
	return nil
}

// override copies the flags that were set on the command line into the
// config, keyed by flag name.
func override(conf *config.Loader, cmd *cli.Command, keys map[string]string) error {
	for flag, key := range keys {
		if !cmd.IsSet(flag) {
			continue
		}
		if err := conf.Set(key, cmd.Value(flag)); err != nil {
			return err
		}
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
