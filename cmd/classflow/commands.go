package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/syssam/classflow/codec"
	"github.com/syssam/classflow/compiler/gen"
	"github.com/syssam/classflow/compiler/load"
	"github.com/syssam/classflow/graph"
	"github.com/syssam/classflow/model"
	"github.com/syssam/classflow/runner"
)

var errMissingDiagram = errors.New("missing diagram file argument")

// genFlags override the gen section of the config.
func genFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "dialect", Usage: "java or go"},
		&cli.StringFlag{Name: "package", Usage: "package of generated Go code"},
		&cli.StringFlag{Name: "header", Usage: "comment placed at the top of generated files"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory, one file per entity (default: print to stdout)"},
		&cli.IntFlag{Name: "workers", Usage: "files written in parallel"},
	}
}

var genKeys = map[string]string{
	"dialect": "gen.dialect",
	"package": "gen.package",
	"header":  "gen.header",
	"out":     "gen.target",
	"workers": "gen.workers",
}

func (a *app) parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Recover a diagram from source code",
		ArgsUsage: "<source|->",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "diagram file to write, format by extension (default: print to stdout)"},
			&cli.StringFlag{Name: "format", Value: "yaml", Usage: "format printed to stdout: json, yaml or msgpack"},
			&cli.BoolFlag{Name: "strict", Usage: "fail when a declaration is skipped"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src, err := readSource(cmd)
			if err != nil {
				return err
			}
			res := load.Parse(src)
			for _, f := range res.Failures {
				a.log.WarnContext(ctx, "declaration skipped", "error", f)
			}
			if cmd.Bool("strict") {
				if err := res.Err(); err != nil {
					return err
				}
			}
			a.log.InfoContext(ctx, "source parsed", "entities", len(res.Entities), "relationships", len(res.Relationships))
			d := res.Diagram()
			if out := cmd.String("out"); out != "" {
				return codec.WriteFile(out, d)
			}
			f, err := codec.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			return codec.Encode(stdout(cmd), f, d)
		},
	}
}

func readSource(cmd *cli.Command) (string, error) {
	var (
		data []byte
		err  error
	)
	switch path := cmd.Args().First(); path {
	case "", "-":
		data, err = io.ReadAll(stdin(cmd))
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func (a *app) connectCommand() *cli.Command {
	return &cli.Command{
		Name:      "connect",
		Usage:     "Add a relationship between two entities of a diagram",
		ArgsUsage: "<diagram>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Required: true, Usage: "id of the dependent entity"},
			&cli.StringFlag{Name: "target", Required: true, Usage: "id of the depended-upon entity"},
			&cli.StringFlag{Name: "kind", Required: true, Usage: "Inheritance, Implementation, Composition, Aggregation or Dependency"},
			&cli.StringFlag{Name: "source-anchor", Value: "bottom", Usage: "anchor the line leaves the source from"},
			&cli.StringFlag{Name: "target-anchor", Value: "top", Usage: "anchor the line enters the target at"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "diagram file to write (default: the input file)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errMissingDiagram
			}
			kind, err := model.ParseRelationshipKind(cmd.String("kind"))
			if err != nil {
				return err
			}
			e, err := a.editor(path)
			if err != nil {
				return err
			}
			err = e.Connect(graph.ConnectEvent{
				SourceID:     cmd.String("source"),
				TargetID:     cmd.String("target"),
				SourceAnchor: model.Anchor(cmd.String("source-anchor")),
				TargetAnchor: model.Anchor(cmd.String("target-anchor")),
			})
			if err != nil {
				return err
			}
			r, err := e.Select(kind)
			if err != nil {
				return err
			}
			a.log.InfoContext(ctx, "relationship added", "id", r.ID)
			out := cmd.String("out")
			if out == "" {
				out = path
			}
			return codec.WriteFile(out, e.Snapshot())
		},
	}
}

// editor opens the diagram at path with the configured dialect.
func (a *app) editor(path string) (*graph.Editor, error) {
	d, err := codec.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts, err := a.conf.Config().Gen.Options()
	if err != nil {
		return nil, err
	}
	return graph.New(
		graph.WithDiagram(d),
		graph.WithGenOptions(opts...),
		graph.WithLogger(a.log.Logger),
	)
}

func (a *app) genCommand() *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "Generate code from a diagram",
		ArgsUsage: "<diagram>",
		Flags:     genFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errMissingDiagram
			}
			if err := override(a.conf, cmd, genKeys); err != nil {
				return err
			}
			return a.generate(ctx, path, stdout(cmd))
		},
	}
}

// generate renders the diagram at path. The code is written to the target
// directory when one is configured and printed to w otherwise.
func (a *app) generate(ctx context.Context, path string, w io.Writer) error {
	d, err := codec.ReadFile(path)
	if err != nil {
		return err
	}
	opts, err := a.conf.Config().Gen.Options()
	if err != nil {
		return err
	}
	c, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	out, err := gen.Generate(c, d.Entities, d.Relationships)
	if err != nil {
		return err
	}
	if c.Target == "" {
		_, err := fmt.Fprintln(w, out.Source)
		return err
	}
	wr, err := gen.NewWriter(c)
	if err != nil {
		return err
	}
	paths, err := wr.Write(ctx, out)
	if err != nil {
		return err
	}
	m := wr.Metrics()
	a.log.InfoContext(ctx, "code generated", "dialect", out.Dialect, "files", m.FilesWritten, "bytes", m.TotalBytes, "target", c.Target)
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}

func (a *app) runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the code of a diagram on the execution service",
		ArgsUsage: "<diagram>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "main", Usage: "entry point text (default: the main of the diagram)"},
			&cli.StringFlag{Name: "url", Usage: "base URL of the execution service"},
			&cli.DurationFlag{Name: "timeout", Usage: "timeout of the execution"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errMissingDiagram
			}
			if err := override(a.conf, cmd, map[string]string{"url": "runner.url", "timeout": "runner.timeout"}); err != nil {
				return err
			}
			e, err := a.editor(path)
			if err != nil {
				return err
			}
			if cmd.IsSet("main") {
				e.SetMain(cmd.String("main"))
			}
			rc := a.conf.Config().Runner
			client, err := runner.New(rc.URL, runner.WithTimeout(rc.Timeout), runner.WithLogger(a.log.Logger))
			if err != nil {
				return err
			}
			res, err := e.Run(ctx, client)
			printResult(stdout(cmd), stderr(cmd), res)
			return err
		},
	}
}

func printResult(out, errOut io.Writer, res *runner.Result) {
	if res == nil {
		return
	}
	if res.CompileOutput != "" {
		fmt.Fprintln(errOut, res.CompileOutput)
	}
	if res.Stdout != "" {
		fmt.Fprint(out, res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprint(errOut, res.Stderr)
	}
}
