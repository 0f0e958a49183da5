package main

import (
	"context"
	"log/slog"

	"github.com/delaneyj/signalgraph/inspect"
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/urfave/cli/v3"
)

func dotCommand() *cli.Command {
	return &cli.Command{
		Name:  "dot",
		Usage: "Print the Graphviz graph of a sample diamond",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  pendingKey,
				Usage: "Write the source without flushing so dirty and check states show up",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rs, root := sampleDiamond(cmd.Bool(pendingKey))
			nodes := inspect.Walk(rs, root)

			s := inspect.Summarize(nodes)
			slog.Debug("sample graph",
				"nodes", s.Nodes,
				"edges", s.Edges,
				"dirty", s.ByState[reactive.StateDirty],
				"check", s.ByState[reactive.StateCheck],
				"fingerprint", inspect.Fingerprint(nodes),
			)

			inspect.WriteDOT(cmd.Root().Writer, nodes)
			return nil
		},
	}
}

//	   a
//	  / \
//	 b   c
//	  \ /
//	   d
//	   |
//	render
func sampleDiamond(pending bool) (*reactive.ReactiveSystem, reactive.Node) {
	rs := reactive.New(reactive.WithManualFlush(), reactive.WithLogger(slog.Default()))
	a := reactive.Signal(rs, 1, reactive.WithLabel[int]("a"))
	b := reactive.Computed(rs, func(int) int { return a.Get() + 1 }, reactive.WithLabel[int]("b"))
	c := reactive.Computed(rs, func(int) int { return a.Get() * 2 }, reactive.WithLabel[int]("c"))
	d := reactive.Computed(rs, func(int) int { return b.Get() + c.Get() }, reactive.WithLabel[int]("d"))
	reactive.NamedEffect(rs, "render", func() error {
		slog.Debug("render", "d", d.Get())
		return nil
	})
	if pending {
		a.Set(2)
	}
	return rs, a
}
