package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/argp"

	grue "github.com/wjx823/Miracle-Grue"
)

type Inset struct {
	Distance float64 `short:"d" default:"0.5" desc:"Inset distance per shell"`
	Shells   int     `short:"n" default:"1" desc:"Number of shells"`
	Cutoff   float64 `default:"0.01" desc:"Short segment cutoff"`
	SCAD     string  `desc:"Write OpenSCAD debug dump to file"`
	SVG      string  `desc:"Write SVG snapshot to file"`
	Verbose  bool    `short:"v" desc:"Print the segment count and area of each loop"`
	Input    string  `index:"0" desc:"Polygon file, one 'x y' pair per line, blank line between loops"`
}

type Plan struct {
	Distance float64 `short:"d" default:"0.5" desc:"Inset distance per shell"`
	Shells   int     `short:"n" default:"2" desc:"Number of shells per outline"`
	Cutoff   float64 `default:"0.01" desc:"Short segment cutoff"`
	Input    string  `index:"0" desc:"Layer file, one 'x y' pair per line, blank line between loops"`
}

func main() {
	root := argp.NewCmd(&Inset{}, "2D toolpath planning toolkit")
	root.AddCmd(&Plan{}, "plan", "Inset a layer's outlines and print the optimized extrusion order")
	root.Parse()
	root.PrintHelp()
}

// readLoops parses a file of loops: one "x y" pair per line, loops separated
// by blank lines.
func readLoops(filename string) ([]grue.Loop, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var loops []grue.Loop
	var loop grue.Loop
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			if !loop.Empty() {
				loops = append(loops, loop)
			}
			loop = nil
			continue
		}
		var p grue.Point
		if _, err := fmt.Sscan(text, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		loop = append(loop, p)
	}
	if !loop.Empty() {
		loops = append(loops, loop)
	}
	if len(loops) == 0 {
		return nil, fmt.Errorf("%s: no loops", filename)
	}
	return loops, scanner.Err()
}

func (cmd *Inset) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	loops, err := readLoops(cmd.Input)
	if err != nil {
		return err
	}

	ins := grue.Insetter{}
	var scad *grue.SCADWriter
	if cmd.SCAD != "" {
		f, err := os.Create(cmd.SCAD)
		if err != nil {
			return err
		}
		defer f.Close()
		scad = grue.NewSCADWriter(f)
		ins.Debug = scad
	}

	sets := [][]grue.Segment{}
	for _, loop := range loops {
		segments := loop.Segments()
		sets = append(sets, segments)
		if cmd.Verbose {
			fmt.Printf("loop of %d segments, area %g\n", len(segments), loop.Area())
		}
		shells, err := ins.Insets(segments, cmd.Distance, cmd.Cutoff, cmd.Shells)
		if err != nil {
			return err
		}
		for i, shell := range shells {
			fmt.Printf("shell %d: %d segments\n", i, len(shell))
			for _, seg := range shell {
				fmt.Printf("\t%v\n", seg)
			}
			sets = append(sets, shell)
		}
		if len(shells) < cmd.Shells {
			fmt.Printf("collapsed after %d of %d shells\n", len(shells), cmd.Shells)
		}
	}

	if scad != nil {
		if err := scad.Close(); err != nil {
			return err
		}
	}
	if cmd.SVG != "" {
		f, err := os.Create(cmd.SVG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := grue.DumpSVG(f, sets...); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *Plan) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	loops, err := readLoops(cmd.Input)
	if err != nil {
		return err
	}

	pather := grue.NewPather(nil)
	ins := grue.Insetter{}
	for _, loop := range loops {
		pather.AddBoundary(loop)
	}
	for _, loop := range loops {
		shells, err := ins.Insets(loop.Segments(), cmd.Distance, cmd.Cutoff, cmd.Shells)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping loop: %v\n", err)
			continue
		}
		for depth, shell := range shells {
			pather.AddLoop(grue.LoopFromSegments(shell), grue.InsetLabel(depth))
		}
	}

	var result grue.LabeledOpenPaths
	pather.Optimize(&result)
	for _, lp := range result {
		fmt.Printf("%v (%d points)\n", lp.Label, len(lp.Path))
		for _, p := range lp.Path {
			fmt.Printf("\t%v\n", p)
		}
	}
	return nil
}
