// Command formgrid parses encoded column/row specs and prints the resolved
// grid geometry. Handy for checking what a spec string actually produces
// before wiring it into a UI.
//
// Usage:
//
//	formgrid -cols "pref, $lcgap, pref:grow" -rows "3*(pref, $lgap), pref" -width 400 -height 300
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"formgrid/pkg/grid"
	"formgrid/pkg/measure"
	"formgrid/pkg/spec"
)

var (
	colsFlag   = flag.String("cols", "", "encoded column spec list")
	rowsFlag   = flag.String("rows", "", "encoded row spec list")
	widthFlag  = flag.Int("width", 0, "target container width in px (0 = natural)")
	heightFlag = flag.Int("height", 0, "target container height in px (0 = natural)")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	indexStyle  = lipgloss.NewStyle().Faint(true).Width(4)
	specStyle   = lipgloss.NewStyle().Width(28)
	numStyle    = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	spec.OnDeprecated = func(msg string) { log.Print("warning: ", msg) }

	if *colsFlag == "" || *rowsFlag == "" {
		fmt.Fprintln(os.Stderr, "formgrid: -cols and -rows are required")
		flag.Usage()
		os.Exit(2)
	}

	g, err := grid.Parse(*colsFlag, *rowsFlag, nil, nil, measure.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	info, err := g.LayoutInfo(*widthFlag, *heightFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	printAxis("columns", colSpecs(g), info.ColumnOrigins)
	fmt.Println()
	printAxis("rows", rowSpecs(g), info.RowOrigins)
	fmt.Println()
	fmt.Printf("total: %d x %d px\n", info.Width(), info.Height())
}

func colSpecs(g *grid.FormGrid) []spec.Spec {
	out := make([]spec.Spec, g.ColumnCount())
	for i := range out {
		out[i] = g.ColumnSpec(i + 1)
	}
	return out
}

func rowSpecs(g *grid.FormGrid) []spec.Spec {
	out := make([]spec.Spec, g.RowCount())
	for i := range out {
		out[i] = g.RowSpec(i + 1)
	}
	return out
}

func printAxis(name string, specs []spec.Spec, origins []int) {
	fmt.Println(headerStyle.Render(name))
	header := indexStyle.Render("#") + specStyle.Render("spec") +
		numStyle.Render("origin") + numStyle.Render("size")
	fmt.Println(header)
	for i, s := range specs {
		line := indexStyle.Render(strconv.Itoa(i+1)) +
			specStyle.Render(s.Encode()) +
			numStyle.Render(strconv.Itoa(origins[i])) +
			numStyle.Render(strconv.Itoa(origins[i+1]-origins[i]))
		fmt.Println(line)
	}
}
