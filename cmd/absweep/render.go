package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	colorReset = "\x1b[0m"
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorCyan  = "\x1b[36m"
)

const checkNameWidth = 22

var titleCaser = cases.Title(language.English)

// mediaKindLabel renders an internal media kind identifier for display.
func mediaKindLabel(kind string) string {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return "Unknown"
	}
	return titleCaser.String(strings.ReplaceAll(kind, "_", " "))
}

// checkLine formats one check outcome as a dotted-leader line:
//
//	Audiobookshelf ....... ok  Reachable (user admin)
func checkLine(name string, passed bool, detail string, colorize bool) string {
	verdict := "ok"
	if !passed {
		verdict = "failed"
	}
	if colorize {
		color := colorGreen
		if !passed {
			color = colorRed
		}
		verdict = color + verdict + colorReset
	}

	dots := checkNameWidth - len(name)
	if dots < 2 {
		dots = 2
	}
	line := fmt.Sprintf("  %s %s %s", name, strings.Repeat(".", dots), verdict)
	if detail != "" {
		line += "  " + detail
	}
	return line
}

func sectionTitle(title string, colorize bool) string {
	line := strings.ToUpper(strings.TrimSpace(title))
	if colorize {
		line = colorCyan + line + colorReset
	}
	return line
}

func colorEnabled(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
