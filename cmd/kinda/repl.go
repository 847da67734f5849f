package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kinda-lang-dev/kinda-lang/kindastar"
	"github.com/chzyer/readline"
	"go.starlark.net/starlark"
	"golang.org/x/term"
)

func runREPL(in *kindastar.Interp) error {

	// piped input runs as one program
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return in.RunSource("<stdin>", string(src))
	}

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".kinda_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "kinda> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("kinda session - fuzzy constructs welcome, ctrl-d to leave")
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		line, err = readBlock(rl, line)
		if err != nil {
			break
		}

		res, err := in.ExecLine(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else if res != nil && res != starlark.None {
			fmt.Println(res.String())
		}
	}
	return nil
}

// readBlock keeps reading when the first line opens a block: a brace
// block until its closing }, a colon block until a blank line.
func readBlock(rl *readline.Instance, first string) (string, error) {
	stripped := strings.TrimSpace(first)

	switch {
	case strings.HasSuffix(stripped, "{"):
		lines := []string{first}
		depth := 1
		for depth > 0 {
			rl.SetPrompt("  ...> ")
			line, err := rl.Readline()
			if err != nil {
				rl.SetPrompt("kinda> ")
				return "", err
			}
			s := strings.TrimSpace(line)
			if strings.HasSuffix(s, "{") {
				depth++
			}
			if s == "}" {
				depth--
			}
			lines = append(lines, line)
		}
		rl.SetPrompt("kinda> ")
		return strings.Join(lines, "\n"), nil

	case strings.HasSuffix(stripped, ":"):
		lines := []string{first}
		for {
			rl.SetPrompt("  ...> ")
			line, err := rl.Readline()
			if err != nil {
				rl.SetPrompt("kinda> ")
				return "", err
			}
			if strings.TrimSpace(line) == "" {
				break
			}
			lines = append(lines, line)
		}
		rl.SetPrompt("kinda> ")
		return strings.Join(lines, "\n"), nil
	}

	return first, nil
}
