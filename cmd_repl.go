package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"lumen/scanner"
	"lumen/token"
	"lumen/vm"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive Lumen session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL. A global variable defined on one line stays
  visible on the next; type 'exit' to quit.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Lumen REPL — type 'exit' to quit.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start REPL: %v\n", err)
		return exitUsageError
	}
	defer rl.Close()

	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, readErr := rl.Readline()
		if readErr == readline.ErrInterrupt {
			buffer.Reset()
			continue
		}
		if readErr == io.EOF {
			return subcommands.ExitSuccess
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !isInputComplete(source) {
			continue
		}

		result, errs := machine.Interpret(source)
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		_ = result
		buffer.Reset()
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.lumen_history"
}

// isInputComplete tokenizes source and reports whether it looks like a
// finished statement: braces balanced and not ending on a token that
// obviously expects a continuation. This lets the REPL accept multi-line
// blocks without forcing semicolon-per-Readline-call.
func isInputComplete(source string) bool {
	s := scanner.New(source)

	braceBalance := 0
	var tokens []token.Token
	for {
		tok := s.Next()
		if tok.TokenType == token.EOF {
			break
		}
		if tok.TokenType == token.LCUR {
			braceBalance++
		}
		if tok.TokenType == token.RCUR {
			braceBalance--
		}
		tokens = append(tokens, tok)
	}

	if braceBalance > 0 {
		return false
	}
	if len(tokens) == 0 {
		return true
	}

	switch tokens[len(tokens)-1].TokenType {
	case token.ASSIGN, token.ADD, token.SUB, token.MULT, token.DIV, token.BANG,
		token.EQUAL_EQUAL, token.NOT_EQUAL, token.LESS, token.LESS_EQUAL,
		token.LARGER, token.LARGER_EQUAL, token.COMMA, token.LPA, token.LCUR,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FUNC, token.RETURN,
		token.VAR, token.AND, token.OR, token.PRINT:
		return false
	}
	return true
}
