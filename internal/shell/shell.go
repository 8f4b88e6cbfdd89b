package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"bookview/internal/logger"
	"bookview/internal/platform/openlibrary"
	"bookview/internal/view"
)

const Prompt = "bookview> "

const helpText = `Commands:
  book <isbn>           show one book
  search <title>        search books by title
  hover <n>             expand result n (1 based)
  leave                 collapse the expanded result
  cover <id> [S|M|L]    print a cover image URL
  help                  show this help
  quit                  exit
`

// Prompter reads one line. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

type historyAppender interface {
	AppendHistory(item string)
}

// Shell is a line-oriented front end over the views.
type Shell struct {
	ctx      context.Context
	catalog  view.Catalog
	out      io.Writer
	renderer *view.TextRenderer

	search  *view.SearchView
	hovered *view.Card
}

func New(ctx context.Context, catalog view.Catalog, out io.Writer) (*Shell, error) {
	renderer, err := view.NewTextRenderer()
	if err != nil {
		return nil, err
	}
	return &Shell{
		ctx:      ctx,
		catalog:  catalog,
		out:      out,
		renderer: renderer,
		search:   view.NewSearchView(ctx, catalog),
	}, nil
}

// Run reads commands until quit, end of input or context cancellation.
func (s *Shell) Run(p Prompter) error {
	defer s.search.Close()

	for {
		if err := s.ctx.Err(); err != nil {
			return nil
		}

		line, err := p.Prompt(Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		if strings.TrimSpace(line) != "" {
			if h, ok := p.(historyAppender); ok {
				h.AppendHistory(line)
			}
		}

		quit, err := s.Exec(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
// Usage mistakes are printed, not returned.
func (s *Shell) Exec(line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	logger.For(s.ctx).WithField("command", cmd).Debug("Shell command")

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help", "?":
		_, err := io.WriteString(s.out, helpText)
		return false, err
	case "book":
		return false, s.book(arg)
	case "search":
		return false, s.runSearch(arg)
	case "hover":
		return false, s.hover(arg)
	case "leave":
		return false, s.leave()
	case "cover":
		return false, s.cover(arg)
	default:
		_, err := fmt.Fprintf(s.out, "unknown command %q, type help\n", cmd)
		return false, err
	}
}

func (s *Shell) book(isbn string) error {
	if isbn == "" {
		return s.usage("book <isbn>")
	}
	d := view.NewDisplay(s.ctx, s.catalog, isbn)
	defer d.Close()

	if err := s.renderer.Display(s.out, d.Model()); err != nil {
		return err
	}
	m, err := d.Wait(s.ctx)
	if err != nil {
		return nil
	}
	return s.renderer.Display(s.out, m)
}

func (s *Shell) runSearch(title string) error {
	if !s.search.Submit(title) {
		return s.usage("search <title>")
	}
	s.hovered = nil
	return s.renderer.Search(s.out, s.search.Model())
}

func (s *Shell) hover(arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return s.usage("hover <n>")
	}
	card, ok := s.search.Card(n - 1)
	if !ok {
		_, err := fmt.Fprintf(s.out, "no result %d\n", n)
		return err
	}

	if s.hovered != nil && s.hovered != card {
		s.hovered.Leave()
	}
	s.hovered = card
	card.Enter()

	overlay := card.Model().Overlay
	if overlay != nil && overlay.Loading {
		if err := s.renderer.Overlay(s.out, *overlay); err != nil {
			return err
		}
		if err := card.Wait(s.ctx); err != nil {
			return nil
		}
		overlay = card.Model().Overlay
	}
	if overlay == nil {
		return nil
	}
	return s.renderer.Overlay(s.out, *overlay)
}

func (s *Shell) leave() error {
	if s.hovered == nil {
		return nil
	}
	s.hovered.Leave()
	s.hovered = nil
	return nil
}

func (s *Shell) cover(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 || len(fields) > 2 {
		return s.usage("cover <id> [S|M|L]")
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return s.usage("cover <id> [S|M|L]")
	}

	var size openlibrary.CoverSize
	if len(fields) == 2 {
		switch openlibrary.CoverSize(strings.ToUpper(fields[1])) {
		case openlibrary.CoverSmall, openlibrary.CoverMedium, openlibrary.CoverLarge:
			size = openlibrary.CoverSize(strings.ToUpper(fields[1]))
		default:
			return s.usage("cover <id> [S|M|L]")
		}
	}

	_, err = fmt.Fprintln(s.out, s.catalog.CoverURL(id, size))
	return err
}

func (s *Shell) usage(u string) error {
	_, err := fmt.Fprintf(s.out, "usage: %s\n", u)
	return err
}
