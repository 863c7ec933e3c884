package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naturelab/lifelist/pkg/lserr"
	"github.com/naturelab/lifelist/pkg/menus"
)

// browseCommand creates the "browse" command: an interactive pager over one
// query's life list.
func (a *app) browseCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "browse <query>",
		Short: "Page through a life list interactively",
		Long: `Run a query and browse its pages interactively.

Keys:
  n/p or ←/→   next and previous page (wrapping)
  j/k or ↑/↓   move the selection
  g/G          first and last page
  1-9 + ⏎      jump to a page
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := a.newRunner(ctx)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Resolving query...")
			runner.Progress = spinner.SetMessage
			spinner.Start()
			result, err := runner.Execute(ctx, a.pipelineOptions(args[0], refresh))
			spinner.Stop()
			if err != nil {
				return err
			}

			model := newBrowseModel(menus.NewMenu(result.Renderer))
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(browseModel); ok && m.chosenTaxon != 0 {
				printKeyValue("Selected", strconv.Itoa(m.chosenTaxon))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the resolve cache")
	return cmd
}

// browseModel is the bubbletea model wrapping a menu.
type browseModel struct {
	menu        *menus.Menu
	digits      string
	status      string
	chosenTaxon int
}

func newBrowseModel(menu *menus.Menu) browseModel {
	return browseModel{menu: menu}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""
	switch s := key.String(); s {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", "right":
		m.menu.Next()
	case "p", "left":
		m.menu.Prev()
	case "g":
		m.fail(m.menu.Jump(0))
	case "G":
		m.fail(m.menu.Jump(m.menu.Renderer().Pager().LastPage()))
	case "j", "down":
		m.fail(m.menu.Select(m.menu.Selected() + 1))
	case "k", "up":
		m.fail(m.menu.Select(m.menu.Selected() - 1))
	case "enter":
		if m.digits == "" {
			m.chosenTaxon = m.menu.SelectedTaxonID()
			return m, tea.Quit
		}
		page, _ := strconv.Atoi(m.digits)
		m.fail(m.menu.Jump(page - 1))
		m.digits = ""
	case "backspace":
		if m.digits != "" {
			m.digits = m.digits[:len(m.digits)-1]
		}
	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.digits += s
		}
	}
	return m, nil
}

// fail records a navigation error as a status line. Out-of-range moves are
// user input, not faults.
func (m *browseModel) fail(err error) {
	if err != nil {
		m.status = lserr.UserMessage(err)
	}
}

func (m browseModel) View() string {
	var b strings.Builder

	page, err := m.menu.Format(true)
	if err != nil {
		page = lserr.UserMessage(err)
	}
	b.WriteString(page)
	b.WriteString("\n\n")

	pager := m.menu.Renderer().Pager()
	b.WriteString(StyleDim.Render(fmt.Sprintf("page %d/%d", m.menu.Page()+1, pager.LastPage()+1)))
	if m.digits != "" {
		b.WriteString(StyleHighlight.Render("  go to: " + m.digits))
	}
	if m.status != "" {
		b.WriteString("  " + StyleWarning.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("n/p page  j/k select  g/G ends  digits+⏎ jump  ⏎ choose  q quit"))
	b.WriteString("\n")
	return b.String()
}
