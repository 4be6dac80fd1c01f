// Package tui is a terminal dashboard for a running session, polling the
// monitoring HTTP surface (internal/monitor) instead of touching the
// orchestrator directly — the dashboard is a separate process from the
// one playing the game.
package tui

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rotablekit/internal/wire"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

type statusResp struct {
	SessionID string `json:"session_id"`
	Running   bool   `json:"running"`
	Hour      int    `json:"hour"`
}

type model struct {
	addr      string
	status    statusResp
	inventory map[string]wire.ClassVectorDTO
	err       error
}

type tickMsg time.Time

func Run(addr string) error {
	p := tea.NewProgram(model{addr: addr})
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(poll(m.addr), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type pollMsg struct {
	status    statusResp
	inventory map[string]wire.ClassVectorDTO
	err       error
}

func poll(addr string) tea.Cmd {
	return func() tea.Msg {
		var msg pollMsg
		msg.status, msg.err = fetchStatus(addr)
		if msg.err == nil {
			msg.inventory, msg.err = fetchInventory(addr)
		}
		return msg
	}
}

func fetchStatus(addr string) (statusResp, error) {
	var out statusResp
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	return out, decodeJSON(resp, &out)
}

func fetchInventory(addr string) (map[string]wire.ClassVectorDTO, error) {
	out := make(map[string]wire.ClassVectorDTO)
	resp, err := http.Get(addr + "/inventory")
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	return out, decodeJSON(resp, &out)
}

func decodeJSON(resp *http.Response, v any) error {
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return wire.Unmarshal(buf, v)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		return m, tea.Batch(poll(m.addr), tick())
	case pollMsg:
		m.status = msg.status
		m.inventory = msg.inventory
		m.err = msg.err
	}
	return m, nil
}

func (m model) View() string {
	out := titleStyle.Render("rotablekit monitor") + "\n\n"
	if m.err != nil {
		out += errStyle.Render(fmt.Sprintf("connection error: %v", m.err)) + "\n"
		return out
	}
	out += labelStyle.Render("session ") + valueStyle.Render(m.status.SessionID) + "\n"
	out += labelStyle.Render("hour    ") + valueStyle.Render(fmt.Sprintf("%d / 720", m.status.Hour)) + "\n\n"
	for code, inv := range m.inventory {
		out += fmt.Sprintf("%s  F:%d B:%d P:%d E:%d\n", code, inv.First, inv.Business, inv.PremiumEconomy, inv.Economy)
	}
	out += "\n" + labelStyle.Render("press q to quit")
	return out
}
