package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/alejandrodnm/kickledger/internal/application/report"
	"github.com/alejandrodnm/kickledger/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Notify imprime la tabla de resúmenes por manager, ordenada por nombre.
func (c *Console) Notify(_ context.Context, result domain.Result) error {
	if len(result.Summaries) == 0 {
		fmt.Fprintf(c.out, "[%s] no summaries to show\n", time.Now().Format("15:04:05"))
		return nil
	}

	names := make([]string, 0, len(result.Summaries))
	for name := range result.Summaries {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(c.out, "\n[%s] %d managers — %d turnovers\n",
		time.Now().Format("15:04:05"), len(names), len(result.Turnovers))

	table := tablewriter.NewWriter(c.out)
	table.Header("Manager", "Biggest overpay", "Biggest win", "Biggest loss")

	for _, name := range names {
		s := result.Summaries[name]
		table.Append(
			s.Manager,
			labelled(s.BiggestOverpayPlayer, s.BiggestOverpay),
			labelled(s.BiggestWinPlayer, s.BiggestWin),
			labelled(s.BiggestLossPlayer, s.BiggestLoss),
		)
	}

	table.Render()
	return nil
}

// PrintOverview imprime el overview de liga: stats de dashboard y
// plantilla por manager.
func (c *Console) PrintOverview(rows []report.Row) {
	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(c.out, "\n=== LEAGUE OVERVIEW (%d managers) ===\n", len(rows))

	table := tablewriter.NewWriter(c.out)
	table.Header("Manager", "Team value", "Points", "Place", "MD wins", "Big boy", "<=500k")

	for _, r := range rows {
		table.Append(
			r.Manager,
			formatAmount(r.Stats.TeamValue),
			fmt.Sprintf("%d", r.Stats.TotalPoints),
			fmt.Sprintf("%d", r.Stats.Placement),
			fmt.Sprintf("%d", r.Stats.MatchdayWins),
			labelled(r.BigBoy, r.BigBoyValue),
			fmt.Sprintf("%d", r.HalfMillion),
		)
	}

	table.Render()
}

// labelled combina jugador y monto: "Müller (1.2M)". Sin jugador deja
// solo el monto formateado.
func labelled(player string, amount int64) string {
	if player == "" {
		return formatAmount(amount)
	}
	return fmt.Sprintf("%s (%s)", player, formatAmount(amount))
}

// formatAmount abrevia montos de la moneda del juego: 1.2M, -530.0K, 42.
// Mantiene el signo y una cifra decimal por encima del millar.
func formatAmount(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
