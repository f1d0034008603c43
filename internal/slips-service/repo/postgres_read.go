package repo

import (
	"context"
	"database/sql"

	"github.com/avik-s/PrizePicker/internal/slips-service/engine"
)

// ReadRepo lê a tabela corrente de quotes para alimentar o motor de slips.
type ReadRepo struct {
	DB *sql.DB
}

// ListCurrent devolve todas as quotes correntes, na ordem de inserção das
// varreduras (a ordem das linhas de origem importa para os empates do motor).
func (r *ReadRepo) ListCurrent(ctx context.Context) ([]engine.MarketQuote, error) {
	const q = `
		SELECT player, team, sport, prop_type, fanduel_line, prizepicks_line,
		       fd_fair_over_pct, fd_fair_under_pct, player_image
		FROM props_current
		ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.MarketQuote
	for rows.Next() {
		var m engine.MarketQuote
		if err := rows.Scan(
			&m.Player, &m.Team, &m.Sport, &m.PropType,
			&m.FanDuelLine, &m.PrizePicksLine,
			&m.FairOverPct, &m.FairUnderPct, &m.PlayerImage,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListCurrentBySport filtra a tabela corrente por sport.
func (r *ReadRepo) ListCurrentBySport(ctx context.Context, sport string) ([]engine.MarketQuote, error) {
	const q = `
		SELECT player, team, sport, prop_type, fanduel_line, prizepicks_line,
		       fd_fair_over_pct, fd_fair_under_pct, player_image
		FROM props_current
		WHERE sport = $1
		ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, q, sport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.MarketQuote
	for rows.Next() {
		var m engine.MarketQuote
		if err := rows.Scan(
			&m.Player, &m.Team, &m.Sport, &m.PropType,
			&m.FanDuelLine, &m.PrizePicksLine,
			&m.FairOverPct, &m.FairUnderPct, &m.PlayerImage,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
