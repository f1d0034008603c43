package repository

import (
	"context"
	"database/sql"

	"github.com/avik-s/PrizePicker/pkg/contracts/events"
)

// PostgresRepo implementa a persistência de quotes de props em Postgres.
// props_current guarda a última quote de cada linha de mercado;
// props_history acumula todas as varreduras.
type PostgresRepo struct {
	DB *sql.DB
}

// NewPostgresRepo retorna uma instância de repositório Postgres
func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertCurrent insere ou atualiza a quote corrente de uma linha de mercado.
// A chave natural é (player, prop_type, sport).
func (r *PostgresRepo) UpsertCurrent(ctx context.Context, q events.PropQuoteUpdate) error {
	const query = `
		INSERT INTO props_current
		  (player, team, sport, prop_type, fanduel_line, fd_over_odds, fd_under_odds,
		   prizepicks_line, fd_fair_over_pct, fd_fair_under_pct, player_image,
		   source, version, scraped_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (player, prop_type, sport) DO UPDATE SET
		  team              = EXCLUDED.team,
		  fanduel_line      = EXCLUDED.fanduel_line,
		  fd_over_odds      = EXCLUDED.fd_over_odds,
		  fd_under_odds     = EXCLUDED.fd_under_odds,
		  prizepicks_line   = EXCLUDED.prizepicks_line,
		  fd_fair_over_pct  = EXCLUDED.fd_fair_over_pct,
		  fd_fair_under_pct = EXCLUDED.fd_fair_under_pct,
		  player_image      = EXCLUDED.player_image,
		  source            = EXCLUDED.source,
		  version           = EXCLUDED.version,
		  scraped_at        = EXCLUDED.scraped_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		q.Player, q.Team, q.Sport, q.PropType,
		q.FanDuelLine, q.FDOverOdds, q.FDUnderOdds, q.PrizePicksLine,
		q.FDFairOverPct, q.FDFairUnderPct, q.PlayerImage,
		q.Source, q.Version, q.ScrapedAt,
	)
	return err
}

// InsertHistory insere a quote no histórico (props_history)
func (r *PostgresRepo) InsertHistory(ctx context.Context, q events.PropQuoteUpdate) error {
	const query = `
		INSERT INTO props_history
		  (player, prop_type, sport, fanduel_line, prizepicks_line,
		   fd_fair_over_pct, fd_fair_under_pct, version, scraped_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		q.Player, q.PropType, q.Sport, q.FanDuelLine, q.PrizePicksLine,
		q.FDFairOverPct, q.FDFairUnderPct, q.Version, q.ScrapedAt,
	)
	return err
}
