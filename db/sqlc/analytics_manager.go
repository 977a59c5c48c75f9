package sqlc

import (
	"context"
	"encoding/json"
	"net"

	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

// AnalyticsManager stores finished match summaries in Postgres. Every row
// is tagged with the address of the machine that played it.
type AnalyticsManager struct {
	queries     Querier
	serverIpNet pqtype.Inet
}

var _ mb.Recorder = (*AnalyticsManager)(nil)

func NewAnalyticsManager(queries Querier, serverIpNet net.IPNet) *AnalyticsManager {
	return &AnalyticsManager{
		queries:     queries,
		serverIpNet: pqtype.Inet{IPNet: serverIpNet, Valid: serverIpNet.IP != nil},
	}
}

func (a *AnalyticsManager) RecordMatch(ctx context.Context, summary mb.MatchSummary) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	var shotLog pqtype.NullRawMessage
	if len(summary.ShotLog) > 0 {
		raw, err := json.Marshal(summary.ShotLog)
		if err != nil {
			return err
		}
		shotLog = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
	}

	return a.queries.InsertMatchResult(ctx, InsertMatchResultParams{
		GameUuid:    summary.GameUuid,
		PlayerName:  summary.PlayerName,
		Status:      summary.Status.String(),
		Turns:       int32(summary.Turns),
		PlayerShots: int32(summary.PlayerShots),
		PlayerHits:  int32(summary.PlayerHits),
		AiShots:     int32(summary.AIShots),
		AiHits:      int32(summary.AIHits),
		ShotLog:     shotLog,
		ServerIp:    a.serverIpNet,
		StartedAt:   summary.StartedAt,
		FinishedAt:  summary.FinishedAt,
	})
}

func (a *AnalyticsManager) Totals(ctx context.Context) (mb.Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	row, err := a.queries.GetMatchTotals(ctx)
	if err != nil {
		return mb.Totals{}, err
	}
	return mb.Totals{Games: row.Games, Victories: row.Victories, Defeats: row.Defeats}, nil
}

func (a *AnalyticsManager) PlayerTotals(ctx context.Context, playerName string) (mb.Totals, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	row, err := a.queries.GetPlayerTotals(ctx, playerName)
	if err != nil {
		return mb.Totals{}, err
	}
	return mb.Totals{Games: row.Games, Victories: row.Victories, Defeats: row.Defeats}, nil
}
