package local

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

type MatchResult struct {
	ID          uint   `gorm:"primaryKey"`
	GameUuid    string `gorm:"size:6;index:idx_local_game_uuid"`
	PlayerName  string `gorm:"size:64;index:idx_local_player_name"`
	Status      string `gorm:"size:16;index:idx_local_status"`
	Turns       int
	PlayerShots int
	PlayerHits  int
	AIShots     int
	AIHits      int
	ShotLog     datatypes.JSON
	StartedAt   time.Time
	FinishedAt  time.Time
	CreatedAt   time.Time
}

// Store keeps match summaries in a sqlite file for players without a
// Postgres server.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

var _ mb.Recorder = (*Store)(nil)

// Open creates or opens the sqlite file at path and migrates its schema.
// An empty path uses a private in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local SQLite DB: %w", err)
	}

	if path == "" {
		// Every connection would get its own empty memory database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&MatchResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local SQLite DB: %w", err)
	}

	if path != "" {
		log.Info().Str("path", path).Msg("Using local SQLite DB")
	} else {
		log.Info().Msg("Using local SQLite DB in memory")
	}
	return &Store{db: db, logger: log}, nil
}

func (s *Store) RecordMatch(ctx context.Context, summary mb.MatchSummary) error {
	shotLog, err := json.Marshal(summary.ShotLog)
	if err != nil {
		return err
	}

	result := MatchResult{
		GameUuid:    summary.GameUuid,
		PlayerName:  summary.PlayerName,
		Status:      summary.Status.String(),
		Turns:       summary.Turns,
		PlayerShots: summary.PlayerShots,
		PlayerHits:  summary.PlayerHits,
		AIShots:     summary.AIShots,
		AIHits:      summary.AIHits,
		ShotLog:     datatypes.JSON(shotLog),
		StartedAt:   summary.StartedAt,
		FinishedAt:  summary.FinishedAt,
	}
	if err := s.db.WithContext(ctx).Create(&result).Error; err != nil {
		return err
	}

	s.logger.Debug().Str("game", summary.GameUuid).Uint("id", result.ID).Msg("match recorded")
	return nil
}

func (s *Store) Totals(ctx context.Context) (mb.Totals, error) {
	return s.totals(s.db.WithContext(ctx).Model(&MatchResult{}))
}

func (s *Store) PlayerTotals(ctx context.Context, playerName string) (mb.Totals, error) {
	return s.totals(s.db.WithContext(ctx).Model(&MatchResult{}).Where("player_name = ?", playerName))
}

func (s *Store) totals(scope *gorm.DB) (mb.Totals, error) {
	var totals mb.Totals

	if err := scope.Session(&gorm.Session{}).Count(&totals.Games).Error; err != nil {
		return mb.Totals{}, err
	}
	if err := scope.Session(&gorm.Session{}).Where("status = ?", mb.StatusVictory.String()).Count(&totals.Victories).Error; err != nil {
		return mb.Totals{}, err
	}
	if err := scope.Session(&gorm.Session{}).Where("status = ?", mb.StatusDefeat.String()).Count(&totals.Defeats).Error; err != nil {
		return mb.Totals{}, err
	}
	return totals, nil
}

// ShotLog returns the recorded shots of a game, oldest first.
func (s *Store) ShotLog(ctx context.Context, gameUuid string) ([]mb.ShotEvent, error) {
	var result MatchResult
	if err := s.db.WithContext(ctx).Where("game_uuid = ?", gameUuid).Last(&result).Error; err != nil {
		return nil, err
	}

	var shots []mb.ShotEvent
	if err := json.Unmarshal(result.ShotLog, &shots); err != nil {
		return nil, err
	}
	return shots, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
