package models

import "time"

// TournamentType представляет типы турниров, соответствующие ENUM в БД.
type TournamentType string

const (
	TypeRankBattle TournamentType = "rank_battle"
	TypeCup        TournamentType = "cup"
	TypeLeague     TournamentType = "league"
)

func (t TournamentType) Valid() bool {
	switch t {
	case TypeRankBattle, TypeCup, TypeLeague:
		return true
	}
	return false
}

// Tournament представляет турнир (ранговый сезон, кубок или лигу).
// Владеет строками player_stats: при удалении турнира они каскадно
// удаляются.
type Tournament struct {
	ID          int            `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Type        TournamentType `json:"type" db:"type"`
	Description *string        `json:"description,omitempty" db:"description"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     *time.Time     `json:"end_date,omitempty" db:"end_date"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
