package models

import "time"

// PlayerStat — строка статистики игрока в рамках одного турнира.
// Инвариант: не более одной строки на пару (player_id, tournament_id),
// закреплён уникальным индексом в БД. Счётчики хранятся как указатели:
// NULL означает, что статистика ещё не вводилась (свежесозданная
// "скамеечная" строка).
type PlayerStat struct {
	ID           int        `json:"id" db:"id"`
	PlayerID     int        `json:"player_id" db:"player_id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	PositionType PlayerType `json:"position_type" db:"position_type"`

	// Слот в составе: 1-9 для бьющих, 1-12 для питчеров, NULL = скамейка.
	Order   *int `json:"order" db:"lineup_order"`
	IsBench bool `json:"is_bench" db:"is_bench"`

	// Статистика бьющего
	AtBats   *int `json:"at_bats" db:"at_bats"`
	Hits     *int `json:"hits" db:"hits"`
	Doubles  *int `json:"doubles" db:"doubles"`
	Triples  *int `json:"triples" db:"triples"`
	HomeRuns *int `json:"home_runs" db:"home_runs"`
	RBI      *int `json:"rbi" db:"rbi"`

	// Статистика питчера
	Wins   *int `json:"wins" db:"wins"`
	Losses *int `json:"losses" db:"losses"`
	Saves  *int `json:"saves" db:"saves"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultPlayerStat синтезирует нулевую "скамеечную" строку для игрока
// без сохранённой статистики в турнире. Такая строка никогда не
// персистится — она существует только в ответах API.
func DefaultPlayerStat(playerID, tournamentID int, positionType PlayerType) PlayerStat {
	return PlayerStat{
		PlayerID:     playerID,
		TournamentID: tournamentID,
		PositionType: positionType,
		Order:        nil,
		IsBench:      true,
		AtBats:       zeroInt(),
		Hits:         zeroInt(),
		Doubles:      zeroInt(),
		Triples:      zeroInt(),
		HomeRuns:     zeroInt(),
		RBI:          zeroInt(),
		Wins:         zeroInt(),
		Losses:       zeroInt(),
		Saves:        zeroInt(),
	}
}

func zeroInt() *int {
	v := 0
	return &v
}
