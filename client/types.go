package client

import "time"

// Серверная сторона говорит snake_case; view-типы этого пакета — то,
// что раньше делал axios-case-converter + хуки: camelCase-формы,
// готовые для UI, с уже посчитанными производными показателями.

// Batter — строка таблицы бьющих.
type Batter struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Order    *int    `json:"order"`
	AtBats   int     `json:"atBats"`
	Hits     int     `json:"hits"`
	Doubles  int     `json:"doubles"`
	Triples  int     `json:"triples"`
	HomeRuns int     `json:"homeRuns"`
	RBI      int     `json:"rbi"`
	Average  float64 `json:"average"`
	Slugging float64 `json:"slugging"`
	OPS      float64 `json:"ops"`
}

// Pitcher — строка таблицы питчеров.
type Pitcher struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Order    *int    `json:"order"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Saves    int     `json:"saves"`
	WinRate  float64 `json:"winRate"`
}

// Tournament — camelCase-представление турнира для UI.
type Tournament struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// Lineup — готовый к показу состав турнира: бьющие по слотам 1-9
// (скамейка в конце), питчеры в порядке стартеры → реливеры → клоузер
// → скамейка.
type Lineup struct {
	Tournament Tournament
	Batters    []Batter
	Pitchers   []Pitcher
}

// BulkUpdateResult — ответ bulk-update в camelCase-форме.
type BulkUpdateResult struct {
	TournamentID    int
	UpdatedBatters  []UpdatedStatRef
	UpdatedPitchers []UpdatedStatRef
	UpdatedAt       time.Time
}

type UpdatedStatRef struct {
	PlayerID int
	StatsID  int
}

// --- wire-типы: зеркалят snake_case сервера ---

type wireTournament struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type wirePlayerSummary struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Spirit   int    `json:"spirit"`
	Type     string `json:"type"`
}

type wirePlayerStat struct {
	ID           int  `json:"id"`
	PlayerID     int  `json:"player_id"`
	TournamentID int  `json:"tournament_id"`
	Order        *int `json:"order"`
	IsBench      bool `json:"is_bench"`
	AtBats       *int `json:"at_bats"`
	Hits         *int `json:"hits"`
	Doubles      *int `json:"doubles"`
	Triples      *int `json:"triples"`
	HomeRuns     *int `json:"home_runs"`
	RBI          *int `json:"rbi"`
	Wins         *int `json:"wins"`
	Losses       *int `json:"losses"`
	Saves        *int `json:"saves"`
}

type wirePlayerWithStats struct {
	Player wirePlayerSummary `json:"player"`
	Stats  wirePlayerStat    `json:"stats"`
}

type wireTournamentDetails struct {
	Tournament       wireTournament        `json:"tournament"`
	PlayersWithStats []wirePlayerWithStats `json:"playersWithStats"`
}

type wireBatterEntry struct {
	ID       int  `json:"id"`
	Order    *int `json:"order"`
	AtBats   int  `json:"at_bats"`
	Hits     int  `json:"hits"`
	Doubles  int  `json:"doubles"`
	Triples  int  `json:"triples"`
	HomeRuns int  `json:"home_runs"`
	RBI      int  `json:"rbi"`
}

type wirePitcherEntry struct {
	ID     int  `json:"id"`
	Order  *int `json:"order"`
	Wins   int  `json:"wins"`
	Losses int  `json:"losses"`
	Saves  int  `json:"saves"`
}

type wireBulkUpdateRequest struct {
	Batters  []wireBatterEntry  `json:"batters"`
	Pitchers []wirePitcherEntry `json:"pitchers"`
}

type wireUpdatedStatRef struct {
	PlayerID int `json:"player_id"`
	StatsID  int `json:"stats_id"`
}

type wireBulkUpdateResponse struct {
	Message         string               `json:"message"`
	TournamentID    int                  `json:"tournament_id"`
	UpdatedBatters  []wireUpdatedStatRef `json:"updated_batters"`
	UpdatedPitchers []wireUpdatedStatRef `json:"updated_pitchers"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (t wireTournament) toView() Tournament {
	return Tournament{
		ID:          t.ID,
		Name:        t.Name,
		Type:        t.Type,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
}
