package models

import "time"

// PlayerType разделяет карточки на бьющих (batter) и питчеров (pitcher).
// Тип фиксируется при создании и не меняется.
type PlayerType string

const (
	PlayerTypeBatter  PlayerType = "batter"
	PlayerTypePitcher PlayerType = "pitcher"
)

func (t PlayerType) Valid() bool {
	return t == PlayerTypeBatter || t == PlayerTypePitcher
}

// Player представляет карточку игрока со статическими характеристиками.
// Рейтинговые поля заполняются только для соответствующего типа.
type Player struct {
	ID         int        `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Position   string     `json:"position" db:"position"`
	Series     *string    `json:"series,omitempty" db:"series"`
	Type       PlayerType `json:"type" db:"type"`
	Spirit     int        `json:"spirit" db:"spirit"`
	LimitBreak int        `json:"limit_break" db:"limit_break"`
	Skill1     *string    `json:"skill1,omitempty" db:"skill1"`
	Skill2     *string    `json:"skill2,omitempty" db:"skill2"`
	Skill3     *string    `json:"skill3,omitempty" db:"skill3"`

	// Рейтинги бьющего
	Average    *float64 `json:"average,omitempty" db:"average"`
	Trajectory *string  `json:"trajectory,omitempty" db:"trajectory"`
	Meet       *int     `json:"meet,omitempty" db:"meet"`
	Power      *int     `json:"power,omitempty" db:"power"`
	Speed      *int     `json:"speed,omitempty" db:"speed"`

	// Рейтинги питчера
	ERA      *float64 `json:"era,omitempty" db:"era"`
	Velocity *int     `json:"velocity,omitempty" db:"velocity"`
	Control  *int     `json:"control,omitempty" db:"control"`
	Stamina  *int     `json:"stamina,omitempty" db:"stamina"`

	IconKey   *string   `json:"-" db:"icon_key"`
	IconURL   *string   `json:"icon_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerSummary — компактная форма игрока, встраиваемая в детальный
// ответ турнира.
type PlayerSummary struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Position string     `json:"position"`
	Spirit   int        `json:"spirit"`
	Type     PlayerType `json:"type"`
}

func (p *Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Spirit:   p.Spirit,
		Type:     p.Type,
	}
}
