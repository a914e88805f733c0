// Package stats содержит чистые функции над сырыми счётчиками:
// производные показатели (средний, slugging, OPS, процент побед) и
// политику упорядочивания состава. Производные значения никогда не
// сохраняются — только пересчитываются из счётчиков.
package stats

// BenchOrderValue — позиция скамейки и любых значений вне диапазона
// в итоговой сортировке.
const BenchOrderValue = 999

// Average — баттинг-средний: hits / atBats, 0 при нуле выходов.
func Average(atBats, hits int) float64 {
	if atBats <= 0 {
		return 0
	}
	return float64(hits) / float64(atBats)
}

// TotalBases считает базы: каждый хит даёт одну, дабл/трипл/хоумран
// добавляют сверх этого 1, 2 и 3 соответственно.
func TotalBases(hits, doubles, triples, homeRuns int) int {
	return hits + doubles + 2*triples + 3*homeRuns
}

func Slugging(atBats, hits, doubles, triples, homeRuns int) float64 {
	if atBats <= 0 {
		return 0
	}
	return float64(TotalBases(hits, doubles, triples, homeRuns)) / float64(atBats)
}

// OPS — упрощённый: average + slugging. Данных об уоках (walks) в
// системе нет, поэтому on-base заменяется средним.
func OPS(atBats, hits, doubles, triples, homeRuns int) float64 {
	if atBats <= 0 {
		return 0
	}
	return Average(atBats, hits) + Slugging(atBats, hits, doubles, triples, homeRuns)
}

// WinRate — wins / (wins + losses), 0 без сыгранных решений.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total <= 0 {
		return 0
	}
	return float64(wins) / float64(total)
}

// PitcherOrderValue отображает слот питчера в тотальный порядок показа:
// 1-5 — стартеры (как есть), 6-11 — реливеры (100+слот), 12 — клоузер
// (200), всё прочее и NULL — скамейка (999). Функция тотальна и
// детерминирована на всём множестве значений.
func PitcherOrderValue(order *int) int {
	if order == nil {
		return BenchOrderValue
	}
	o := *order
	switch {
	case o >= 1 && o <= 5:
		return o
	case o >= 6 && o <= 11:
		return 100 + o
	case o == 12:
		return 200
	default:
		return BenchOrderValue
	}
}

// BatterOrderValue: слоты по возрастанию, NULL — в конец. Диапазон
// 1-9 гарантирует валидация на записи.
func BatterOrderValue(order *int) int {
	if order == nil {
		return BenchOrderValue
	}
	return *order
}
