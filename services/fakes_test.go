package services

import (
	"context"
	"io"
	"sort"

	"github.com/prospia/roster-system/models"
	"github.com/prospia/roster-system/repositories"
	"github.com/prospia/roster-system/storage"
)

// In-memory фейки репозиториев. fakeTxRunner снимает слепок состояния
// перед fn и восстанавливает его при ошибке — так проверяется
// «всё или ничего» без настоящей базы.

type fakeStore struct {
	players     map[int]models.Player
	tournaments map[int]models.Tournament
	stats       map[int]models.PlayerStat

	nextPlayerID     int
	nextTournamentID int
	nextStatID       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:          make(map[int]models.Player),
		tournaments:      make(map[int]models.Tournament),
		stats:            make(map[int]models.PlayerStat),
		nextPlayerID:     1,
		nextTournamentID: 1,
		nextStatID:       1,
	}
}

func (s *fakeStore) clone() *fakeStore {
	cp := &fakeStore{
		players:          make(map[int]models.Player, len(s.players)),
		tournaments:      make(map[int]models.Tournament, len(s.tournaments)),
		stats:            make(map[int]models.PlayerStat, len(s.stats)),
		nextPlayerID:     s.nextPlayerID,
		nextTournamentID: s.nextTournamentID,
		nextStatID:       s.nextStatID,
	}
	for k, v := range s.players {
		cp.players[k] = v
	}
	for k, v := range s.tournaments {
		cp.tournaments[k] = v
	}
	for k, v := range s.stats {
		cp.stats[k] = v
	}
	return cp
}

func (s *fakeStore) addTournament(t models.Tournament) models.Tournament {
	t.ID = s.nextTournamentID
	s.nextTournamentID++
	s.tournaments[t.ID] = t
	return t
}

func (s *fakeStore) addPlayer(p models.Player) models.Player {
	p.ID = s.nextPlayerID
	s.nextPlayerID++
	s.players[p.ID] = p
	return p
}

func (s *fakeStore) statByPair(playerID, tournamentID int) (models.PlayerStat, bool) {
	for _, st := range s.stats {
		if st.PlayerID == playerID && st.TournamentID == tournamentID {
			return st, true
		}
	}
	return models.PlayerStat{}, false
}

type fakeTxRunner struct {
	store *fakeStore
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	snapshot := f.store.clone()
	if err := fn(nil); err != nil {
		*f.store = *snapshot
		return err
	}
	return nil
}

type fakePlayerRepo struct {
	store      *fakeStore
	createErr  error
	getErr     error
	iconKeyErr error
}

func (r *fakePlayerRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Player) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = r.store.nextPlayerID
	r.store.nextPlayerID++
	r.store.players[p.ID] = *p
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	p, ok := r.store.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakePlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	ids := make([]int, 0, len(r.store.players))
	for id := range r.store.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	players := make([]models.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, r.store.players[id])
	}
	return players, nil
}

func (r *fakePlayerRepo) FilterExistingIDs(ctx context.Context, ids []int) (map[int]struct{}, error) {
	existing := make(map[int]struct{})
	for _, id := range ids {
		if _, ok := r.store.players[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

func (r *fakePlayerRepo) UpdateIconKey(ctx context.Context, playerID int, iconKey *string) error {
	if r.iconKeyErr != nil {
		return r.iconKeyErr
	}
	p, ok := r.store.players[playerID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.IconKey = iconKey
	r.store.players[playerID] = p
	return nil
}

type fakeTournamentRepo struct {
	store *fakeStore
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	t.ID = r.store.nextTournamentID
	r.store.nextTournamentID++
	r.store.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := r.store.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	tournaments := make([]models.Tournament, 0, len(r.store.tournaments))
	for _, t := range r.store.tournaments {
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		tournaments = append(tournaments, t)
	}
	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].CreatedAt.After(tournaments[j].CreatedAt)
	})
	return tournaments, nil
}

func (r *fakeTournamentRepo) ListIDs(ctx context.Context, exec repositories.SQLExecutor) ([]int, error) {
	ids := make([]int, 0, len(r.store.tournaments))
	for id := range r.store.tournaments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if _, ok := r.store.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.store.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.store.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.store.tournaments, id)
	// эмуляция каскада по FK
	for statID, st := range r.store.stats {
		if st.TournamentID == id {
			delete(r.store.stats, statID)
		}
	}
	return nil
}

// fakeUploader накапливает залитые и удалённые ключи в памяти.
type fakeUploader struct {
	uploaded []string
	deleted  []string

	uploadErr error
	deleteErr error
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.uploadErr != nil {
		return nil, u.uploadErr
	}
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.example/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	if u.deleteErr != nil {
		return u.deleteErr
	}
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example/" + key
}

type fakeStatRepo struct {
	store *fakeStore

	// createErrOnTournamentID заставляет Create падать для конкретного
	// турнира — для проверки отката фан-аута.
	createErrOnTournamentID int
	createErr               error
}

func (r *fakeStatRepo) Create(ctx context.Context, exec repositories.SQLExecutor, st *models.PlayerStat) error {
	if r.createErr != nil && st.TournamentID == r.createErrOnTournamentID {
		return r.createErr
	}
	if _, exists := r.store.statByPair(st.PlayerID, st.TournamentID); exists {
		return repositories.ErrPlayerStatConflict
	}
	st.ID = r.store.nextStatID
	r.store.nextStatID++
	r.store.stats[st.ID] = *st
	return nil
}

func (r *fakeStatRepo) GetByPlayerAndTournament(ctx context.Context, exec repositories.SQLExecutor, playerID, tournamentID int) (*models.PlayerStat, error) {
	st, ok := r.store.statByPair(playerID, tournamentID)
	if !ok {
		return nil, repositories.ErrPlayerStatNotFound
	}
	return &st, nil
}

func (r *fakeStatRepo) Update(ctx context.Context, exec repositories.SQLExecutor, st *models.PlayerStat) error {
	if _, ok := r.store.stats[st.ID]; !ok {
		return repositories.ErrPlayerStatNotFound
	}
	r.store.stats[st.ID] = *st
	return nil
}

func (r *fakeStatRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.PlayerStat, error) {
	statRows := make([]models.PlayerStat, 0)
	for _, st := range r.store.stats {
		if st.TournamentID == tournamentID {
			statRows = append(statRows, st)
		}
	}
	sort.Slice(statRows, func(i, j int) bool { return statRows[i].PlayerID < statRows[j].PlayerID })
	return statRows, nil
}

func (r *fakeStatRepo) DeleteByPlayerAndTournament(ctx context.Context, playerID, tournamentID int) error {
	for statID, st := range r.store.stats {
		if st.PlayerID == playerID && st.TournamentID == tournamentID {
			delete(r.store.stats, statID)
			return nil
		}
	}
	return repositories.ErrPlayerStatNotFound
}
