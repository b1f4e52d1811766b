// database/bolt_store.go - Embedded single-file store backed by bbolt
package database

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"wodboard/models"
)

var (
	bucketTeams      = []byte("teams")
	bucketWorkouts   = []byte("workouts")
	bucketResults    = []byte("results")
	bucketHeatConfig = []byte("heat_config")
	bucketAdmins     = []byte("admins")

	keyStartTime = []byte("start_time")
)

// boltResult keeps the insertion sequence next to the result so equal
// times list in recording order
type boltResult struct {
	Seq uint64 `json:"seq"`
	models.Result
}

// boltAdmin persists the password hash the API model hides from JSON
type boltAdmin struct {
	models.Admin
	PasswordHash string `json:"password_hash"`
}

func (a boltAdmin) admin() *models.Admin {
	admin := a.Admin
	admin.PasswordHash = a.PasswordHash
	return &admin
}

// BoltStore implements Store on a bbolt file. A BoltStore returned by
// WithTx is bound to that transaction.
type BoltStore struct {
	db *bolt.DB
	tx *bolt.Tx
}

// NewBoltStore opens (or creates) the database file at path
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &BoltStore{db: db}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the buckets
func (s *BoltStore) Migrate() error {
	return s.update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketTeams, bucketWorkouts, bucketResults, bucketHeatConfig, bucketAdmins} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	if s.tx != nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) WithTx(fn func(Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&BoltStore{db: s.db, tx: tx})
	})
}

func (s *BoltStore) update(fn func(tx *bolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.Update(fn)
}

func (s *BoltStore) view(fn func(tx *bolt.Tx) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	return s.db.View(fn)
}

func put(b *bolt.Bucket, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put([]byte(key), data)
}

func get(b *bolt.Bucket, key string, v interface{}) error {
	data := b.Get([]byte(key))
	if data == nil {
		return ErrNotFound
	}
	return json.Unmarshal(data, v)
}

// ================== TEAMS ==================

func (s *BoltStore) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	err := s.view(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTeams).ForEach(func(k, v []byte) error {
			var team models.Team
			if err := json.Unmarshal(v, &team); err != nil {
				return err
			}
			teams = append(teams, team)
			return nil
		})
	})
	slices.SortStableFunc(teams, func(a, b models.Team) int {
		return strings.Compare(a.Name, b.Name)
	})
	return teams, err
}

func (s *BoltStore) GetTeam(id string) (*models.Team, error) {
	var team models.Team
	err := s.view(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketTeams), id, &team)
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *BoltStore) CreateTeam(team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	team.CreatedAt, team.UpdatedAt = now, now
	return s.update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(bucketTeams), team.ID, team)
	})
}

func (s *BoltStore) UpdateTeam(team *models.Team) error {
	return s.modifyTeam(team.ID, func(stored *models.Team) {
		stored.Name = team.Name
		stored.Member1 = team.Member1
		stored.Member2 = team.Member2
		stored.Member3 = team.Member3
		stored.AvatarURL = team.AvatarURL
		stored.UpdatedAt = time.Now().UTC()
	})
}

func (s *BoltStore) modifyTeam(id string, fn func(*models.Team)) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTeams)
		var team models.Team
		if err := get(b, id, &team); err != nil {
			return err
		}
		fn(&team)
		return put(b, id, &team)
	})
}

func (s *BoltStore) DeleteTeam(id string) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTeams)
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) SetTeamHeat(id string, heat int, lane string) error {
	return s.modifyTeam(id, func(team *models.Team) {
		team.Heat = &heat
		team.Lane = nil
		if lane != "" {
			team.Lane = &lane
		}
	})
}

func (s *BoltStore) SetTeamHeatNumber(id string, heat int) error {
	return s.modifyTeam(id, func(team *models.Team) {
		team.Heat = &heat
	})
}

func (s *BoltStore) ClearHeats() (int, error) {
	return s.clearTeams(func(team *models.Team) {
		team.Heat = nil
		team.Lane = nil
	})
}

func (s *BoltStore) ClearHeatNumbers() (int, error) {
	return s.clearTeams(func(team *models.Team) {
		team.Heat = nil
	})
}

func (s *BoltStore) clearTeams(fn func(*models.Team)) (int, error) {
	cleared := 0
	err := s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTeams)
		var changed []models.Team
		err := b.ForEach(func(k, v []byte) error {
			var team models.Team
			if err := json.Unmarshal(v, &team); err != nil {
				return err
			}
			if team.Heat != nil {
				fn(&team)
				changed = append(changed, team)
			}
			return nil
		})
		if err != nil {
			return err
		}
		// bbolt forbids writes while iterating
		for i := range changed {
			if err := put(b, changed[i].ID, &changed[i]); err != nil {
				return err
			}
		}
		cleared = len(changed)
		return nil
	})
	return cleared, err
}

// ================== WORKOUTS ==================

func (s *BoltStore) ListWorkouts() ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.view(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketWorkouts).ForEach(func(k, v []byte) error {
			var w models.Workout
			if err := json.Unmarshal(v, &w); err != nil {
				return err
			}
			workouts = append(workouts, w)
			return nil
		})
	})
	slices.SortStableFunc(workouts, func(a, b models.Workout) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return workouts, err
}

func (s *BoltStore) GetWorkout(id string) (*models.Workout, error) {
	var w models.Workout
	err := s.view(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketWorkouts), id, &w)
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *BoltStore) CreateWorkout(workout *models.Workout) error {
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	workout.CreatedAt, workout.UpdatedAt = now, now
	return s.update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(bucketWorkouts), workout.ID, workout)
	})
}

func (s *BoltStore) UpdateWorkout(workout *models.Workout) error {
	return s.modifyWorkout(workout.ID, func(stored *models.Workout) {
		stored.Name = workout.Name
		stored.Number = workout.Number
		stored.Description = workout.Description
		stored.IsVisible = workout.IsVisible
		stored.UpdatedAt = time.Now().UTC()
	})
}

func (s *BoltStore) SetWorkoutVisibility(id string, visible bool) error {
	return s.modifyWorkout(id, func(w *models.Workout) {
		w.IsVisible = visible
		w.UpdatedAt = time.Now().UTC()
	})
}

func (s *BoltStore) modifyWorkout(id string, fn func(*models.Workout)) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkouts)
		var w models.Workout
		if err := get(b, id, &w); err != nil {
			return err
		}
		fn(&w)
		return put(b, id, &w)
	})
}

func (s *BoltStore) DeleteWorkout(id string) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWorkouts)
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) MaxWorkoutNumber() (int, error) {
	workouts, err := s.ListWorkouts()
	if err != nil || len(workouts) == 0 {
		return 0, err
	}
	return workouts[len(workouts)-1].Number, nil
}

// ================== RESULTS ==================

func (s *BoltStore) scanResults(match func(*boltResult) bool) ([]boltResult, error) {
	var results []boltResult
	err := s.view(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketResults).ForEach(func(k, v []byte) error {
			var r boltResult
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if match == nil || match(&r) {
				results = append(results, r)
			}
			return nil
		})
	})
	slices.SortFunc(results, func(a, b boltResult) int {
		if c := strings.Compare(a.WorkoutID, b.WorkoutID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.TimeSeconds, b.TimeSeconds); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return results, err
}

func unwrap(results []boltResult) []models.Result {
	out := make([]models.Result, len(results))
	for i := range results {
		out[i] = results[i].Result
	}
	return out
}

func (s *BoltStore) ListResults() ([]models.Result, error) {
	results, err := s.scanResults(nil)
	return unwrap(results), err
}

func (s *BoltStore) ListResultsByWorkout(workoutID string) ([]models.Result, error) {
	results, err := s.scanResults(func(r *boltResult) bool {
		return r.WorkoutID == workoutID
	})
	return unwrap(results), err
}

func (s *BoltStore) GetResult(id string) (*models.Result, error) {
	var r boltResult
	err := s.view(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketResults), id, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r.Result, nil
}

func (s *BoltStore) FindResult(teamID, workoutID string) (*models.Result, error) {
	results, err := s.scanResults(func(r *boltResult) bool {
		return r.TeamID == teamID && r.WorkoutID == workoutID
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return &results[0].Result, nil
}

func (s *BoltStore) CreateResult(result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	result.CreatedAt = time.Now().UTC()
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		err := b.ForEach(func(k, v []byte) error {
			var r boltResult
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if r.TeamID == result.TeamID && r.WorkoutID == result.WorkoutID {
				return fmt.Errorf("duplicate result for team %s and workout %s", result.TeamID, result.WorkoutID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return put(b, result.ID, &boltResult{Seq: seq, Result: *result})
	})
}

func (s *BoltStore) DeleteResult(id string) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		if b.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) deleteResultsWhere(match func(*boltResult) bool) ([]string, error) {
	var workoutIDs []string
	err := s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		var keys [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var r boltResult
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if match(&r) {
				keys = append(keys, slices.Clone(k))
				if !slices.Contains(workoutIDs, r.WorkoutID) {
					workoutIDs = append(workoutIDs, r.WorkoutID)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	return workoutIDs, err
}

func (s *BoltStore) DeleteResultsByTeam(teamID string) ([]string, error) {
	return s.deleteResultsWhere(func(r *boltResult) bool { return r.TeamID == teamID })
}

func (s *BoltStore) DeleteResultsByWorkout(workoutID string) error {
	_, err := s.deleteResultsWhere(func(r *boltResult) bool { return r.WorkoutID == workoutID })
	return err
}

func (s *BoltStore) UpdatePoints(points map[string]int) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketResults)
		for id, p := range points {
			var r boltResult
			if err := get(b, id, &r); err != nil {
				return fmt.Errorf("failed to update points for result %s: %w", id, err)
			}
			r.Points = p
			if err := put(b, id, &r); err != nil {
				return err
			}
		}
		return nil
	})
}

// ================== HEAT CONFIG ==================

func (s *BoltStore) GetStartTime() (string, error) {
	var clock string
	err := s.view(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketHeatConfig).Get(keyStartTime)
		if data == nil {
			return ErrNotFound
		}
		clock = string(data)
		return nil
	})
	return clock, err
}

func (s *BoltStore) PutStartTime(clock string) error {
	return s.update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeatConfig).Put(keyStartTime, []byte(clock))
	})
}

func (s *BoltStore) ClearStartTime() error {
	return s.update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketHeatConfig).Delete(keyStartTime)
	})
}

// ================== ADMINS ==================

func (s *BoltStore) GetAdminByUsername(username string) (*models.Admin, error) {
	var stored boltAdmin
	err := s.view(func(tx *bolt.Tx) error {
		return get(tx.Bucket(bucketAdmins), username, &stored)
	})
	if err != nil {
		return nil, err
	}
	return stored.admin(), nil
}

func (s *BoltStore) CreateAdmin(admin *models.Admin) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAdmins)
		if b.Get([]byte(admin.Username)) != nil {
			return fmt.Errorf("admin %q already exists", admin.Username)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		admin.ID = uint(seq)
		admin.CreatedAt = time.Now().UTC()
		return put(b, admin.Username, boltAdmin{Admin: *admin, PasswordHash: admin.PasswordHash})
	})
}

func (s *BoltStore) TouchAdminLogin(id uint, at time.Time) error {
	return s.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAdmins)
		var found *boltAdmin
		err := b.ForEach(func(k, v []byte) error {
			var stored boltAdmin
			if err := json.Unmarshal(v, &stored); err != nil {
				return err
			}
			if stored.ID == id {
				found = &stored
			}
			return nil
		})
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("admin %d: %w", id, ErrNotFound)
		}
		found.LastLogin = &at
		return put(b, found.Username, found)
	})
}
