package state

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/llehouerou/tilt/internal/score"
)

func openTest(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestScores_GetUnknownReturnsDefault(t *testing.T) {
	s := openTest(t).Scores(2)

	got, err := s.Get("/unknown.mp3")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 2 {
		t.Errorf("Get() = %d, want 2", got)
	}
}

func TestScores_SetUpserts(t *testing.T) {
	s := openTest(t).Scores(2)
	at := time.Unix(1700000000, 0)

	if err := s.Set("/a.mp3", 5, at); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("/a.mp3", 7, at.Add(time.Hour)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Score != 7 {
		t.Errorf("Score = %d, want 7", entries[0].Score)
	}
	if !entries[0].LastPlayed.Equal(at.Add(time.Hour)) {
		t.Errorf("LastPlayed = %v, want %v", entries[0].LastPlayed, at.Add(time.Hour))
	}
}

func TestScores_ListAllOrder(t *testing.T) {
	s := openTest(t).Scores(2)
	now := time.Now()
	for _, e := range []score.Entry{
		{ID: "/a", Score: 1},
		{ID: "/b", Score: 3},
		{ID: "/c", Score: 1},
		{ID: "/d", Score: 3},
	} {
		if err := s.Set(e.ID, e.Score, now); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	entries, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	want := []string{"/b", "/d", "/a", "/c"}
	for i, e := range entries {
		if e.ID != want[i] {
			t.Errorf("entries[%d] = %s, want %s", i, e.ID, want[i])
		}
	}
}

func TestScores_RegisterKeepsExisting(t *testing.T) {
	s := openTest(t).Scores(2)
	if err := s.Set("/a.mp3", 9, time.Now()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	added, err := s.Register("/a.mp3", "/b.mp3", "/c.mp3", "/b.mp3")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if added != 2 {
		t.Errorf("Register() = %d, want 2", added)
	}

	if got, _ := s.Get("/a.mp3"); got != 9 {
		t.Errorf("Get(/a.mp3) = %d, want 9", got)
	}
	if got, _ := s.Get("/b.mp3"); got != 2 {
		t.Errorf("Get(/b.mp3) = %d, want 2", got)
	}
	entries, _ := s.ListAll()
	for _, e := range entries {
		if e.ID == "/b.mp3" && !e.LastPlayed.IsZero() {
			t.Errorf("registered track has LastPlayed %v, want zero", e.LastPlayed)
		}
	}
	if n, _ := s.Count(); n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestScores_ClosedStoreFails(t *testing.T) {
	m := openTest(t)
	s := m.Scores(2)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := s.Get("/a.mp3"); !errors.Is(err, score.ErrStoreClosed) {
		t.Errorf("Get on closed store = %v, want ErrStoreClosed", err)
	}
	if err := s.Set("/a.mp3", 1, time.Now()); !errors.Is(err, score.ErrStoreClosed) {
		t.Errorf("Set on closed store = %v, want ErrStoreClosed", err)
	}
	if _, err := s.ListAll(); !errors.Is(err, score.ErrStoreClosed) {
		t.Errorf("ListAll on closed store = %v, want ErrStoreClosed", err)
	}

	var nilStore *Scores
	if _, err := nilStore.Get("/a.mp3"); !errors.Is(err, score.ErrStoreClosed) {
		t.Errorf("Get on nil store = %v, want ErrStoreClosed", err)
	}
}

func TestScores_WorkWithController(t *testing.T) {
	s := openTest(t).Scores(score.DefaultScore)
	c := score.NewController(s, score.DefaultLimits(), nil)

	for range 20 {
		if _, err := c.Adjust("/a.mp3", 1); err != nil {
			t.Fatalf("Adjust failed: %v", err)
		}
	}
	if got, _ := s.Get("/a.mp3"); got != score.DefaultMax {
		t.Errorf("score = %d, want %d", got, score.DefaultMax)
	}
}

func TestGetQueue_Empty(t *testing.T) {
	m := openTest(t)

	q, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}
	if q.CurrentIndex != -1 || len(q.Tracks) != 0 {
		t.Errorf("GetQueue() = %+v, want empty with index -1", q)
	}
}

func TestSaveAndGetQueue(t *testing.T) {
	m := openTest(t)
	want := QueueState{
		CurrentIndex: 1,
		Tracks: []QueueTrack{
			{Path: "/a.mp3", Title: "A", Artist: "X", Album: "Y", TrackNumber: 3, Duration: 2 * time.Minute},
			{Path: "/b.mp3", Title: "B"},
		},
	}

	if err := m.SaveQueue(want); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}
	got, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}

	if got.CurrentIndex != 1 {
		t.Errorf("CurrentIndex = %d, want 1", got.CurrentIndex)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("len(Tracks) = %d, want 2", len(got.Tracks))
	}
	if got.Tracks[0] != want.Tracks[0] {
		t.Errorf("Tracks[0] = %+v, want %+v", got.Tracks[0], want.Tracks[0])
	}
	if got.Tracks[1].Path != "/b.mp3" || got.Tracks[1].Artist != "" {
		t.Errorf("Tracks[1] = %+v", got.Tracks[1])
	}
}

func TestSaveQueue_ReplacesExisting(t *testing.T) {
	m := openTest(t)
	_ = m.SaveQueue(QueueState{CurrentIndex: 0, Tracks: []QueueTrack{{Path: "/a"}, {Path: "/b"}, {Path: "/c"}}})
	_ = m.SaveQueue(QueueState{CurrentIndex: 0, Tracks: []QueueTrack{{Path: "/z"}}})

	got, _ := m.GetQueue()
	if len(got.Tracks) != 1 || got.Tracks[0].Path != "/z" {
		t.Errorf("Tracks = %+v, want [/z]", got.Tracks)
	}
}

func TestScheduleQueueSave_FlushedOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilt.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}

	m.ScheduleQueueSave(QueueState{CurrentIndex: 0, Tracks: []QueueTrack{{Path: "/first"}}})
	m.ScheduleQueueSave(QueueState{CurrentIndex: 0, Tracks: []QueueTrack{{Path: "/second"}}})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()
	got, _ := m.GetQueue()
	if len(got.Tracks) != 1 || got.Tracks[0].Path != "/second" {
		t.Errorf("Tracks = %+v, want [/second]", got.Tracks)
	}
}

func TestCmusJournal(t *testing.T) {
	m := openTest(t)

	if _, ok, err := m.LastPlay(); err != nil || ok {
		t.Fatalf("LastPlay() on empty db = %v, %v", ok, err)
	}
	started := time.UnixMilli(1700000000123)
	if err := m.RecordPlay("/a.mp3", started); err != nil {
		t.Fatalf("RecordPlay failed: %v", err)
	}
	rec, ok, err := m.LastPlay()
	if err != nil || !ok {
		t.Fatalf("LastPlay() = %v, %v", ok, err)
	}
	if rec.Path != "/a.mp3" || !rec.Started.Equal(started) {
		t.Errorf("LastPlay() = %+v", rec)
	}

	_ = m.PushHistory("/1.mp3")
	_ = m.PushHistory("/2.mp3")
	if n, _ := m.HistoryLen(); n != 2 {
		t.Errorf("HistoryLen() = %d, want 2", n)
	}
	if p, ok, _ := m.PopHistory(); !ok || p != "/2.mp3" {
		t.Errorf("PopHistory() = %q, %v, want /2.mp3", p, ok)
	}
	if p, ok, _ := m.PopHistory(); !ok || p != "/1.mp3" {
		t.Errorf("PopHistory() = %q, %v, want /1.mp3", p, ok)
	}
	if _, ok, _ := m.PopHistory(); ok {
		t.Error("PopHistory() on empty stack should report false")
	}
}

func TestFlags_AreOneShot(t *testing.T) {
	m := openTest(t)

	if raised, _ := m.TakeFlag("ignore"); raised {
		t.Error("flag should start lowered")
	}
	_ = m.SetFlag("ignore")
	_ = m.SetFlag("ignore")
	if raised, _ := m.TakeFlag("ignore"); !raised {
		t.Error("TakeFlag() should report the raised flag")
	}
	if raised, _ := m.TakeFlag("ignore"); raised {
		t.Error("TakeFlag() should clear the flag")
	}
}

func TestNotificationID(t *testing.T) {
	m := openTest(t)

	if id, err := m.NotificationID(); err != nil || id != 0 {
		t.Errorf("NotificationID() = %d, %v, want 0", id, err)
	}
	_ = m.SaveNotificationID(42)
	if id, _ := m.NotificationID(); id != 42 {
		t.Errorf("NotificationID() = %d, want 42", id)
	}
	_ = m.SaveSetting(keyNotificationID, "garbage")
	if id, err := m.NotificationID(); err != nil || id != 0 {
		t.Errorf("NotificationID() with corrupt value = %d, %v, want 0", id, err)
	}
}

func TestClosedManager(t *testing.T) {
	m := openTest(t)
	_ = m.Close()

	if err := m.SaveQueue(QueueState{}); !errors.Is(err, ErrClosed) {
		t.Errorf("SaveQueue() = %v, want ErrClosed", err)
	}
	if err := m.RecordPlay("/a", time.Now()); !errors.Is(err, ErrClosed) {
		t.Errorf("RecordPlay() = %v, want ErrClosed", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
}

func TestReopen_KeepsQueueDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilt.db")
	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	track := QueueTrack{Path: "/a.mp3", Title: "A", Duration: 3*time.Minute + 5*time.Second}
	if err := m.SaveQueue(QueueState{CurrentIndex: 0, Tracks: []QueueTrack{track}}); err != nil {
		t.Fatalf("SaveQueue failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	got, err := m.GetQueue()
	if err != nil {
		t.Fatalf("GetQueue failed: %v", err)
	}
	if len(got.Tracks) != 1 || got.Tracks[0].Duration != track.Duration {
		t.Errorf("Tracks = %+v, want duration %v", got.Tracks, track.Duration)
	}

	var versions int
	if err := m.DB().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&versions); err != nil {
		t.Fatalf("count versions: %v", err)
	}
	if versions != 1 {
		t.Errorf("schema_version rows = %d, want 1", versions)
	}
}
