package album_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"podtag/internal/album"
	"podtag/internal/testsupport"
)

func newStore(t *testing.T) *album.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "album_test.db")
	return testsupport.MustOpenAlbum(t, path)
}

func TestAddRejectsDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	first, err := store.Add(ctx, "ep001.mp3", "01:02:03", "开篇词", "https://example.com/ep001.mp3")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if first.Annotation != first.Title {
		t.Fatalf("annotation = %q, want title %q", first.Annotation, first.Title)
	}

	if _, err := store.Add(ctx, "ep001b.mp3", "00:10:00", "开篇词", "https://example.com/ep001b.mp3"); !errors.Is(err, album.ErrDuplicateTitle) {
		t.Fatalf("duplicate Add error = %v, want ErrDuplicateTitle", err)
	}

	episodes, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("episode count after duplicate = %d, want 1", len(episodes))
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	if _, err := store.Add(ctx, "a.mp3", "", "第一集", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ok, err := store.Exists(ctx, "第一集")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Fatal("Exists(第一集) = false, want true")
	}

	ok, err = store.Exists(ctx, "第一集 ")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("Exists with trailing space = true, want exact match only")
	}
}

func TestUpdateAnnotation(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	episode, err := store.Add(ctx, "a.mp3", "", "中国古代史", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := store.UpdateAnnotation(ctx, episode.ID, "先秦部分 夏商周"); err != nil {
		t.Fatalf("UpdateAnnotation: %v", err)
	}
	updated, err := store.GetByID(ctx, episode.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updated.Annotation != "先秦部分 夏商周" {
		t.Fatalf("annotation = %q", updated.Annotation)
	}
	if !updated.Updated.After(episode.Updated) {
		t.Fatalf("updated timestamp not refreshed: %v -> %v", episode.Updated, updated.Updated)
	}

	// Writing identical text must not touch the row.
	if err := store.UpdateAnnotation(ctx, episode.ID, "先秦部分 夏商周"); err != nil {
		t.Fatalf("UpdateAnnotation no-op: %v", err)
	}
	again, err := store.GetByID(ctx, episode.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !again.Updated.Equal(updated.Updated) {
		t.Fatalf("no-op changed updated timestamp: %v -> %v", updated.Updated, again.Updated)
	}

	if err := store.UpdateAnnotation(ctx, 999, "x"); !errors.Is(err, album.ErrNotFound) {
		t.Fatalf("UpdateAnnotation on missing id error = %v, want ErrNotFound", err)
	}
}

func TestAppendAnnotation(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	var ids []int64
	for _, title := range []string{"第一集", "第二集", "第三集"} {
		episode, err := store.Add(ctx, title+".mp3", "", title, "")
		if err != nil {
			t.Fatalf("Add %s: %v", title, err)
		}
		ids = append(ids, episode.ID)
	}

	if err := store.AppendAnnotation(ctx, ids[:2], " 【历史】"); err != nil {
		t.Fatalf("AppendAnnotation: %v", err)
	}

	first, err := store.GetByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if first.Annotation != "第一集 【历史】" {
		t.Fatalf("annotation = %q", first.Annotation)
	}
	third, err := store.GetByID(ctx, ids[2])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if third.Annotation != "第三集" {
		t.Fatalf("untouched annotation = %q", third.Annotation)
	}

	// A missing id rolls back the whole batch.
	if err := store.AppendAnnotation(ctx, []int64{ids[2], 999}, "x"); !errors.Is(err, album.ErrNotFound) {
		t.Fatalf("AppendAnnotation with missing id error = %v, want ErrNotFound", err)
	}
	third, err = store.GetByID(ctx, ids[2])
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if third.Annotation != "第三集" {
		t.Fatalf("rollback left annotation = %q", third.Annotation)
	}
}

func TestOrderedForDisplay(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	type seed struct {
		filename   string
		title      string
		annotation string
	}
	seeds := []seed{
		{"f1", "第一集", "f1"},
		{"f2", "第二集", "Intro"},
		{"f3", "第三集", "f3"},
	}
	var ids []int64
	for _, s := range seeds {
		episode, err := store.Add(ctx, s.filename, "", s.title, "")
		if err != nil {
			t.Fatalf("Add %s: %v", s.title, err)
		}
		if err := store.UpdateAnnotation(ctx, episode.ID, s.annotation); err != nil {
			t.Fatalf("UpdateAnnotation %s: %v", s.title, err)
		}
		ids = append(ids, episode.ID)
	}

	ordered, err := store.OrderedForDisplay(ctx)
	if err != nil {
		t.Fatalf("OrderedForDisplay: %v", err)
	}
	got := make([]int64, 0, len(ordered))
	for _, episode := range ordered {
		got = append(got, episode.ID)
	}
	want := []int64{ids[0], ids[2], ids[1]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("display order = %v, want %v", got, want)
		}
	}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	seeds := []struct {
		title      string
		annotation string
	}{
		{"第一集", "apple pie"},
		{"第二集", "Banana Apple"},
		{"第三集", "cherry"},
	}
	for _, s := range seeds {
		episode, err := store.Add(ctx, s.title+".mp3", "", s.title, "")
		if err != nil {
			t.Fatalf("Add %s: %v", s.title, err)
		}
		if err := store.UpdateAnnotation(ctx, episode.ID, s.annotation); err != nil {
			t.Fatalf("UpdateAnnotation: %v", err)
		}
	}

	matched, err := store.Search(ctx, "APPLE")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("match count = %d, want 2", len(matched))
	}
	// Lowercased annotation descending: "banana apple" > "apple pie".
	if matched[0].Annotation != "Banana Apple" || matched[1].Annotation != "apple pie" {
		t.Fatalf("search order = [%q %q]", matched[0].Annotation, matched[1].Annotation)
	}

	// Titles are not searched, only annotations.
	matched, err = store.Search(ctx, "第三集")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 0 {
		t.Fatalf("title search matched %d episodes, want 0", len(matched))
	}

	matched, err = store.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matched) != 0 {
		t.Fatalf("empty keyword matched %d episodes, want 0", len(matched))
	}
}

func TestOpenPathRejectsSecondWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "album_lock.db")
	first := testsupport.MustOpenAlbum(t, path)
	_ = first

	if _, err := album.OpenPath(path); !errors.Is(err, album.ErrLocked) {
		t.Fatalf("second OpenPath error = %v, want ErrLocked", err)
	}
}
