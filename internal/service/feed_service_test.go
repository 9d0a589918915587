package service

import (
	"testing"
	"time"

	"Connect_Hub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func feedFixture(now time.Time) []model.Post {
	return []model.Post{
		{ID: "a", Title: "Welcome", Content: "hello campus", Tags: []string{"announcements"}, Upvotes: 15, UserName: strPtr("Admin"), Timestamp: now},
		{ID: "b", Title: "Placement Drive", Content: "Google visiting", Tags: []string{"placements"}, Upvotes: 25, UserName: strPtr("coordinator"), Timestamp: now.Add(-24 * time.Hour)},
		{ID: "c", Title: "DS course", Content: "tips from seniors?", Tags: []string{"academics"}, Upvotes: 5, IsAnonymous: true, Timestamp: now.Add(-48 * time.Hour)},
	}
}

func idsOf(posts []model.Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestBuildFeedSortByUpvotes(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	desc := BuildFeed(posts, nil, FeedOptions{Sort: SortUpvotes, Now: now})
	assert.Equal(t, []string{"b", "a", "c"}, idsOf(desc))

	asc := BuildFeed(posts, nil, FeedOptions{Sort: SortUpvotes, Ascending: true, Now: now})
	assert.Equal(t, []string{"c", "a", "b"}, idsOf(asc))
}

func TestBuildFeedSortByRecent(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	desc := BuildFeed(posts, nil, FeedOptions{Sort: SortRecent, Now: now})
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(desc))
}

func TestBuildFeedSortByTrending(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	// a: 15/1, b: 25/24, c: 5/48
	desc := BuildFeed(posts, nil, FeedOptions{Sort: SortTrending, Now: now})
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(desc))
}

func TestTrendingScoreClampsYoungPosts(t *testing.T) {
	now := time.Now()
	p := model.Post{Upvotes: 10, Timestamp: now.Add(-5 * time.Minute)}
	// 帖龄不足一小时按一小时算
	assert.InDelta(t, 10.0, TrendingScore(p, now), 1e-9)
}

func TestBuildFeedHidesFlaggedFromNonAdmins(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)
	posts[1].IsFlagged = true

	visible := BuildFeed(posts, &model.User{ID: "u1"}, FeedOptions{Now: now})
	assert.Equal(t, []string{"a", "c"}, idsOf(visible))

	admin := BuildFeed(posts, &model.User{ID: "u2", IsAdmin: true}, FeedOptions{Now: now})
	assert.Len(t, admin, 3)

	anonymousViewer := BuildFeed(posts, nil, FeedOptions{Now: now})
	assert.Equal(t, []string{"a", "c"}, idsOf(anonymousViewer))
}

func TestBuildFeedSearch(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title match", "placement", []string{"b"}},
		{"content match case-insensitive", "GOOGLE", []string{"b"}},
		{"author name match", "admin", []string{"a"}},
		{"no match", "nonexistent", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildFeed(posts, nil, FeedOptions{Search: tt.search, Sort: SortRecent, Now: now})
			assert.Equal(t, tt.want, idsOf(got))
		})
	}
}

func TestBuildFeedSearchNeverMatchesAnonymousAuthor(t *testing.T) {
	now := time.Now()
	posts := []model.Post{
		{ID: "x", Title: "t", Content: "c", Timestamp: now, IsAnonymous: true, UserName: nil},
	}
	// 匿名帖没有作者名可匹配
	got := BuildFeed(posts, nil, FeedOptions{Search: "anonymous", Now: now})
	assert.Empty(t, got)
}

func TestBuildFeedTagFilter(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	got := BuildFeed(posts, nil, FeedOptions{Tags: []string{"placements", "academics"}, Sort: SortRecent, Now: now})
	assert.Equal(t, []string{"b", "c"}, idsOf(got))

	all := BuildFeed(posts, nil, FeedOptions{Sort: SortRecent, Now: now})
	assert.Len(t, all, 3)
}

func TestBuildFeedIsPure(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)

	_ = BuildFeed(posts, nil, FeedOptions{Sort: SortUpvotes, Now: now})
	require.Equal(t, []string{"a", "b", "c"}, idsOf(posts), "input slice must not be reordered")
}

func TestFlaggedPosts(t *testing.T) {
	now := time.Now()
	posts := feedFixture(now)
	posts[0].IsFlagged = true
	posts[2].IsFlagged = true

	got := FlaggedPosts(posts, "")
	assert.Equal(t, []string{"a", "c"}, idsOf(got))

	filtered := FlaggedPosts(posts, "welcome")
	assert.Equal(t, []string{"a"}, idsOf(filtered))
}
