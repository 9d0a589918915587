package redis

import (
	"context"
	"encoding/json"
	"errors"

	"Connect_Hub/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	PostsKey       = "posts"       // 整个帖子数组，JSON，最新在前
	CommunitiesKey = "communities" // 整个社区数组，JSON
	RevSuffix      = ":rev"        // 每个集合一个单调版本号
)

var (
	ErrStorageWrite  = errors.New("storage write failed")
	ErrWriteConflict = errors.New("concurrent write conflict")
)

/*
集合按「整体读 / 整体写」存取。写入在 WATCH 版本号键的事务里执行：
版本号在 WATCH 和 EXEC 之间被其他写者动过则整个事务失败，
避免多写者互相覆盖（last-write-wins）。
*/

func loadCollection(ctx context.Context, key string, dst any) error {
	data, err := Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil // 首次运行，集合还不存在
	}
	if err != nil {
		return ErrRedisUnavailable
	}
	return json.Unmarshal(data, dst)
}

func saveCollection(ctx context.Context, key string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return ErrStorageWrite
	}

	revKey := key + RevSuffix
	err = Client.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, 0)
			p.Incr(ctx, revKey)
			return nil
		})
		return err
	}, revKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrWriteConflict
	}
	if err != nil {
		return ErrStorageWrite
	}
	return nil
}

type PostRepository struct{}

// LoadAll 键不存在返回 nil 切片，由上层决定是否播种；空数组是有效状态
func (r *PostRepository) LoadAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := loadCollection(ctx, PostsKey, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) SaveAll(ctx context.Context, posts []model.Post) error {
	return saveCollection(ctx, PostsKey, posts)
}

type CommunityRepository struct{}

func (r *CommunityRepository) LoadAll(ctx context.Context) ([]model.Community, error) {
	var communities []model.Community
	if err := loadCollection(ctx, CommunitiesKey, &communities); err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *CommunityRepository) SaveAll(ctx context.Context, communities []model.Community) error {
	return saveCollection(ctx, CommunitiesKey, communities)
}
