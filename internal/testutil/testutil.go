// Package testutil provides sqlite-backed fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/vidhub/internal/model"
	"github.com/d60-Lab/vidhub/pkg/database"
)

var dbSeq atomic.Int64

// NewDB 每个测试独立的内存库；单连接，保证并发 goroutine 看到同一份数据
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:vidhub_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// clock 单调递增的创建时间，避免同一秒内插入的行排序不确定
var clock atomic.Int64

func nextTime() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(clock.Add(1)) * time.Second)
}

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.WithContext(context.Background()).Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

// User 创建用户；username 同时用于 email
func User(t testing.TB, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     username + " full",
		PasswordHash: "x",
		CreatedAt:    nextTime(),
	}
	mustCreate(t, db, u)
	return u
}

// Video 创建视频；published 显式写入，避免默认值吞掉 false
func Video(t testing.TB, db *gorm.DB, owner *model.User, title string, published bool) *model.Video {
	t.Helper()
	v := &model.Video{
		ID:           uuid.New().String(),
		OwnerID:      owner.ID,
		Title:        title,
		Description:  title + " description",
		VideoURL:     "https://cdn.example.com/" + title + ".mp4",
		VideoRef:     "videos/" + title + ".mp4",
		ThumbnailURL: "https://cdn.example.com/" + title + ".jpg",
		ThumbnailRef: "thumbnails/" + title + ".jpg",
		Duration:     12.5,
		IsPublished:  published,
		CreatedAt:    nextTime(),
	}
	if err := db.Select("*").Create(v).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return v
}

func Comment(t testing.TB, db *gorm.DB, video *model.Video, owner *model.User, content string) *model.Comment {
	t.Helper()
	c := &model.Comment{ID: uuid.New().String(), VideoID: video.ID, OwnerID: owner.ID, Content: content, CreatedAt: nextTime()}
	mustCreate(t, db, c)
	return c
}

func Tweet(t testing.TB, db *gorm.DB, owner *model.User, content string) *model.Tweet {
	t.Helper()
	tw := &model.Tweet{ID: uuid.New().String(), OwnerID: owner.ID, Content: content, CreatedAt: nextTime()}
	mustCreate(t, db, tw)
	return tw
}

func Like(t testing.TB, db *gorm.DB, kind model.TargetKind, targetID string, by *model.User) *model.Like {
	t.Helper()
	l := &model.Like{ID: uuid.New().String(), TargetKind: kind, TargetID: targetID, LikedBy: by.ID, CreatedAt: nextTime()}
	mustCreate(t, db, l)
	return l
}

func Subscribe(t testing.TB, db *gorm.DB, subscriber, channel *model.User) *model.Subscription {
	t.Helper()
	s := &model.Subscription{ID: uuid.New().String(), SubscriberID: subscriber.ID, ChannelID: channel.ID, CreatedAt: nextTime()}
	mustCreate(t, db, s)
	return s
}

func Watch(t testing.TB, db *gorm.DB, user *model.User, video *model.Video) *model.WatchHistory {
	t.Helper()
	h := &model.WatchHistory{ID: uuid.New().String(), UserID: user.ID, VideoID: video.ID, CreatedAt: nextTime()}
	mustCreate(t, db, h)
	return h
}
