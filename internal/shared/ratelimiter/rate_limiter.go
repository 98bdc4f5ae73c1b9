// Package ratelimiter は操作の頻度をキーごとに制限します。
package ratelimiter

import (
	"sync"
	"time"
)

// sweepThreshold を超えるキーを保持した時点で期限切れのウィンドウを掃除します。
const sweepThreshold = 10000

// window はキー1つ分の固定ウィンドウです。
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter は固定ウィンドウ方式でキーごとの試行回数を制限します。
// interval ごとに limit 回まで記録でき、それを超えるとウィンドウが
// リセットされるまで Allow が false を返します。並行呼び出しに対して安全です。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // interval あたりの上限
	interval time.Duration // どの単位でリセットするか
	now      func() time.Time
	windows  map[string]*window
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  map[string]*window{},
	}
}

// Allow は key がまだ上限に達していないかを返します。
// 上限に達している場合は、ウィンドウがリセットされるまでの残り時間も返します。
// Allow 自体は試行回数を記録しません。
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w := rl.current(key, rl.now())
	if w == nil || w.count < rl.limit {
		return true, 0
	}
	return false, rl.interval - rl.now().Sub(w.lastReset)
}

// Hit は key の試行を1回記録します。
func (rl *RateLimiter) Hit(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w := rl.current(key, now)
	if w == nil {
		if len(rl.windows) >= sweepThreshold {
			rl.sweep(now)
		}
		w = &window{lastReset: now}
		rl.windows[key] = w
	}
	w.count++
}

// Reset は key の記録を消去します。
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.windows, key)
}

// current は key の有効なウィンドウを返します。interval を過ぎていれば破棄して nil を返します。
func (rl *RateLimiter) current(key string, now time.Time) *window {
	w, ok := rl.windows[key]
	if !ok {
		return nil
	}
	if now.Sub(w.lastReset) >= rl.interval {
		delete(rl.windows, key)
		return nil
	}
	return w
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
