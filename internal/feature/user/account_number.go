package user

import (
	"math/rand"
	"sync"
	"time"
)

const accountNumberLen = 10

// AccountNumbers 生成 10 位数字的展示账号。
// 只依赖注入的随机源，不查重；碰撞由上层业务决定是否处理（当前接受）
type AccountNumbers struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewAccountNumbers() *AccountNumbers {
	return NewAccountNumbersWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewAccountNumbersWithSource(src rand.Source) *AccountNumbers {
	return &AccountNumbers{rnd: rand.New(src)}
}

func (g *AccountNumbers) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	b := make([]byte, accountNumberLen)
	for i := range b {
		b[i] = byte('0' + g.rnd.Intn(10))
	}
	return string(b)
}
