package funnel

import "sync"

// PageLocker is the page-level scroll toggle. Implementations flip
// document state in the real UI; tests observe calls.
type PageLocker interface {
	Lock()
	Unlock()
}

// ScrollLock reference-counts scroll-lock acquisition so that two
// dialogs open at once cannot race each other's release: the page
// unlocks only when the count returns to zero. One ScrollLock is
// shared by every dialog on the page.
type ScrollLock struct {
	mu    sync.Mutex
	count int
	page  PageLocker
}

func NewScrollLock(page PageLocker) *ScrollLock {
	return &ScrollLock{page: page}
}

func (l *ScrollLock) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	if l.count == 1 && l.page != nil {
		l.page.Lock()
	}
}

func (l *ScrollLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return
	}

	l.count--
	if l.count == 0 && l.page != nil {
		l.page.Unlock()
	}
}
